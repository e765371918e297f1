package jobdef

import (
	"github.com/pkg/errors"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/common/slices"
)

// Partition returns the files consumed by job index when files are consumed mergeFactor at a time, in order.
// The last job of a set may receive fewer than mergeFactor files.
func Partition(index int, mergeFactor int, files []string) ([]string, error) {
	// Checked before multiplying so that large indices cannot overflow.
	if index < 0 || mergeFactor <= 0 || index >= NumJobs(mergeFactor, len(files)) {
		return nil, errors.WithStack(&jobdeferrors.ErrInvalidIndex{
			Index:       index,
			MergeFactor: mergeFactor,
			NumFiles:    len(files),
		})
	}
	first := index * mergeFactor
	last := first + mergeFactor - 1
	if last > len(files)-1 {
		last = len(files) - 1
	}
	return slices.Clone(files[first : last+1]), nil
}

// NumJobs is the number of jobs needed to consume numFiles files mergeFactor at a time.
// It is 0 when there are no files at all; mergeFactor must be positive otherwise.
func NumJobs(mergeFactor int, numFiles int) int {
	if numFiles <= 0 || mergeFactor <= 0 {
		return 0
	}
	n := numFiles / mergeFactor
	if numFiles%mergeFactor != 0 {
		n++
	}
	return n
}
