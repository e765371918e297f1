package jobdef

import (
	"fmt"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
)

func TestPartition(t *testing.T) {
	files := []string{"f1.art", "f2.art", "f3.art", "f4.art", "f5.art"}
	tests := map[string]struct {
		index       int
		mergeFactor int
		expected    []string
	}{
		"first job":         {index: 0, mergeFactor: 2, expected: []string{"f1.art", "f2.art"}},
		"middle job":        {index: 1, mergeFactor: 2, expected: []string{"f3.art", "f4.art"}},
		"short last job":    {index: 2, mergeFactor: 2, expected: []string{"f5.art"}},
		"one file per job":  {index: 4, mergeFactor: 1, expected: []string{"f5.art"}},
		"merge exceeds len": {index: 0, mergeFactor: 10, expected: files},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := Partition(tc.index, tc.mergeFactor, files)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestPartition_DoesNotAlias(t *testing.T) {
	files := []string{"a", "b", "c"}
	part, err := Partition(0, 2, files)
	require.NoError(t, err)
	part[0] = "z"
	assert.Equal(t, []string{"a", "b", "c"}, files)
}

func TestPartition_InvalidIndex(t *testing.T) {
	tests := map[string]struct {
		index       int
		mergeFactor int
		files       []string
	}{
		"past the end":      {index: 3, mergeFactor: 2, files: []string{"a", "b", "c", "d", "e"}},
		"empty list":        {index: 0, mergeFactor: 1, files: nil},
		"negative index":    {index: -1, mergeFactor: 2, files: []string{"a", "b"}},
		"zero merge":        {index: 0, mergeFactor: 0, files: []string{"a"}},
		"exactly at end":    {index: 1, mergeFactor: 2, files: []string{"a", "b"}},
		"negative merge":    {index: 0, mergeFactor: -2, files: []string{"a", "b"}},
		"far past the end":  {index: 100, mergeFactor: 1, files: []string{"a"}},
		"overflowing index": {index: math.MaxInt/2 + 1, mergeFactor: 2, files: []string{"a", "b", "c"}},
		"maximum index":     {index: math.MaxInt, mergeFactor: 3, files: []string{"a", "b", "c"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Partition(tc.index, tc.mergeFactor, tc.files)
			var e *jobdeferrors.ErrInvalidIndex
			require.True(t, errors.As(err, &e), "expected ErrInvalidIndex but got %v", err)
			assert.Equal(t, tc.index, e.Index)
			assert.Equal(t, len(tc.files), e.NumFiles)
		})
	}
}

func TestPartition_CoversListExactlyOnce(t *testing.T) {
	for n := 1; n <= 12; n++ {
		files := make([]string, n)
		for i := range files {
			files[i] = fmt.Sprintf("f%d", i)
		}
		for merge := 1; merge <= n+1; merge++ {
			njobs := NumJobs(merge, n)
			var union []string
			for i := 0; i < njobs; i++ {
				part, err := Partition(i, merge, files)
				require.NoError(t, err)
				if i < njobs-1 {
					assert.Len(t, part, merge)
				}
				union = append(union, part...)
			}
			assert.Equal(t, files, union, "n=%d merge=%d", n, merge)

			_, err := Partition(njobs, merge, files)
			assert.Error(t, err, "n=%d merge=%d", n, merge)
		}
	}
}

func TestNumJobs(t *testing.T) {
	assert.Equal(t, 4, NumJobs(3, 10))
	assert.Equal(t, 1, NumJobs(10, 10))
	assert.Equal(t, 10, NumJobs(1, 10))
	assert.Equal(t, 1, NumJobs(20, 10))
	assert.Equal(t, 0, NumJobs(3, 0))
	assert.Equal(t, 1, NumJobs(math.MaxInt, 10))
}

func TestPartition_HugeMergeFactor(t *testing.T) {
	files, err := Partition(0, math.MaxInt, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, files)
}
