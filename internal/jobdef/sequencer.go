package jobdef

import (
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/common/maps"
)

// EventIDSequencer formats the sequencer of job index in a synthetic job set with the given run number.
func EventIDSequencer(run int, index int) string {
	return fmt.Sprintf("%06d_%08d", run, index)
}

// smallestSequencer returns the lexicographically smallest sequencer among files.
// Upstream sequencers are zero-padded, so this is also the numerically smallest.
func (r *Resolver) smallestSequencer(files []string) (string, error) {
	seqs := make([]string, 0, len(files))
	for _, f := range files {
		seq, err := r.names.Sequencer(path.Base(f))
		if err != nil {
			return "", err
		}
		seqs = append(seqs, seq)
	}
	if len(seqs) == 0 {
		return "", errors.WithStack(&jobdeferrors.ErrUnsupportedConfiguration{Message: "job has no input files"})
	}
	slices.Sort(seqs)
	return seqs[0], nil
}

// encode derives the sequencer of a job whose sources have been filled into plan.
func (r *Resolver) encode(d *Descriptor, plan *JobPlan) (string, error) {
	switch src := d.source.(type) {
	case *FileInputs:
		return r.smallestSequencer(plan.PrimaryInputs[src.Key])
	case *EventIDSource:
		value, ok := src.Settings[RunNumberKey]
		if !ok {
			return "", errors.WithStack(&jobdeferrors.ErrMissingRunNumber{Key: RunNumberKey})
		}
		run, ok := intValue(value)
		if !ok {
			return "", errors.WithStack(&jobdeferrors.ErrMissingRunNumber{Key: RunNumberKey})
		}
		return EventIDSequencer(run, plan.Index), nil
	case *SamplingInputs:
		// Sampling sets take the smallest sequencer of their files rather than being unsupported.
		var files []string
		for _, key := range maps.SortedKeys(plan.SamplingInputs) {
			files = append(files, plan.SamplingInputs[key]...)
		}
		return r.smallestSequencer(files)
	default:
		return "", errors.WithStack(&jobdeferrors.ErrUnsupportedConfiguration{
			Message: "job has neither file inputs nor event id settings",
		})
	}
}

// Sequencer returns the sequencer of job index without resolving the rest of its plan.
func (r *Resolver) Sequencer(d *Descriptor, index int) (string, error) {
	if err := checkIndex(d, index); err != nil {
		return "", err
	}
	plan := newJobPlan(index)
	if err := r.fillSource(d, plan); err != nil {
		return "", err
	}
	return r.encode(d, plan)
}

// IndexFromSequencer returns the index of the job with the given sequencer.
//
// Sequencers derived from input files cannot be predicted from the index, so finite job sets are searched
// exhaustively. For unlimited job sets the index is parsed from the sequencer and verified by re-encoding.
func (r *Resolver) IndexFromSequencer(d *Descriptor, sequencer string) (int, error) {
	if njobs := d.NumJobs(); njobs > 0 {
		for i := 0; i < njobs; i++ {
			seq, err := r.Sequencer(d, i)
			if err != nil {
				return 0, err
			}
			if seq == sequencer {
				log.WithField("sequencer", sequencer).Debugf("sequencer found at index %d of %d", i, njobs)
				return i, nil
			}
		}
		return 0, errors.WithStack(&jobdeferrors.ErrSequencerNotFound{Sequencer: sequencer, JobSet: d.JobName()})
	}

	pos := strings.LastIndex(sequencer, "_")
	if pos < 0 {
		return 0, errors.WithStack(&jobdeferrors.ErrMalformedSequencer{
			Sequencer: sequencer,
			Message:   "expected RRRRRR_SSSSSSSS",
		})
	}
	suffix := sequencer[pos+1:]
	if suffix == "" || strings.TrimLeft(suffix, "0123456789") != "" {
		return 0, errors.WithStack(&jobdeferrors.ErrMalformedSequencer{
			Sequencer: sequencer,
			Message:   "job index is not a decimal number",
		})
	}
	index, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, errors.WithStack(&jobdeferrors.ErrMalformedSequencer{Sequencer: sequencer, Message: err.Error()})
	}
	encoded, err := r.Sequencer(d, index)
	if err != nil {
		return 0, err
	}
	if encoded != sequencer {
		return 0, errors.WithStack(&jobdeferrors.ErrSequencerMismatch{
			Sequencer: sequencer,
			Index:     index,
			Encoded:   encoded,
		})
	}
	return index, nil
}

// IndexFromSourceFile returns the index of the job that reads filename as a primary input.
// Only basenames are compared.
func (r *Resolver) IndexFromSourceFile(d *Descriptor, filename string) (int, error) {
	src, ok := d.source.(*FileInputs)
	if ok {
		base := path.Base(filename)
		for i, f := range src.Files {
			if path.Base(f) == base {
				return i / src.MergeFactor, nil
			}
		}
	}
	return 0, errors.WithStack(&jobdeferrors.ErrFileNotAPrimaryInput{Filename: filename})
}

// intValue converts a literal run number setting into an int. Numbers decoded from JSON arrive as float64.
// Only whole numbers in [0, math.MaxInt32] are accepted.
func intValue(v any) (int, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) || x < 0 || x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case string:
		i, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
