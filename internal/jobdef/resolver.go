package jobdef

import (
	"path"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	goslices "golang.org/x/exp/slices"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/common/maps"
	"github.com/mu2e/jobdef/internal/common/slices"
)

// FilenameCodec reads and rewrites the facets of dataset file names the resolver needs.
type FilenameCodec interface {
	Sequencer(basename string) (string, error)
	DatasetName(basename string) (string, error)
	WithSequencer(basename string, sequencer string) (string, error)
}

// Resolver computes the plans of individual jobs of a job set. It holds no state besides the filename codec,
// so a single Resolver may be used concurrently.
type Resolver struct {
	names FilenameCodec
}

func NewResolver(names FilenameCodec) *Resolver {
	return &Resolver{names: names}
}

func checkIndex(d *Descriptor, index int) error {
	njobs := d.NumJobs()
	if index < 0 || (njobs > 0 && index >= njobs) {
		return errors.WithStack(&jobdeferrors.ErrIndexOutOfRange{Index: index, NJobs: njobs})
	}
	return nil
}

// Resolve computes the plan of job index.
func (r *Resolver) Resolve(d *Descriptor, index int) (*JobPlan, error) {
	if err := checkIndex(d, index); err != nil {
		return nil, err
	}
	plan := newJobPlan(index)

	if err := r.fillSource(d, plan); err != nil {
		return nil, err
	}

	for _, key := range maps.SortedKeys(d.aux) {
		spec := d.aux[key]
		files, err := Sample(index, spec.Count, spec.Files)
		if err != nil {
			return nil, errors.WithMessagef(err, "auxiliary input %s", key)
		}
		plan.AuxInputs[key] = files
	}

	seq, err := r.encode(d, plan)
	if err != nil {
		return nil, err
	}
	plan.Sequencer = seq

	for _, key := range maps.SortedKeys(d.outFiles) {
		name, err := r.names.WithSequencer(d.outFiles[key], seq)
		if err != nil {
			return nil, errors.WithMessagef(err, "output %s", key)
		}
		plan.Outputs[key] = name
	}

	// File-driven sets carry the sub-run in their inputs, so only the other sources get a sub-run setting.
	if _, fileDriven := d.source.(*FileInputs); !fileDriven {
		key := DefaultSubrunKey
		if d.subrunKey != nil {
			key = *d.subrunKey
		}
		if key != "" {
			plan.EventSettings[key] = index
		}
	}

	if d.seedKey != "" {
		// One-based so that no job gets a zero seed.
		plan.Seed = &Seed{Key: d.seedKey, Value: index + 1}
	}

	log.WithField("jobname", d.JobName()).Debugf("resolved job %d with sequencer %s", index, seq)
	return plan, nil
}

// fillSource sets the primary inputs, sampling inputs or event settings of plan.
func (r *Resolver) fillSource(d *Descriptor, plan *JobPlan) error {
	switch src := d.source.(type) {
	case *FileInputs:
		files, err := Partition(plan.Index, src.MergeFactor, src.Files)
		if err != nil {
			return errors.WithMessagef(err, "primary input %s", src.Key)
		}
		plan.PrimaryInputs[src.Key] = files
	case *SamplingInputs:
		for _, key := range maps.SortedKeys(src.Inputs) {
			spec := src.Inputs[key]
			files, err := Partition(plan.Index, samplingStride(spec), spec.Files)
			if err != nil {
				return errors.WithMessagef(err, "sampling input %s", key)
			}
			plan.SamplingInputs[key] = files
		}
	case *EventIDSource:
		for key, value := range src.Settings {
			plan.EventSettings[key] = cloneValue(value)
		}
	}
	return nil
}

// NumJobs is the number of jobs in the set, or 0 if the set is unlimited.
func (r *Resolver) NumJobs(d *Descriptor) int {
	return d.NumJobs()
}

// InputDatasets returns the sorted names of every dataset the job set reads from.
func (r *Resolver) InputDatasets(d *Descriptor) ([]string, error) {
	var files []string
	switch src := d.source.(type) {
	case *FileInputs:
		files = append(files, src.Files...)
	case *SamplingInputs:
		for _, key := range maps.SortedKeys(src.Inputs) {
			files = append(files, src.Inputs[key].Files...)
		}
	}
	for _, key := range maps.SortedKeys(d.aux) {
		files = append(files, d.aux[key].Files...)
	}
	return r.datasets(files)
}

// OutputDatasets returns the sorted names of every dataset the job set writes to.
func (r *Resolver) OutputDatasets(d *Descriptor) ([]string, error) {
	templates := make([]string, 0, len(d.outFiles))
	for _, key := range maps.SortedKeys(d.outFiles) {
		templates = append(templates, d.outFiles[key])
	}
	return r.datasets(templates)
}

func (r *Resolver) datasets(files []string) ([]string, error) {
	names := make([]string, 0, len(files))
	for _, f := range files {
		ds, err := r.names.DatasetName(path.Base(f))
		if err != nil {
			return nil, err
		}
		names = append(names, ds)
	}
	names = slices.Unique(names)
	goslices.Sort(names)
	return names, nil
}
