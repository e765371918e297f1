package jobdef

import (
	"github.com/mu2e/jobdef/internal/common/maps"
	"github.com/mu2e/jobdef/internal/common/slices"
)

// Seed is the random seed setting of a job.
type Seed struct {
	Key   string
	Value int
}

// JobPlan is everything that distinguishes one job of a set from the others. Plans are computed on demand
// and never stored.
type JobPlan struct {
	Index int
	// Files keyed by the configuration setting they are assigned to.
	PrimaryInputs  map[string][]string
	AuxInputs      map[string][]string
	SamplingInputs map[string][]string
	// Output file names with the sequencer filled in.
	Outputs map[string]string
	// Literal settings, including the sub-run setting if there is one.
	EventSettings map[string]any
	Seed          *Seed
	Sequencer     string
}

func newJobPlan(index int) *JobPlan {
	return &JobPlan{
		Index:          index,
		PrimaryInputs:  map[string][]string{},
		AuxInputs:      map[string][]string{},
		SamplingInputs: map[string][]string{},
		Outputs:        map[string]string{},
		EventSettings:  map[string]any{},
	}
}

// AllInputs returns every input file of the job: primary inputs, then auxiliary inputs, then sampling
// inputs, each group in configuration key order.
func (p *JobPlan) AllInputs() []string {
	var groups [][]string
	for _, m := range []map[string][]string{p.PrimaryInputs, p.AuxInputs, p.SamplingInputs} {
		for _, key := range maps.SortedKeys(m) {
			groups = append(groups, m[key])
		}
	}
	return slices.Flatten(groups)
}
