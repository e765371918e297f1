package jobdefctl

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mu2e/jobdef/internal/common/maps"
	"github.com/mu2e/jobdef/internal/jobdef"
)

// DescribePlan prints the plan of job index of a job set in human-readable form.
func (a *App) DescribePlan(archiveID string, index int) error {
	ar, plan, err := a.resolve(archiveID, index)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
	fmt.Fprintf(w, "Job set:\t%s\n", ar.Descriptor.JobName())
	fmt.Fprintf(w, "Index:\t%d\n", plan.Index)
	fmt.Fprintf(w, "Sequencer:\t%s\n", plan.Sequencer)
	printFiles(w, "Input", plan.PrimaryInputs)
	printFiles(w, "Auxiliary input", plan.AuxInputs)
	printFiles(w, "Sampling input", plan.SamplingInputs)
	for _, key := range maps.SortedKeys(plan.Outputs) {
		fmt.Fprintf(w, "Output %s:\t%s\n", key, plan.Outputs[key])
	}
	for _, key := range maps.SortedKeys(plan.EventSettings) {
		fmt.Fprintf(w, "Setting %s:\t%v\n", key, plan.EventSettings[key])
	}
	if plan.Seed != nil {
		fmt.Fprintf(w, "Seed %s:\t%d\n", plan.Seed.Key, plan.Seed.Value)
	}
	return w.Flush()
}

func printFiles(w io.Writer, label string, files map[string][]string) {
	for _, key := range maps.SortedKeys(files) {
		fmt.Fprintf(w, "%s %s:\t", label, key)
		if len(files[key]) == 0 {
			fmt.Fprintln(w, "(none)")
		}
		for i, f := range files[key] {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprintln(w, f)
		}
	}
}

// FCL prints the configuration of job index of a job set: the set's template followed by the job's own
// settings.
func (a *App) FCL(archiveID string, index int) error {
	ar, plan, err := a.resolve(archiveID, index)
	if err != nil {
		return err
	}
	return jobdef.WriteFCL(a.Out, ar.Template, plan)
}
