package jobdefctl

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// NumJobs prints the number of jobs in a job set; 0 means the set is unlimited.
func (a *App) NumJobs(archiveID string) error {
	ar, err := a.load(archiveID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, a.Resolver.NumJobs(ar.Descriptor))
	return nil
}

// Datasets prints the datasets a job set reads, writes, or both when neither inputs nor outputs is set.
func (a *App) Datasets(archiveID string, inputs bool, outputs bool) error {
	ar, err := a.load(archiveID)
	if err != nil {
		return err
	}
	if !inputs && !outputs {
		inputs, outputs = true, true
	}

	var names []string
	if inputs {
		in, err := a.Resolver.InputDatasets(ar.Descriptor)
		if err != nil {
			return errors.WithMessage(err, "input datasets")
		}
		names = append(names, in...)
	}
	if outputs {
		out, err := a.Resolver.OutputDatasets(ar.Descriptor)
		if err != nil {
			return errors.WithMessage(err, "output datasets")
		}
		names = append(names, out...)
	}
	if len(names) > 0 {
		fmt.Fprintln(a.Out, strings.Join(names, "\n"))
	}
	return nil
}

// IndexFromSequencer prints the index of the job of a set with the given sequencer.
func (a *App) IndexFromSequencer(archiveID string, sequencer string) error {
	ar, err := a.load(archiveID)
	if err != nil {
		return err
	}
	index, err := a.Resolver.IndexFromSequencer(ar.Descriptor, sequencer)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, index)
	return nil
}

// IndexFromSourceFile prints the index of the job of a set that reads the given primary input file.
func (a *App) IndexFromSourceFile(archiveID string, filename string) error {
	ar, err := a.load(archiveID)
	if err != nil {
		return err
	}
	index, err := a.Resolver.IndexFromSourceFile(ar.Descriptor, filename)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, index)
	return nil
}
