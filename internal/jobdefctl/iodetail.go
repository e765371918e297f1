package jobdefctl

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mu2e/jobdef/internal/common/maps"
	"github.com/mu2e/jobdef/internal/filestage"
)

// IODetail prints the files job index of a job set reads, as staged paths, followed by the files it writes.
// Empty location or protocol fall back to the configured defaults.
func (a *App) IODetail(archiveID string, index int, location string, protocol string) error {
	loc := a.Params.DefaultLocation
	if location != "" {
		l, err := filestage.ParseLocation(location)
		if err != nil {
			return err
		}
		loc = l
	}
	proto := a.Params.DefaultProtocol
	if protocol != "" {
		p, err := filestage.ParseProtocol(protocol)
		if err != nil {
			return err
		}
		proto = p
	}

	_, plan, err := a.resolve(archiveID, index)
	if err != nil {
		return err
	}

	for _, f := range plan.AllInputs() {
		p, err := a.Params.Stager.Path(f, loc, proto)
		if err != nil {
			return errors.WithMessagef(err, "staging %s", f)
		}
		fmt.Fprintf(a.Out, "in\t%s\n", p)
	}
	for _, key := range maps.SortedKeys(plan.Outputs) {
		fmt.Fprintf(a.Out, "out\t%s\n", plan.Outputs[key])
	}
	return nil
}
