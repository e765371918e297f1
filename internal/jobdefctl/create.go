package jobdefctl

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/mu2e/jobdef/internal/archive"
	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/jobdef"
)

// CreateOptions are the inputs of a new job-set archive.
type CreateOptions struct {
	// JobPars is a JSON or YAML job parameter file.
	JobPars string
	// Template is an optional job configuration template file.
	Template string
	// Code is the code file to pack; required when the job parameters name one.
	Code     string
	Compress bool
}

// Create validates a job parameter file and packs it, with any template and code, into a new archive at out.
func (a *App) Create(out string, opts CreateOptions) (err error) {
	data, err := os.ReadFile(opts.JobPars)
	if err != nil {
		return errors.WithStack(err)
	}
	raw, err := archive.DecodeJobPars(data)
	if err != nil {
		return errors.WithStack(&jobdeferrors.ErrSchema{Message: err.Error()})
	}
	d, err := jobdef.NewDescriptor(raw)
	if err != nil {
		return errors.WithMessagef(err, "job parameters %s", opts.JobPars)
	}

	contents := archive.Contents{Descriptor: d}
	if opts.Template != "" {
		template, err := os.ReadFile(opts.Template)
		if err != nil {
			return errors.WithStack(err)
		}
		contents.Template = string(template)
	}
	switch {
	case d.Code() != "" && opts.Code == "":
		return errors.WithStack(&jobdeferrors.ErrInvalidArgument{
			Name:    "code",
			Value:   opts.Code,
			Message: fmt.Sprintf("the job parameters name code member %q", d.Code()),
		})
	case d.Code() == "" && opts.Code != "":
		return errors.WithStack(&jobdeferrors.ErrInvalidArgument{
			Name:    "code",
			Value:   opts.Code,
			Message: "the job parameters do not name a code member",
		})
	case opts.Code != "":
		if contents.Code, err = os.ReadFile(opts.Code); err != nil {
			return errors.WithStack(err)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = errors.WithStack(closeErr)
		}
	}()
	if err := archive.Write(f, contents, opts.Compress); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Created %s with %d jobs\n", out, a.Resolver.NumJobs(d))
	return nil
}
