// Package jobdefctl implements the jobdefctl commands. Each command is a method of App that writes its result
// to App.Out, so the commands can be driven from tests as well as from cobra.
package jobdefctl

import (
	"io"
	"os"

	"github.com/mu2e/jobdef/internal/archive"
	"github.com/mu2e/jobdef/internal/common/config"
	"github.com/mu2e/jobdef/internal/filename"
	"github.com/mu2e/jobdef/internal/filestage"
	"github.com/mu2e/jobdef/internal/jobdef"
)

// App is the jobdefctl application.
type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is where the output of commands is written.
	Out io.Writer
	// Resolver computes job plans.
	Resolver *jobdef.Resolver
}

// Params are the settings shared by all commands.
type Params struct {
	Archives        archive.Locator
	Stager          *filestage.Stager
	DefaultLocation filestage.Location
	DefaultProtocol filestage.Protocol
}

// New instantiates an App with default parameters, writing to stdout.
func New() *App {
	return &App{
		Params: &Params{
			Stager:          filestage.NewStager(nil, ""),
			DefaultLocation: filestage.LocationTape,
			DefaultProtocol: filestage.ProtocolFile,
		},
		Out:      os.Stdout,
		Resolver: jobdef.NewResolver(filename.Codec{}),
	}
}

// Configure sets p from loaded configuration.
func (p *Params) Configure(c *config.Config) {
	p.Archives = archive.Locator{Dir: c.ArchiveDir}
	p.Stager = filestage.NewStager(c.Staging.Roots, c.Staging.XrootdPrefix)
	p.DefaultLocation = c.Staging.DefaultLocation
	p.DefaultProtocol = c.Staging.DefaultProtocol
}

func (a *App) load(archiveID string) (*archive.Archive, error) {
	return a.Params.Archives.Load(archiveID)
}

// resolve loads the archive identified by archiveID and computes the plan of job index.
func (a *App) resolve(archiveID string, index int) (*archive.Archive, *jobdef.JobPlan, error) {
	ar, err := a.load(archiveID)
	if err != nil {
		return nil, nil, err
	}
	plan, err := a.Resolver.Resolve(ar.Descriptor, index)
	if err != nil {
		return nil, nil, err
	}
	return ar, plan, nil
}
