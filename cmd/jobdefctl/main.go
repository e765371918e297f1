package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/mu2e/jobdef/cmd/jobdefctl/cmd"
	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/common/logging"
)

func main() {
	logging.ConfigureCommandLineLogging()
	if err := cmd.RootCmd().Execute(); err != nil {
		logging.WithStacktrace(log.NewEntry(log.StandardLogger()), err).Error("command failed")
		os.Exit(jobdeferrors.ExitCodeFromError(err))
	}
}
