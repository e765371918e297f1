// Package logging configures the process-wide logrus logger and adds error details to log entries.
package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ConfigureCommandLineLogging sends log output to stderr with full timestamps, leaving stdout to command output.
func ConfigureCommandLineLogging() {
	configure(log.StandardLogger(), os.Stderr)
}

func configure(logger *log.Logger, out io.Writer) {
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger.SetOutput(out)
	logger.SetLevel(log.InfoLevel)
}

// SetLevel sets the level of the standard logger from one of the logrus level names.
func SetLevel(level string) error {
	l, err := log.ParseLevel(level)
	if err != nil {
		return errors.WithStack(err)
	}
	log.SetLevel(l)
	return nil
}
