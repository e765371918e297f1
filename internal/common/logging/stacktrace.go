package logging

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
)

const (
	Stacktrace = "stacktrace"
	ErrorKind  = "kind"
)

// Unexported but considered part of the stable interface of pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Unexported but considered part of the stable interface of pkg/errors.
type causer interface {
	Cause() error
}

// WithStacktrace returns a new logrus.Entry obtained by adding the error, its kind and, if available, a stack
// trace as fields to the provided logrus.Entry.
func WithStacktrace(logger *logrus.Entry, err error) *logrus.Entry {
	logger = logger.WithError(err).WithField(ErrorKind, jobdeferrors.KindOf(err).String())
	stack := ExtractStack(err)
	if stack != nil {
		logger = logger.WithField(Stacktrace, stack)
	}
	return logger
}

// ExtractStack walks down the list of errors and retrieves the first errors.StackTrace it encounters.
// Both pkg/errors causes and standard library wrapping are followed. If no stacktraces are found, it returns nil.
func ExtractStack(err error) errors.StackTrace {
	if stackErr, ok := err.(stackTracer); ok {
		return stackErr.StackTrace()
	} else if causeErr, ok := err.(causer); ok {
		return ExtractStack(causeErr.Cause())
	} else if next := errors.Unwrap(err); next != nil {
		return ExtractStack(next)
	}
	return nil
}
