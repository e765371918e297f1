// Package jobdeferrors contains the errors returned when loading job-set definitions and resolving the jobs
// within them. Each error type echoes back the input that caused it, so callers can report it without
// further context.
//
// Errors are typically wrapped with github.com/pkg/errors on their way up. Use KindOf or ExitCodeFromError,
// which look through the whole chain with errors.As, rather than comparing the topmost error.
//
// If multiple errors occur in some function (e.g., a descriptor with several schema violations), that
// function should return an error of type multierror.Error from package
// github.com/hashicorp/go-multierror that encapsulates those individual errors.
package jobdeferrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind groups errors by who is at fault and whether they are worth reporting differently.
type Kind int

const (
	KindUnknown Kind = iota
	// KindCaller is a precondition violated by the caller, e.g. an index past the end of the job set.
	KindCaller
	// KindNotFound is a lookup that did not match anything.
	KindNotFound
	// KindSchema is a malformed or contradictory job-set definition.
	KindSchema
	// KindIncomplete is a structurally valid definition that lacks something the operation needs.
	KindIncomplete
)

func (k Kind) String() string {
	switch k {
	case KindCaller:
		return "caller"
	case KindNotFound:
		return "not found"
	case KindSchema:
		return "schema"
	case KindIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// ErrSchema is returned when a job-set definition is malformed or contradictory.
// Field is optional and is omitted from the error message if not provided.
type ErrSchema struct {
	Field   string // e.g. "tbs.inputs"
	Message string
}

func (err *ErrSchema) Error() string {
	if err.Field == "" {
		return fmt.Sprintf("invalid job set definition: %s", err.Message)
	}
	return fmt.Sprintf("invalid job set definition: field %q: %s", err.Field, err.Message)
}

// ErrIndexOutOfRange is returned when a job index is negative or not below the number of jobs in a finite set.
type ErrIndexOutOfRange struct {
	Index int
	NJobs int // 0 means the job set is unlimited
}

func (err *ErrIndexOutOfRange) Error() string {
	if err.NJobs == 0 {
		return fmt.Sprintf("job index %d is out of range; must not be negative", err.Index)
	}
	return fmt.Sprintf("job index %d is out of range [0, %d)", err.Index, err.NJobs)
}

// ErrInvalidIndex is returned by the range partitioner when an index starts past the end of a file list.
type ErrInvalidIndex struct {
	Index       int
	MergeFactor int
	NumFiles    int
}

func (err *ErrInvalidIndex) Error() string {
	return fmt.Sprintf(
		"index %d with merge factor %d starts past the end of a list of %d files",
		err.Index, err.MergeFactor, err.NumFiles,
	)
}

// ErrInvalidRequest is returned by the sampler when more files are requested than are available.
type ErrInvalidRequest struct {
	Requested int
	Available int
}

func (err *ErrInvalidRequest) Error() string {
	return fmt.Sprintf("requested %d files from a list of %d", err.Requested, err.Available)
}

// ErrSequencerNotFound is returned when no job in a finite set has the given sequencer.
type ErrSequencerNotFound struct {
	Sequencer string
	JobSet    string // optional
}

func (err *ErrSequencerNotFound) Error() string {
	if err.JobSet == "" {
		return fmt.Sprintf("no job has sequencer %q", err.Sequencer)
	}
	return fmt.Sprintf("no job in %s has sequencer %q", err.JobSet, err.Sequencer)
}

// ErrMalformedSequencer is returned when a sequencer cannot be parsed back into a job index.
type ErrMalformedSequencer struct {
	Sequencer string
	Message   string // optional
}

func (err *ErrMalformedSequencer) Error() string {
	s := fmt.Sprintf("malformed sequencer %q", err.Sequencer)
	if err.Message != "" {
		s = s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// ErrSequencerMismatch is returned when a parsed sequencer does not re-encode to itself.
type ErrSequencerMismatch struct {
	Sequencer string
	Index     int
	Encoded   string
}

func (err *ErrSequencerMismatch) Error() string {
	return fmt.Sprintf("sequencer %q parses to index %d, which encodes to %q", err.Sequencer, err.Index, err.Encoded)
}

// ErrFileNotAPrimaryInput is returned when a file is not in the primary input list of a job set.
type ErrFileNotAPrimaryInput struct {
	Filename string
}

func (err *ErrFileNotAPrimaryInput) Error() string {
	return fmt.Sprintf("file %q is not a primary input of the job set", err.Filename)
}

// ErrMissingRunNumber is returned when an event-id job set has no run number to build sequencers from.
type ErrMissingRunNumber struct {
	Key string
}

func (err *ErrMissingRunNumber) Error() string {
	return fmt.Sprintf("no run number configured under %q", err.Key)
}

// ErrUnsupportedConfiguration is returned when a job has nothing a sequencer can be derived from.
type ErrUnsupportedConfiguration struct {
	Message string
}

func (err *ErrUnsupportedConfiguration) Error() string {
	return fmt.Sprintf("unsupported job configuration: %s", err.Message)
}

// ErrNotFound is a generic error to be returned whenever some resource isn't found.
// Type and Message are optional and are omitted from the error message if not provided.
type ErrNotFound struct {
	Type    string // Resource type, e.g., "archive"
	Value   string // Resource name, e.g., "cnf.mu2e.test.v0.0.tar"
	Message string
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("resource %q of type %q does not exist", err.Value, err.Type)
	} else {
		s = fmt.Sprintf("resource %q does not exist", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// ErrInvalidArgument is a generic error to be returned on invalid argument.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string // Name of the field referred to, e.g., "location"
	Value   any    // The invalid value that was provided
	Message string // An optional message to include with the error message, e.g., explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", err.Value, err.Name)
	}
	return fmt.Sprintf("value %q is invalid for field %q; %s", err.Value, err.Name, err.Message)
}

// ErrCorruptArchive is returned when a job-set archive cannot be read or lacks a required member.
type ErrCorruptArchive struct {
	Path    string
	Message string
}

func (err *ErrCorruptArchive) Error() string {
	return fmt.Sprintf("corrupt job set archive %q: %s", err.Path, err.Message)
}

// ErrMalformedFilename is returned when a basename does not follow the six-field dataset naming convention.
type ErrMalformedFilename struct {
	Filename string
	Message  string // optional
}

func (err *ErrMalformedFilename) Error() string {
	s := fmt.Sprintf("malformed filename %q", err.Filename)
	if err.Message != "" {
		s = s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// KindOf classifies err by the known error types in its chain, checked in a fixed order.
// Uses errors.As to look through the chain of errors, as opposed to just considering the topmost error in the chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	// Using {} scopes just to re-use the "e" variable name for each case.
	{
		var e *ErrSchema
		if errors.As(err, &e) {
			return KindSchema
		}
	}
	{
		var e *ErrCorruptArchive
		if errors.As(err, &e) {
			return KindSchema
		}
	}
	{
		var e *ErrMalformedFilename
		if errors.As(err, &e) {
			return KindSchema
		}
	}
	{
		var e *ErrIndexOutOfRange
		if errors.As(err, &e) {
			return KindCaller
		}
	}
	{
		var e *ErrInvalidIndex
		if errors.As(err, &e) {
			return KindCaller
		}
	}
	{
		var e *ErrInvalidRequest
		if errors.As(err, &e) {
			return KindCaller
		}
	}
	{
		var e *ErrMalformedSequencer
		if errors.As(err, &e) {
			return KindCaller
		}
	}
	{
		var e *ErrInvalidArgument
		if errors.As(err, &e) {
			return KindCaller
		}
	}
	{
		var e *ErrSequencerNotFound
		if errors.As(err, &e) {
			return KindNotFound
		}
	}
	{
		var e *ErrSequencerMismatch
		if errors.As(err, &e) {
			return KindNotFound
		}
	}
	{
		var e *ErrFileNotAPrimaryInput
		if errors.As(err, &e) {
			return KindNotFound
		}
	}
	{
		var e *ErrNotFound
		if errors.As(err, &e) {
			return KindNotFound
		}
	}
	{
		var e *ErrMissingRunNumber
		if errors.As(err, &e) {
			return KindIncomplete
		}
	}
	{
		var e *ErrUnsupportedConfiguration
		if errors.As(err, &e) {
			return KindIncomplete
		}
	}

	return KindUnknown
}

// ExitCodeFromError maps error kinds to process exit codes. A nil error maps to 0.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindCaller:
		return 2
	case KindNotFound:
		return 3
	case KindSchema:
		return 4
	case KindIncomplete:
		return 5
	default:
		return 1
	}
}
