// Package filename parses and formats basenames that follow the dataset naming convention
//
//	tier.owner.description.configuration.sequencer.extension
//
// Files sharing every field except the sequencer belong to the same dataset.
package filename

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
)

const numFields = 6

// Filename is a parsed basename.
type Filename struct {
	Tier          string
	Owner         string
	Description   string
	Configuration string
	Sequencer     string
	Extension     string
}

// Parse splits basename into its six fields. Directory components are not accepted.
func Parse(basename string) (Filename, error) {
	if strings.ContainsRune(basename, '/') {
		return Filename{}, errors.WithStack(&jobdeferrors.ErrMalformedFilename{
			Filename: basename,
			Message:  "expected a basename without directories",
		})
	}
	fields := strings.Split(basename, ".")
	if len(fields) != numFields {
		return Filename{}, errors.WithStack(&jobdeferrors.ErrMalformedFilename{
			Filename: basename,
			Message:  "expected six dot-separated fields",
		})
	}
	for _, f := range fields {
		if f == "" {
			return Filename{}, errors.WithStack(&jobdeferrors.ErrMalformedFilename{
				Filename: basename,
				Message:  "empty field",
			})
		}
	}
	return Filename{
		Tier:          fields[0],
		Owner:         fields[1],
		Description:   fields[2],
		Configuration: fields[3],
		Sequencer:     fields[4],
		Extension:     fields[5],
	}, nil
}

// Basename formats the filename back into its dotted form.
func (f Filename) Basename() string {
	return strings.Join([]string{f.Tier, f.Owner, f.Description, f.Configuration, f.Sequencer, f.Extension}, ".")
}

// Dataset is the name of the dataset the file belongs to: the basename without its sequencer.
func (f Filename) Dataset() string {
	return strings.Join([]string{f.Tier, f.Owner, f.Description, f.Configuration, f.Extension}, ".")
}

// WithSequencer returns a copy of f with its sequencer replaced.
func (f Filename) WithSequencer(sequencer string) Filename {
	f.Sequencer = sequencer
	return f
}

// Codec exposes parsing and formatting on plain basenames.
type Codec struct{}

// Sequencer returns the sequencer field of basename.
func (Codec) Sequencer(basename string) (string, error) {
	f, err := Parse(basename)
	if err != nil {
		return "", err
	}
	return f.Sequencer, nil
}

// DatasetName returns the dataset basename belongs to.
func (Codec) DatasetName(basename string) (string, error) {
	f, err := Parse(basename)
	if err != nil {
		return "", err
	}
	return f.Dataset(), nil
}

// WithSequencer returns basename with its sequencer field replaced by sequencer.
func (Codec) WithSequencer(basename string, sequencer string) (string, error) {
	f, err := Parse(basename)
	if err != nil {
		return "", err
	}
	if strings.ContainsRune(sequencer, '.') || sequencer == "" {
		return "", errors.WithStack(&jobdeferrors.ErrMalformedFilename{
			Filename: f.WithSequencer(sequencer).Basename(),
			Message:  "sequencer must be non-empty and must not contain dots",
		})
	}
	return f.WithSequencer(sequencer).Basename(), nil
}
