// Package archive reads and writes job-set archives: tar files, optionally gzip-compressed, holding the job
// parameters, the job configuration template and, optionally, a code tarball.
package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/jobdef"
)

const (
	// JobParsMember holds the serialized jobdef.RawDescriptor.
	JobParsMember = "jobpars.json"
	// TemplateMember holds the configuration template shared by every job of the set.
	TemplateMember = "mu2e.fcl"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Archive is a loaded job-set archive.
type Archive struct {
	// Path the archive was loaded from; empty if it was read from a stream.
	Path       string
	Descriptor *jobdef.Descriptor
	// Template is empty if the archive has no template member.
	Template string
	// Size in bytes of the code member named by the descriptor, if any.
	CodeSize int64
}

// Contents are the members to pack into a new archive.
type Contents struct {
	Descriptor *jobdef.Descriptor
	Template   string
	// Code is stored under Descriptor.Code(); it must be non-nil exactly when a code member is named.
	Code []byte
}

// Load reads the archive at path.
func Load(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithStack(&jobdeferrors.ErrNotFound{Type: "archive", Value: path})
		}
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	a, err := Read(f, path)
	if err != nil {
		return nil, err
	}
	a.Path = path
	log.WithField("archive", path).Debugf("loaded job set %q with %d jobs", a.Descriptor.JobName(), a.Descriptor.NumJobs())
	return a, nil
}

// Read reads an archive from r; name is used in error messages only.
func Read(r io.Reader, name string) (*Archive, error) {
	corrupt := func(format string, args ...any) error {
		return errors.WithStack(&jobdeferrors.ErrCorruptArchive{Path: name, Message: fmt.Sprintf(format, args...)})
	}

	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(gzipMagic)); err == nil && bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, corrupt("%s", err)
		}
		defer zr.Close()
		r = zr
	} else {
		r = br
	}

	var jobPars []byte
	var template string
	members := map[string]int64{}
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, corrupt("%s", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		members[hdr.Name] = hdr.Size
		switch hdr.Name {
		case JobParsMember:
			if jobPars, err = io.ReadAll(tr); err != nil {
				return nil, corrupt("reading %s: %s", JobParsMember, err)
			}
		case TemplateMember:
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, corrupt("reading %s: %s", TemplateMember, err)
			}
			template = string(data)
		}
	}

	if jobPars == nil {
		return nil, corrupt("no %s member", JobParsMember)
	}
	raw, err := DecodeJobPars(jobPars)
	if err != nil {
		return nil, corrupt("%s", err)
	}
	d, err := jobdef.NewDescriptor(raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "archive %s", name)
	}

	a := &Archive{Descriptor: d, Template: template}
	if code := d.Code(); code != "" {
		size, ok := members[code]
		if !ok {
			return nil, corrupt("code member %q is missing", code)
		}
		a.CodeSize = size
	}
	return a, nil
}

// DecodeJobPars decodes a job parameter document. YAML is accepted as well as JSON.
func DecodeJobPars(data []byte) (*jobdef.RawDescriptor, error) {
	raw := &jobdef.RawDescriptor{}
	if err := yaml.Unmarshal(data, raw); err != nil {
		return nil, errors.Wrap(err, "decoding job parameters")
	}
	return raw, nil
}

// Write packs contents into a tar stream written to w, gzip-compressed if compress is set.
func Write(w io.Writer, contents Contents, compress bool) (err error) {
	d := contents.Descriptor
	if d == nil {
		return errors.New("no job set descriptor to write")
	}
	if (d.Code() != "") != (contents.Code != nil) {
		return errors.Errorf("code member %q does not match the code supplied", d.Code())
	}
	jobPars, err := json.MarshalIndent(d.Raw(), "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	if compress {
		zw := gzip.NewWriter(w)
		defer func() {
			if closeErr := zw.Close(); err == nil {
				err = errors.WithStack(closeErr)
			}
		}()
		w = zw
	}

	tw := tar.NewWriter(w)
	now := time.Now()
	add := func(name string, data []byte) error {
		hdr := &tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(data)),
			ModTime:  now,
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return errors.WithStack(err)
		}
		_, err := tw.Write(data)
		return errors.WithStack(err)
	}
	if err := add(JobParsMember, jobPars); err != nil {
		return err
	}
	if contents.Template != "" {
		if err := add(TemplateMember, []byte(contents.Template)); err != nil {
			return err
		}
	}
	if d.Code() != "" {
		if err := add(d.Code(), contents.Code); err != nil {
			return err
		}
	}
	return errors.WithStack(tw.Close())
}

// Locator finds archives by path, or by name within a directory.
type Locator struct {
	Dir string
}

// Locate returns the path of the archive identified by identifier: identifier itself if it exists,
// otherwise identifier within Dir.
func (l Locator) Locate(identifier string) (string, error) {
	if _, err := os.Stat(identifier); err == nil {
		return identifier, nil
	}
	if l.Dir != "" && !filepath.IsAbs(identifier) {
		candidate := filepath.Join(l.Dir, identifier)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.WithStack(&jobdeferrors.ErrNotFound{Type: "archive", Value: identifier})
}

// Load locates and loads the archive identified by identifier.
func (l Locator) Load(identifier string) (*Archive, error) {
	path, err := l.Locate(identifier)
	if err != nil {
		return nil, err
	}
	return Load(path)
}
