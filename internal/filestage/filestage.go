// Package filestage maps dataset file names to the paths jobs read them from.
package filestage

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/filename"
)

// Location is where a dataset is stored: LocationDisk, LocationTape, LocationScratch, or "dir:" followed by
// a directory holding the files directly.
type Location string

const (
	LocationDisk    Location = "disk"
	LocationTape    Location = "tape"
	LocationScratch Location = "scratch"

	dirPrefix = "dir:"
)

// Protocol is how a job accesses a staged file.
type Protocol string

const (
	ProtocolFile  Protocol = "file"
	ProtocolXroot Protocol = "root"
)

const pnfsPrefix = "/pnfs/"

// DefaultRoots are the standard dataset areas.
var DefaultRoots = map[Location]string{
	LocationDisk:    "/pnfs/mu2e/persistent/datasets",
	LocationTape:    "/pnfs/mu2e/tape",
	LocationScratch: "/pnfs/mu2e/scratch/datasets",
}

const DefaultXrootdPrefix = "root://fndcadoor.fnal.gov:1094/pnfs/fnal.gov/usr/"

// ParseLocation validates s as a Location.
func ParseLocation(s string) (Location, error) {
	switch l := Location(s); l {
	case LocationDisk, LocationTape, LocationScratch:
		return l, nil
	default:
		if strings.HasPrefix(s, dirPrefix) && len(s) > len(dirPrefix) {
			return l, nil
		}
		return "", errors.WithStack(&jobdeferrors.ErrInvalidArgument{
			Name:    "location",
			Value:   s,
			Message: "expected disk, tape, scratch or dir:<path>",
		})
	}
}

// Dir returns the directory of a "dir:" location.
func (l Location) Dir() (string, bool) {
	if !strings.HasPrefix(string(l), dirPrefix) {
		return "", false
	}
	return strings.TrimPrefix(string(l), dirPrefix), true
}

// ParseProtocol validates s as a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(s); p {
	case ProtocolFile, ProtocolXroot:
		return p, nil
	default:
		return "", errors.WithStack(&jobdeferrors.ErrInvalidArgument{
			Name:    "protocol",
			Value:   s,
			Message: "expected file or root",
		})
	}
}

// Stager computes staging paths. The zero value is not usable; use NewStager.
type Stager struct {
	roots        map[Location]string
	xrootdPrefix string
}

// NewStager returns a Stager using roots for the standard locations, falling back to DefaultRoots for any
// location roots does not name, and xrootdPrefix in place of /pnfs/ for xrootd access.
func NewStager(roots map[Location]string, xrootdPrefix string) *Stager {
	s := &Stager{roots: map[Location]string{}, xrootdPrefix: xrootdPrefix}
	for l, root := range DefaultRoots {
		s.roots[l] = root
	}
	for l, root := range roots {
		s.roots[l] = root
	}
	if s.xrootdPrefix == "" {
		s.xrootdPrefix = DefaultXrootdPrefix
	}
	return s
}

// Path returns where the file named basename is found at location, as seen through protocol.
//
// Files in the standard locations are spread over a directory tree keyed by their dataset and by the first
// two byte pairs of the hex SHA-256 of their basename.
func (s *Stager) Path(basename string, location Location, protocol Protocol) (string, error) {
	fn, err := filename.Parse(basename)
	if err != nil {
		return "", err
	}

	var p string
	if dir, ok := location.Dir(); ok {
		p = path.Join(dir, basename)
	} else {
		root, ok := s.roots[location]
		if !ok {
			return "", errors.WithStack(&jobdeferrors.ErrInvalidArgument{Name: "location", Value: string(location)})
		}
		sum := sha256.Sum256([]byte(basename))
		h := hex.EncodeToString(sum[:])
		p = path.Join(
			root, family(fn), fn.Tier, fn.Owner, fn.Description, fn.Configuration, fn.Extension,
			h[0:2], h[2:4], basename,
		)
	}

	switch protocol {
	case ProtocolFile:
		return p, nil
	case ProtocolXroot:
		if !strings.HasPrefix(p, pnfsPrefix) {
			return "", errors.WithStack(&jobdeferrors.ErrInvalidArgument{
				Name:    "protocol",
				Value:   string(protocol),
				Message: "xrootd access is only available under " + pnfsPrefix,
			})
		}
		return s.xrootdPrefix + strings.TrimPrefix(p, pnfsPrefix), nil
	default:
		return "", errors.WithStack(&jobdeferrors.ErrInvalidArgument{Name: "protocol", Value: string(protocol)})
	}
}

// family is the file family a dataset is stored in: collaboration (phy) or user (usr) owned, and art event
// data (sim), ROOT ntuples (nts) or anything else (etc).
func family(fn filename.Filename) string {
	owner := "usr"
	if fn.Owner == "mu2e" {
		owner = "phy"
	}
	kind := "etc"
	switch fn.Extension {
	case "art":
		kind = "sim"
	case "root":
		kind = "nts"
	}
	return owner + "-" + kind
}
