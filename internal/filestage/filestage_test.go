package filestage

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
)

func TestParseLocation(t *testing.T) {
	for _, s := range []string{"disk", "tape", "scratch", "dir:/data/files"} {
		l, err := ParseLocation(s)
		require.NoError(t, err)
		assert.Equal(t, Location(s), l)
	}
	for _, s := range []string{"", "Disk", "dir:", "nfs"} {
		_, err := ParseLocation(s)
		var e *jobdeferrors.ErrInvalidArgument
		assert.True(t, errors.As(err, &e), "expected ErrInvalidArgument for %q but got %v", s, err)
	}
}

func TestParseProtocol(t *testing.T) {
	p, err := ParseProtocol("root")
	require.NoError(t, err)
	assert.Equal(t, ProtocolXroot, p)

	_, err = ParseProtocol("https")
	assert.Error(t, err)
}

func TestStager_Path(t *testing.T) {
	s := NewStager(nil, "")
	tests := map[string]struct {
		basename string
		location Location
		protocol Protocol
		expected string
	}{
		"tape": {
			basename: "dts.mu2e.CeEndpoint.MDC2020r.001202_00000000.art",
			location: LocationTape,
			protocol: ProtocolFile,
			expected: "/pnfs/mu2e/tape/phy-sim/dts/mu2e/CeEndpoint/MDC2020r/art/b4/93/dts.mu2e.CeEndpoint.MDC2020r.001202_00000000.art",
		},
		"disk over xrootd": {
			basename: "dts.mu2e.CeEndpoint.MDC2020r.001202_00000000.art",
			location: LocationDisk,
			protocol: ProtocolXroot,
			expected: "root://fndcadoor.fnal.gov:1094/pnfs/fnal.gov/usr/mu2e/persistent/datasets/phy-sim/dts/mu2e/CeEndpoint/MDC2020r/art/b4/93/dts.mu2e.CeEndpoint.MDC2020r.001202_00000000.art",
		},
		"user ntuple on scratch": {
			basename: "nts.brownd.Study.v1.001202_00000003.root",
			location: LocationScratch,
			protocol: ProtocolFile,
			expected: "/pnfs/mu2e/scratch/datasets/usr-nts/nts/brownd/Study/v1/root/a1/cd/nts.brownd.Study.v1.001202_00000003.root",
		},
		"other extension": {
			basename: "cnf.mu2e.Ce.v0.0.fcl",
			location: LocationDisk,
			protocol: ProtocolFile,
			expected: "/pnfs/mu2e/persistent/datasets/phy-etc/cnf/mu2e/Ce/v0/fcl/7a/f0/cnf.mu2e.Ce.v0.0.fcl",
		},
		"explicit directory": {
			basename: "dts.mu2e.CeEndpoint.MDC2020r.001202_00000000.art",
			location: Location("dir:/data/mu2e"),
			protocol: ProtocolFile,
			expected: "/data/mu2e/dts.mu2e.CeEndpoint.MDC2020r.001202_00000000.art",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := s.Path(tc.basename, tc.location, tc.protocol)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestStager_CustomRoots(t *testing.T) {
	s := NewStager(map[Location]string{LocationDisk: "/pnfs/other/disk"}, "root://door.example:1094/")
	p, err := s.Path("cnf.mu2e.Ce.v0.0.fcl", LocationDisk, ProtocolXroot)
	require.NoError(t, err)
	assert.Equal(t, "root://door.example:1094/other/disk/phy-etc/cnf/mu2e/Ce/v0/fcl/7a/f0/cnf.mu2e.Ce.v0.0.fcl", p)

	p, err = s.Path("cnf.mu2e.Ce.v0.0.fcl", LocationTape, ProtocolFile)
	require.NoError(t, err)
	assert.Equal(t, "/pnfs/mu2e/tape/phy-etc/cnf/mu2e/Ce/v0/fcl/7a/f0/cnf.mu2e.Ce.v0.0.fcl", p)
}

func TestStager_Errors(t *testing.T) {
	s := NewStager(nil, "")

	_, err := s.Path("f1.art", LocationDisk, ProtocolFile)
	var malformed *jobdeferrors.ErrMalformedFilename
	assert.True(t, errors.As(err, &malformed), "expected ErrMalformedFilename but got %v", err)

	var invalid *jobdeferrors.ErrInvalidArgument
	_, err = s.Path("cnf.mu2e.Ce.v0.0.fcl", Location("dir:/data"), ProtocolXroot)
	assert.True(t, errors.As(err, &invalid), "expected ErrInvalidArgument but got %v", err)

	_, err = s.Path("cnf.mu2e.Ce.v0.0.fcl", Location("nfs"), ProtocolFile)
	assert.True(t, errors.As(err, &invalid), "expected ErrInvalidArgument but got %v", err)

	_, err = s.Path("cnf.mu2e.Ce.v0.0.fcl", LocationDisk, Protocol("https"))
	assert.True(t, errors.As(err, &invalid), "expected ErrInvalidArgument but got %v", err)
}
