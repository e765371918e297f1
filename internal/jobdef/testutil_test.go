package jobdef

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mu2e/jobdef/internal/filename"
)

func mustDescriptor(t *testing.T, raw *RawDescriptor) *Descriptor {
	t.Helper()
	d, err := NewDescriptor(raw)
	require.NoError(t, err)
	return d
}

func stringPtr(s string) *string {
	return &s
}

func datasetFiles(dataset string, run int, n int) []string {
	parts := strings.SplitN(dataset, ".", 5)
	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("%s.%s.%s.%s.%06d_%08d.%s", parts[0], parts[1], parts[2], parts[3], run, i, parts[4])
	}
	return files
}

// stemCodec treats everything before the last dot as the sequencer, so that short names such as "f1.art"
// can be used where the dataset naming convention does not matter.
type stemCodec struct{}

func (stemCodec) Sequencer(basename string) (string, error) {
	return strings.TrimSuffix(basename, ".art"), nil
}

func (stemCodec) DatasetName(basename string) (string, error) {
	return "stem", nil
}

func (stemCodec) WithSequencer(basename string, sequencer string) (string, error) {
	return sequencer + "." + basename, nil
}

var names = filename.Codec{}
