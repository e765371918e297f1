package jobdef

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/common/slices"
)

// Sample draws count files from candidates without replacement. The draws depend only on index and
// candidates, so the same job always mixes in the same files. A count of zero selects every candidate in
// the order given.
//
// Each draw hashes the decimal index followed by every file still in the pool, in pool order, and picks
// the file at the first 32 bits of the SHA-256 digest (big-endian) modulo the pool size. Because the pool
// shrinks after every draw, later draws depend on earlier ones.
//
// The 32-bit truncation biases the choice for very large pools. It is kept because widening it would
// change the files chosen by every existing job set.
func Sample(index int, count int, candidates []string) ([]string, error) {
	if count < 0 || count > len(candidates) {
		return nil, errors.WithStack(&jobdeferrors.ErrInvalidRequest{Requested: count, Available: len(candidates)})
	}
	if count == 0 {
		return slices.Clone(candidates), nil
	}

	h := sha256.New()
	prefix := strconv.Itoa(index)
	remaining := slices.Clone(candidates)
	rv := make([]string, 0, count)
	for i := 0; i < count; i++ {
		pick := draw(h, prefix, remaining)
		rv = append(rv, remaining[pick])
		remaining = slices.RemoveAt(remaining, pick)
	}
	return rv, nil
}

func draw(h hash.Hash, prefix string, pool []string) int {
	h.Reset()
	_, _ = io.WriteString(h, prefix)
	for _, f := range pool {
		_, _ = io.WriteString(h, f)
	}
	sum := h.Sum(nil)
	return int(binary.BigEndian.Uint32(sum[:4]) % uint32(len(pool)))
}
