package primitives

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const (
	// IdentifierBytes is the number of random bytes behind a RandomIdentifier.
	IdentifierBytes = 48

	// MaxRange is the widest range RandomBoundedInt supports: the domain of one byte.
	MaxRange = 256
)

// Generator draws all randomness used by the primitives from a single reader.
// A Generator is safe for concurrent use if its reader is.
type Generator struct {
	rand io.Reader
}

var defaultGenerator = &Generator{rand: rand.Reader}

// New creates a generator reading from r. A nil reader means crypto/rand.Reader.
func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Default returns the generator backed by crypto/rand.Reader.
func Default() *Generator {
	return defaultGenerator
}

// Reader returns the underlying random source.
func (g *Generator) Reader() io.Reader {
	return g.rand
}

// RandomBytes returns n fresh random bytes.
func (g *Generator) RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// RandomIdentifier returns IdentifierBytes random bytes rendered as lowercase hex.
// Collisions are only improbable, never ruled out.
func (g *Generator) RandomIdentifier() (string, error) {
	b, err := g.RandomBytes(IdentifierBytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandomBoundedInt returns an integer uniformly distributed over [0, n).
//
// Samples are single random bytes. Any sample at or above the largest
// multiple of n that fits in a byte is discarded and redrawn, so the
// result carries no modulo bias.
func (g *Generator) RandomBoundedInt(n int) (int, error) {
	if n > MaxRange {
		return 0, fmt.Errorf("%w: %d > %d", ErrRangeTooLarge, n, MaxRange)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrRangeNotPositive, n)
	}

	q := MaxRange / n
	max := q * n

	var sample [1]byte
	for {
		if _, err := io.ReadFull(g.rand, sample[:]); err != nil {
			return 0, fmt.Errorf("failed to sample random byte: %w", err)
		}
		if int(sample[0]) < max {
			return int(sample[0]) % n, nil
		}
	}
}

// RandomIdentifier calls Default().RandomIdentifier.
func RandomIdentifier() (string, error) {
	return defaultGenerator.RandomIdentifier()
}

// RandomBoundedInt calls Default().RandomBoundedInt.
func RandomBoundedInt(n int) (int, error) {
	return defaultGenerator.RandomBoundedInt(n)
}
