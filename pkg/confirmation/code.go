// Package confirmation generates the codes handed to applicants as proof of submission.
package confirmation

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// codeBytes is the amount of entropy per code.
const codeBytes = 8

// Generator produces confirmation codes. Codes are not guaranteed unique;
// the store's unique index is the arbiter.
type Generator interface {
	Generate() (string, error)
}

// RandomGenerator reads from a cryptographically secure source.
type RandomGenerator struct {
	source io.Reader
}

// NewGenerator returns a generator backed by crypto/rand.
func NewGenerator() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

// NewGeneratorFromReader returns a generator reading entropy from r.
func NewGeneratorFromReader(r io.Reader) *RandomGenerator {
	return &RandomGenerator{source: r}
}

// Generate returns 8 random bytes rendered in the URL-safe base64 alphabet
// without padding and upper-cased.
func (g *RandomGenerator) Generate() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return strings.ToUpper(base64.RawURLEncoding.EncodeToString(buf)), nil
}
