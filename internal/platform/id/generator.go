package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque IDs for rows exposed through the API:
// games, scoresheet events, penalty tracking entries.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator issues 128-bit hex IDs. Scoresheet events keep their
// ID across edits, so uniqueness matters more than readability here.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
