// Package roomcode generates the short, human-typable codes that identify
// rooms. Codes use a reduced Crockford-style base32 alphabet with the
// easily-confused letters removed so they survive being read out loud.
package roomcode

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	alphabet = "23456789ABCDEFGHJKMNPQRSTVWXYZ"

	// Length is the number of characters in a room code.
	Length = 5
)

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator produces room codes with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator with an optional RandSource.
// A nil source means crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new room code using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new room code using the generator's RandSource.
func (g *Generator) Generate() string {
	buf := make([]byte, Length)
	if g.randSource != nil {
		for i := range buf {
			buf[i] = alphabet[g.randSource.IntN(len(alphabet))]
		}
		return string(buf)
	}

	raw := make([]byte, Length)
	if _, err := rand.Read(raw); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	for i, b := range raw {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}

// Normalize upper-cases a code and strips surrounding whitespace so codes
// survive being typed from a phone keyboard.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks that a code has the right length and alphabet.
func Validate(code string) error {
	if len(code) != Length {
		return fmt.Errorf("room code must be exactly %d characters, got %d", Length, len(code))
	}
	for i, char := range code {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
