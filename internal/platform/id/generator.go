package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for games, teams, players and offenses.
type Generator interface {
	NewID() (string, error)
}

// TimeOrderedGenerator returns UUIDv7 strings, which sort by creation time.
type TimeOrderedGenerator struct{}

func NewTimeOrderedGenerator() *TimeOrderedGenerator {
	return &TimeOrderedGenerator{}
}

func (g *TimeOrderedGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid v7: %w", err)
	}

	return v.String(), nil
}

// Sequence returns ids with a fixed prefix and an increasing counter. Used in tests.
type Sequence struct {
	Prefix string
	next   int
}

func (s *Sequence) NewID() (string, error) {
	s.next++
	return fmt.Sprintf("%s%d", s.Prefix, s.next), nil
}
