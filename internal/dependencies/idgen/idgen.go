package idgen

import "github.com/google/uuid"

// Generator produces unique identifiers for players, rooms, games and session players
type Generator interface {
	NewID() string
}

// UUIDGenerator issues random (v4) UUIDs
type UUIDGenerator struct{}

// New creates a UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh UUID string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
