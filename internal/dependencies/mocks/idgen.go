package mocks

import (
	"fmt"

	"github.com/mcoot/seabattle-go/internal/dependencies/idgen"
)

// MockIDGenerator returns queued IDs, then falls back to "<prefix>-<n>"
type MockIDGenerator struct {
	Prefix string
	queued []string
	count  int
}

var _ idgen.Generator = (*MockIDGenerator)(nil)

// NewMockIDGenerator creates a generator producing "id-1", "id-2", ...
func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{Prefix: "id"}
}

// NewID returns the next queued ID or a sequential one
func (g *MockIDGenerator) NewID() string {
	if len(g.queued) > 0 {
		id := g.queued[0]
		g.queued = g.queued[1:]
		return id
	}
	g.count++
	return fmt.Sprintf("%s-%d", g.Prefix, g.count)
}

// Queue adds specific IDs to be returned before sequential ones
func (g *MockIDGenerator) Queue(ids ...string) {
	g.queued = append(g.queued, ids...)
}
