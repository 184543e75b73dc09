package mocks

import (
	"github.com/mcoot/seabattle-go/internal/dependencies/random"
)

// MockRandom returns queued results from Intn
type MockRandom struct {
	IntnResults []int
	intnIndex   int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result modulo n, or 0 if none remain
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) || n <= 0 {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result % n
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}
