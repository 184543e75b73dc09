package factory

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/seabattle-go/internal/dependencies/mocks"
	"github.com/mcoot/seabattle-go/internal/services/directory"
	"github.com/mcoot/seabattle-go/internal/storage/memory"
	"github.com/mcoot/seabattle-go/internal/testutil"
	"github.com/mcoot/seabattle-go/internal/ws"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockIDs    *mocks.MockIDGenerator
}

// NewTestApp creates an App over in-memory storage with mocked dependencies
// and the cheapest bcrypt cost
func NewTestApp() *TestApp {
	clk := mocks.NewMockClock(testutil.FixedTime)
	rnd := mocks.NewMockRandom()
	ids := mocks.NewMockIDGenerator()

	app := newWithDependencies(
		memory.New(),
		clk,
		rnd,
		ids,
		directory.Config{BcryptCost: bcrypt.MinCost},
		ws.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  clk,
		MockRandom: rnd,
		MockIDs:    ids,
	}
}
