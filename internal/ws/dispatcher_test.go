package ws

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/seabattle-go/internal/testutil"
)

func startDispatcher(t *testing.T) (*Dispatcher, context.CancelFunc) {
	t.Helper()
	d := NewDispatcher(16, testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)
	t.Cleanup(cancel)
	return d, cancel
}

func TestDispatcherRunsJobsInOrder(t *testing.T) {
	d, _ := startDispatcher(t)

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, d.Submit(func(ctx context.Context) { got = append(got, i) }))
	}

	// Do runs after everything submitted before it
	err := d.Do(context.Background(), func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestDispatcherSerializesConcurrentSubmitters(t *testing.T) {
	d, _ := startDispatcher(t)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Submit(func(ctx context.Context) { counter++ })
			}
		}()
	}
	wg.Wait()

	var final int
	require.NoError(t, d.Do(context.Background(), func(ctx context.Context) error {
		final = counter
		return nil
	}))
	assert.Equal(t, 1000, final)
}

func TestDispatcherDoReturnsError(t *testing.T) {
	d, _ := startDispatcher(t)
	boom := errors.New("boom")

	err := d.Do(context.Background(), func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestDispatcherSurvivesPanics(t *testing.T) {
	d, _ := startDispatcher(t)

	d.Submit(func(ctx context.Context) { panic("bad job") })

	err := d.Do(context.Background(), func(ctx context.Context) error { panic("bad sync job") })
	assert.Error(t, err)

	err = d.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestDispatcherStopped(t *testing.T) {
	d, cancel := startDispatcher(t)
	cancel()

	assert.Eventually(t, func() bool {
		return !d.Submit(func(ctx context.Context) {}) && errors.Is(d.Do(context.Background(), func(ctx context.Context) error { return nil }), ErrDispatcherStopped)
	}, time.Second, 10*time.Millisecond)
}
