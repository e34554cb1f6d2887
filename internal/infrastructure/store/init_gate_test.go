package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGate_RunsOnceUnderConcurrency(t *testing.T) {
	var gate initGate
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- gate.Do(context.Background(), fn)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, gate.Done())

	require.NoError(t, gate.Do(context.Background(), fn))
	assert.Equal(t, int32(1), calls.Load())
}

func TestInitGate_RetriesAfterFailure(t *testing.T) {
	var gate initGate
	boom := errors.New("boom")
	attempts := 0
	fn := func(context.Context) error {
		attempts++
		if attempts == 1 {
			return boom
		}
		return nil
	}

	assert.ErrorIs(t, gate.Do(context.Background(), fn), boom)
	assert.False(t, gate.Done())

	assert.NoError(t, gate.Do(context.Background(), fn))
	assert.True(t, gate.Done())
	assert.Equal(t, 2, attempts)
}

func TestInitGate_IgnoresCallerCancellation(t *testing.T) {
	var gate initGate
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gate.Do(ctx, func(runCtx context.Context) error {
		return runCtx.Err()
	})
	assert.NoError(t, err)
	assert.True(t, gate.Done())
}
