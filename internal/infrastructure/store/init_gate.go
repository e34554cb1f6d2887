package store

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// initGate runs a lazy initialization exactly once. Callers arriving while it
// is in flight wait for and share its result. A failed run is not recorded, so
// the next caller retries it.
type initGate struct {
	done  atomic.Bool
	group singleflight.Group
}

func (g *initGate) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g.done.Load() {
		return nil
	}
	// The shared run must not be cut short by the first caller's request ending.
	runCtx := context.WithoutCancel(ctx)
	_, err, _ := g.group.Do("init", func() (interface{}, error) {
		if g.done.Load() {
			return nil, nil
		}
		if err := fn(runCtx); err != nil {
			return nil, err
		}
		g.done.Store(true)
		return nil, nil
	})
	return err
}

// Done reports whether initialization has completed.
func (g *initGate) Done() bool {
	return g.done.Load()
}
