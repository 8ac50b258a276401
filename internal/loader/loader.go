// Package loader runs the parallel reads a console screen needs as one
// logical unit: every fetch settles before Wait returns, and failures
// collapse into a single classified outcome (session expiry wins, then
// the no-team state, then the first ordinary error).
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/workspace-africa/teamctl/internal/api"
	"github.com/workspace-africa/teamctl/internal/session"
)

// Group collects named concurrent fetches behind a join barrier
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []namedError
}

type namedError struct {
	name string
	err  error
}

// New creates a fetch group. Cancelling ctx cancels every fetch.
func New(ctx context.Context) *Group {
	ctx, cancel := context.WithCancel(ctx)
	return &Group{ctx: ctx, cancel: cancel}
}

// Go starts a named fetch. The name labels the error when only this
// fetch fails.
func (g *Group) Go(name string, fn func(ctx context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := fn(g.ctx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, namedError{name: name, err: err})
			g.mu.Unlock()
		}
	}()
}

// Wait blocks until every fetch has settled, then reports the group
// outcome. Results written by successful fetches are safe to read after
// Wait returns, whatever the outcome: a screen may still render what
// loaded alongside the error.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.errs) == 0 {
		return nil
	}

	// A 401 anywhere invalidates the whole screen, and the session store
	// has already been torn down (exactly once) by the client.
	for _, ne := range g.errs {
		if errors.Is(ne.err, session.ErrExpired) {
			return session.ErrExpired
		}
	}
	for _, ne := range g.errs {
		if errors.Is(ne.err, api.ErrTeamSetupRequired) {
			return api.ErrTeamSetupRequired
		}
	}

	first := g.errs[0]
	return fmt.Errorf("failed to load %s: %w", first.name, first.err)
}
