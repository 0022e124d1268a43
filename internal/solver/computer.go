// internal/solver/computer.go
//
// Owner of the solution space for one evolving game.
// Responsibilities:
//   - Compute the space lazily for the current engine state.
//   - Consult and fill the cache (keyed by the engine's content key).
//   - Narrow the engine on feedback and drop the stale space.
//
// Notes:
//   - Cache failures are logged and treated as a miss; they never fail a solve.
//   - A Computer is safe for concurrent use; computation happens under its lock.
package solver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/cache"
	"github.com/robalobadob/wordle-solver/internal/engine"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/space"
)

// Computer pairs an engine with its (cached) solution space.
type Computer struct {
	mu    sync.Mutex
	model engine.Model
	cache cache.Cache
	opts  space.Options
	mem   space.Space
}

// New returns a Computer over m. A nil cache means no persistence.
func New(m engine.Model, c cache.Cache, opts space.Options) *Computer {
	if c == nil {
		c = cache.Nop{}
	}
	return &Computer{model: m, cache: c, opts: opts}
}

// Model returns the current engine state.
func (c *Computer) Model() engine.Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// IsAnswer reports whether word is still a candidate secret.
func (c *Computer) IsAnswer(word string) bool {
	return c.Model().IsAnswer(word)
}

// SolutionSpace returns the space for the current state, computing it on
// first use.
func (c *Computer) SolutionSpace(ctx context.Context) (space.Space, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mem != nil {
		return c.mem, nil
	}

	key := c.model.Key()
	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		cacheHits.Inc()
		log.Debug().Str("key", key).Msg("solution space loaded from cache")
		c.mem = cached
		return cached, nil
	case errors.Is(err, cache.ErrMiss):
		cacheMisses.Inc()
	default:
		cacheErrors.Inc()
		log.Warn().Err(err).Str("key", key).Msg("cache read failed; recomputing")
	}

	start := time.Now()
	computed, err := space.Compute(ctx, c.model.Allowed(), c.model.Answers(), c.opts)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("allowed", len(c.model.Allowed())).
		Int("candidates", len(c.model.Answers())).
		Dur("elapsed", time.Since(start)).
		Msg("solution space computed")

	if err := c.cache.Put(ctx, key, computed); err != nil {
		cacheErrors.Inc()
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	c.mem = computed
	return computed, nil
}

// Update narrows the engine with one turn's feedback and busts the space.
// On error the state is unchanged.
func (c *Computer) Update(instances ...feedback.Instance) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.model.Advance(instances...)
	if err != nil {
		return err
	}
	c.model = next
	c.mem = nil
	return nil
}

// Bust drops the in-memory space; the next SolutionSpace reloads it.
func (c *Computer) Bust() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem = nil
}
