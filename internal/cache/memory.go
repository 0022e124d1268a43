// internal/cache/memory.go
//
// In-memory implementation of the Cache interface.
// This is a lightweight layer used by the HTTP server and in tests,
// or when durability is not required.
//
// Characteristics:
//   - Stores space.Space values keyed by space.Key in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Spaces are shared, not copied; callers must not mutate what they Get.

package cache

import (
	"context"
	"sync"

	"github.com/robalobadob/wordle-solver/internal/space"
)

// Memory is a map-based Cache.
type Memory struct {
	mu     sync.RWMutex           // guards spaces map
	spaces map[string]space.Space // keyed by space.Key
}

// NewMemory constructs an empty in-memory Cache.
func NewMemory() *Memory {
	return &Memory{spaces: make(map[string]space.Space)}
}

// Put adds or replaces the space stored under key.
func (m *Memory) Put(ctx context.Context, key string, s space.Space) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spaces[key] = s
	return nil
}

// Get looks up a space by key, returning ErrMiss if absent.
func (m *Memory) Get(ctx context.Context, key string) (space.Space, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.spaces[key]; ok {
		return s, nil
	}
	return nil, ErrMiss
}

// Len reports how many spaces are held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.spaces)
}

func (m *Memory) Close() error { return nil }
