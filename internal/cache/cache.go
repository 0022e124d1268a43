// internal/cache/cache.go
//
// Persistent cache for solution spaces.
// Responsibilities:
//   - Cache: Get/Put a space.Space by its content key (space.Key).
//   - Open: pick a backend by name (none, memory, sqlite, badger, file).
//   - Codec shared by the byte-oriented backends (see codec.go).
//
// Notes:
//   - Every backend returns ErrMiss for absent keys; any other error is a
//     backend failure that callers treat as a miss.
//   - Keys are content addresses, so entries never go stale; there is no TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/space"
)

var ErrMiss = errors.New("cache miss")

// Cache stores solution spaces keyed by space.Key.
type Cache interface {
	Get(ctx context.Context, key string) (space.Space, error)
	Put(ctx context.Context, key string, s space.Space) error
	Close() error
}

// Backends lists the names Open accepts.
func Backends() []string { return []string{"none", "memory", "sqlite", "badger", "file"} }

// Open returns the named backend. path is the sqlite file, badger directory
// or cache directory; it is ignored by none and memory.
func Open(backend, path string) (Cache, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "none":
		return Nop{}, nil
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		if path == "" {
			path = "./data/spaces.db"
		}
		return OpenSQLite(path)
	case "badger":
		if path == "" {
			path = "./data/spaces.badger"
		}
		return OpenBadger(BadgerConfig{Path: path, SyncWrites: true})
	case "file":
		return NewFile(path)
	}
	return nil, fmt.Errorf("unknown cache backend %q (want one of %s)", backend, strings.Join(Backends(), ", "))
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (space.Space, error) { return nil, ErrMiss }
func (Nop) Put(context.Context, string, space.Space) error   { return nil }
func (Nop) Close() error                                     { return nil }
