package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/space"
)

func sample(t *testing.T) (string, space.Space) {
	t.Helper()
	allowed := []string{"crane", "slate", "shine", "zzzzz"}
	candidates := []string{"crane", "crate", "slate", "shine"}
	s, err := space.Compute(context.Background(), allowed, candidates, space.Options{})
	require.NoError(t, err)
	return space.Key(allowed, candidates), s
}

func backends(t *testing.T) map[string]Cache {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(filepath.Join(dir, "spaces.db"))
	require.NoError(t, err)
	bg, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	fc, err := NewFile(filepath.Join(dir, "files"))
	require.NoError(t, err)

	out := map[string]Cache{
		"memory": NewMemory(),
		"sqlite": sq,
		"badger": bg,
		"file":   fc,
	}
	t.Cleanup(func() {
		for _, c := range out {
			_ = c.Close()
		}
	})
	return out
}

func TestBackendsRoundTrip(t *testing.T) {
	ctx := context.Background()
	key, s := sample(t)
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.Get(ctx, key)
			assert.ErrorIs(t, err, ErrMiss)

			require.NoError(t, c.Put(ctx, key, s))
			got, err := c.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, s, got)

			// overwrite is allowed
			require.NoError(t, c.Put(ctx, key, s))
			_, err = c.Get(ctx, "other")
			assert.ErrorIs(t, err, ErrMiss)
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	_, s := sample(t)
	data, err := Encode(s)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = Decode([]byte("not zstd"))
	assert.Error(t, err)
}

func TestCodecEmptyGrouping(t *testing.T) {
	s := space.Space{"crane": space.Grouping{}}
	data, err := Encode(s)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	key, s := sample(t)
	dsn := filepath.Join(t.TempDir(), "spaces.db")

	c, err := OpenSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, key, s))
	require.NoError(t, c.Close())

	c, err = OpenSQLite(dsn)
	require.NoError(t, err)
	defer c.Close()
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestBadgerPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	key, s := sample(t)
	cfg := BadgerConfig{Path: filepath.Join(t.TempDir(), "badger")}

	c, err := OpenBadger(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, key, s))
	require.NoError(t, c.Close())

	c, err = OpenBadger(cfg)
	require.NoError(t, err)
	defer c.Close()
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestFileCorruptEntryIsError(t *testing.T) {
	ctx := context.Background()
	c, err := NewFile(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(c.path("bad"), []byte("garbage"), 0o644))

	_, err = c.Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, name := range Backends() {
		c, err := Open(name, filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.NoError(t, c.Close(), name)
	}
	_, err := Open("redis", "")
	assert.Error(t, err)
}

func TestNopAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	key, s := sample(t)
	require.NoError(t, Nop{}.Put(ctx, key, s))
	_, err := Nop{}.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestBadgerRequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}
