package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/space"
)

// File keeps one compressed file per space in a directory.
type File struct {
	dir string
}

// NewFile uses dir, or the system temp directory when dir is empty.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (c *File) path(key string) string {
	return filepath.Join(c.dir, "wordle-space."+key+".json.zst")
}

func (c *File) Get(ctx context.Context, key string) (space.Space, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Put writes through a temp file and renames it into place so concurrent
// readers never see a partial file.
func (c *File) Put(ctx context.Context, key string, s space.Space) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, "wordle-space-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		return err
	}
	log.Debug().Str("file", c.path(key)).Int("bytes", len(data)).Msg("space cached")
	return nil
}

func (c *File) Close() error { return nil }
