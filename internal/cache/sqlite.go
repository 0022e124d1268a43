package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/robalobadob/wordle-solver/internal/space"
	"github.com/robalobadob/wordle-solver/internal/sqlitedb"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite stores encoded spaces in a single table.
type SQLite struct {
	db   *sql.DB
	owns bool
}

// OpenSQLite opens (or creates) the database file at dsn and migrates it.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sqlitedb.Open(dsn)
	if err != nil {
		return nil, err
	}
	c, err := NewSQLite(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.owns = true
	return c, nil
}

// NewSQLite uses an already open database. Close leaves db open.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		return nil, err
	}
	if err := sqlitedb.Migrate(db, "cache", sub); err != nil {
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (c *SQLite) Get(ctx context.Context, key string) (space.Space, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM spaces WHERE key=?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("query space %s: %w", key, err)
	}
	return Decode(payload)
}

func (c *SQLite) Put(ctx context.Context, key string, s space.Space) error {
	payload, err := Encode(s)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO spaces(key, payload) VALUES(?, ?)`, key, payload,
	)
	if err != nil {
		return fmt.Errorf("store space %s: %w", key, err)
	}
	return nil
}

func (c *SQLite) Close() error {
	if c.owns {
		return c.db.Close()
	}
	return nil
}
