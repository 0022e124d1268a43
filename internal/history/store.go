// internal/history/store.go
//
// Persistent record of automated solve runs.
// Responsibilities:
//   - Insert one row per finished game (uuid, strategy, secrets, turns, outcome).
//   - Look runs up by id or recency.
//   - Rank strategies by average turns (the leaderboard).
//
// Notes:
//   - Backed by SQLite through internal/sqlitedb; migrations are embedded.
//   - Inserting an id twice is ignored, not an error.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/sqlitedb"
)

//go:embed sql/*.sql
var migrations embed.FS

var ErrNotFound = errors.New("run not found")

// Run is one finished game.
type Run struct {
	ID        string    `json:"id"`
	Strategy  string    `json:"strategy"`
	Secrets   []string  `json:"secrets"`
	Boards    int       `json:"boards"`
	Turns     int       `json:"turns"`
	Solved    int       `json:"solved"`
	Won       bool      `json:"won"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromGame builds the row for a finished game.
func FromGame(g *game.Game, strategy string, secrets []string) Run {
	return Run{
		ID:        g.ID,
		Strategy:  strategy,
		Secrets:   append([]string(nil), secrets...),
		Boards:    g.Boards,
		Turns:     g.Turns(),
		Solved:    len(g.Solved),
		Won:       g.Won,
		ElapsedMs: g.Elapsed.Milliseconds(),
	}
}

// LBRow is one strategy's aggregate.
type LBRow struct {
	Strategy     string  `json:"strategy"`
	Runs         int     `json:"runs"`
	AvgTurns     float64 `json:"avgTurns"`
	WinRate      float64 `json:"winRate"`
	AvgElapsedMs float64 `json:"avgElapsedMs"`
}

type Store struct {
	db   *sql.DB
	owns bool
}

// Open opens (or creates) the database at dsn and migrates it.
func Open(dsn string) (*Store, error) {
	db, err := sqlitedb.Open(dsn)
	if err != nil {
		return nil, err
	}
	s, err := NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owns = true
	return s, nil
}

// NewStore uses an already open database. Close leaves db open.
func NewStore(db *sql.DB) (*Store, error) {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		return nil, err
	}
	if err := sqlitedb.Migrate(db, "history", sub); err != nil {
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.owns {
		return s.db.Close()
	}
	return nil
}

// Insert stores r, assigning an id if it has none, and returns the id.
func (s *Store) Insert(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO runs(id, strategy, secrets, boards, turns, solved, won, elapsed_ms)
		VALUES(?,?,?,?,?,?,?,?)`,
		r.ID, r.Strategy, strings.Join(r.Secrets, ","), r.Boards, r.Turns, r.Solved, r.Won, r.ElapsedMs,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, strategy, secrets, boards, turns, solved, won, elapsed_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var secrets string
	if err := sc.Scan(&r.ID, &r.Strategy, &secrets, &r.Boards, &r.Turns, &r.Solved, &r.Won, &r.ElapsedMs, &r.CreatedAt); err != nil {
		return Run{}, err
	}
	if secrets != "" {
		r.Secrets = strings.Split(secrets, ",")
	}
	return r, nil
}

// Get returns the run with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return r, err
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

/**
 * Leaderboard ranks strategies.
 *
 * - Ordered by average turns ASC, then win rate DESC, then strategy name.
 * - Default limit is 20 if not specified.
 */
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT strategy, COUNT(1), AVG(turns), AVG(won), AVG(elapsed_ms)
        FROM runs
        GROUP BY strategy
        ORDER BY AVG(turns) ASC, AVG(won) DESC, strategy ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Strategy, &r.Runs, &r.AvgTurns, &r.WinRate, &r.AvgElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
