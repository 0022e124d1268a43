// internal/advisor/tracker.go
//
// Guidance for games played on several boards at once.
// Responsibilities:
//   - Keep one engine per open board.
//   - Rank every allowed word by its combined value over the open boards.
//   - Follow the feedback of each turn and retire solved boards.
//
// Notes:
//   - Instance i of a turn belongs to open board i.
//   - Tracker satisfies game.Guide, so it can sit behind a human player.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/engine"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/guess"
	"github.com/robalobadob/wordle-solver/internal/rank"
)

// DefaultCutoff is how many guesses each tip lists.
const DefaultCutoff = 10

// Tip is one named ranking of combined guesses.
type Tip struct {
	Name    string         `json:"name"`
	Guesses []*guess.Multi `json:"-"`
}

// Tracker follows N boards that share a dictionary.
type Tracker struct {
	mu        sync.Mutex
	boards    []*engine.Engine
	skipFirst bool
	guided    bool
}

// NewTracker starts n boards from the same engine state. With skipFirst the
// first Guide call prints nothing.
func NewTracker(e *engine.Engine, n int, skipFirst bool) (*Tracker, error) {
	if n <= 0 {
		return nil, fmt.Errorf("boards must be positive, got %d", n)
	}
	boards := make([]*engine.Engine, n)
	for i := range boards {
		boards[i] = e
	}
	return &Tracker{boards: boards, skipFirst: skipFirst}, nil
}

// Boards returns how many boards are still open.
func (t *Tracker) Boards() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.boards)
}

// Advise ranks every allowed word across the open boards under each tip and
// keeps the cutoff best.
func (t *Tracker) Advise(ctx context.Context, cutoff int) ([]Tip, error) {
	t.mu.Lock()
	boards := append([]*engine.Engine(nil), t.boards...)
	t.mu.Unlock()
	if len(boards) == 0 {
		return nil, errors.New("no open boards")
	}
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}

	perBoard := make([][]*guess.Guess, len(boards))
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range boards {
		i, b := i, b
		g.Go(func() error {
			words := b.Allowed()
			gs := make([]*guess.Guess, 0, len(words))
			for _, w := range words {
				if err := ctx.Err(); err != nil {
					return err
				}
				grouping, err := b.Grouping(w)
				if err != nil {
					return err
				}
				gu, err := guess.New(w, grouping)
				if err != nil {
					return fmt.Errorf("board %d: %w", i, err)
				}
				gs = append(gs, gu)
			}
			perBoard[i] = gs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	multis, err := guess.Combine(perBoard...)
	if err != nil {
		return nil, err
	}
	tips := rank.Tips()
	out := make([]Tip, 0, len(tips))
	for _, tip := range tips {
		out = append(out, Tip{Name: tip.Name, Guesses: rank.Smallest(multis, cutoff, tip.Sorter)})
	}
	log.Debug().Int("boards", len(boards)).Int("guesses", len(multis)).Msg("multi-board advice compiled")
	return out, nil
}

// Commit prunes open board i with instances[i] and closes boards left with
// no candidates. On error no board changes.
func (t *Tracker) Commit(instances ...feedback.Instance) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(instances) != len(t.boards) {
		return fmt.Errorf("got %d feedback instances for %d open boards", len(instances), len(t.boards))
	}
	next := make([]*engine.Engine, 0, len(t.boards))
	for i, b := range t.boards {
		pruned, err := b.Pruned(instances[i])
		if err != nil {
			return fmt.Errorf("board %d: %w", i, err)
		}
		if len(pruned.Answers()) > 0 {
			next = append(next, pruned)
		}
	}
	log.Debug().Int("before", len(t.boards)).Int("after", len(next)).Msg("boards pruned")
	t.boards = next
	return nil
}

// Guide prints the tips at the default cutoff.
func (t *Tracker) Guide(ctx context.Context, w io.Writer) error {
	t.mu.Lock()
	skip := t.skipFirst && !t.guided
	t.guided = true
	t.mu.Unlock()
	if skip {
		return nil
	}

	tips, err := t.Advise(ctx, DefaultCutoff)
	if err != nil {
		return err
	}
	for _, tip := range tips {
		fmt.Fprintf(w, "\n%d %s ...\n", len(tip.Guesses), tip.Name)
		for _, g := range tip.Guesses {
			fmt.Fprintln(w, g)
		}
	}
	return nil
}
