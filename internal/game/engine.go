// internal/game/engine.go
//
// Session loop shared by automated solves and interactive play.
// Responsibilities:
//   - Alternate Player.Provide and Evaluator.Evaluate for up to 5 + boards turns.
//   - Hand every instance of a turn to the player at once.
//   - Track solved boards; stop when all are solved or the player gives up.
//
// Notes:
//   - Output goes to the writer passed in; logging only records the outcome.
//   - The Game record is returned even when the loop stops on an error.
package game

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// extraTurns is added to the board count to get the turn limit.
const extraTurns = 5

// Play runs one session over boards simultaneous secrets.
func Play(ctx context.Context, p Player, e Evaluator, boards int, out io.Writer) (*Game, error) {
	if boards <= 0 {
		return nil, fmt.Errorf("boards must be positive, got %d", boards)
	}
	g := &Game{
		ID:       uuid.NewString(),
		Boards:   boards,
		MaxTurns: extraTurns + boards,
		Guesses:  []string{},
		Solved:   []string{},
	}
	start := time.Now()
	defer func() {
		g.Elapsed = time.Since(start)
	}()

	remaining := boards
	for turn := 1; turn <= g.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		guess, err := p.Provide(ctx)
		if err != nil {
			return g, fmt.Errorf("turn %d: %w", turn, err)
		}
		if guess == GiveUp {
			g.GaveUp = true
			break
		}
		fmt.Fprintf(out, " > %s\n", guess)
		g.Guesses = append(g.Guesses, guess)

		instances, err := e.Evaluate(guess)
		if err != nil {
			return g, fmt.Errorf("turn %d: evaluate %q: %w", turn, guess, err)
		}
		for _, in := range instances {
			fmt.Fprintln(out, "", in)
		}
		if err := p.Accept(instances...); err != nil {
			return g, fmt.Errorf("turn %d: accept %q: %w", turn, guess, err)
		}

		// one board closes per solved instance, even when several boards
		// share the guessed secret
		for _, in := range instances {
			if !in.Feedback.Solved() {
				continue
			}
			remaining--
			g.Solved = append(g.Solved, guess)
			suffix := ""
			if remaining > 0 {
				suffix = fmt.Sprintf(" %d remaining", remaining)
			}
			fmt.Fprintf(out, "Solved %s in %d tries%s\n", strings.ToUpper(guess), turn, suffix)
			e.AnswerFound(guess)
		}
		if remaining == 0 {
			g.Won = true
			break
		}
	}
	g.Finished = true

	if !g.Won {
		if k, ok := e.(interface{ Remaining() []string }); ok {
			for _, s := range k.Remaining() {
				fmt.Fprintf(out, "Answer was %s\n", strings.ToUpper(s))
			}
		}
	}
	log.Info().
		Str("game", g.ID).
		Str("state", g.State()).
		Int("turns", g.Turns()).
		Int("boards", boards).
		Msg("game finished")
	return g, nil
}
