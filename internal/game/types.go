// internal/game/types.go
//
// Core type definitions for a solver session.
// Defines:
//   - Player: something that proposes guesses and learns from feedback.
//   - Evaluator: something that scores guesses against the hidden secrets.
//   - Guide: optional commentary shown to a human before each guess.
//   - Game: record of a single finished or abandoned session.

package game

import (
	"context"
	"io"
	"time"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// GiveUp is the guess that ends a session early.
const GiveUp = "giveup"

// Player proposes the next guess and accepts the feedback of the last one.
// Accept receives one instance per open board, all caused by the same guess.
type Player interface {
	Provide(ctx context.Context) (string, error)
	Accept(instances ...feedback.Instance) error
}

// Evaluator produces one feedback instance per open board. AnswerFound tells
// it that the board whose secret is guess has been solved.
type Evaluator interface {
	Evaluate(guess string) ([]feedback.Instance, error)
	AnswerFound(guess string)
}

// Guide prints hints before a human guess and follows the feedback.
type Guide interface {
	Guide(ctx context.Context, w io.Writer) error
	Commit(instances ...feedback.Instance) error
}

// Game holds the state of a single session.
type Game struct {
	ID       string        `json:"id"`       // uuid
	Boards   int           `json:"boards"`   // simultaneous secrets
	MaxTurns int           `json:"maxTurns"` // 5 + boards
	Guesses  []string      `json:"guesses"`  // every guess played, in order
	Solved   []string      `json:"solved"`   // secrets found, in order
	Finished bool          `json:"finished"` // no more turns will be played
	Won      bool          `json:"won"`      // every board solved
	GaveUp   bool          `json:"gaveUp"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Turns is the number of guesses played.
func (g *Game) Turns() int { return len(g.Guesses) }

// State reports a coarse string representation of the session.
func (g *Game) State() string {
	switch {
	case !g.Finished:
		return "playing"
	case g.Won:
		return "won"
	case g.GaveUp:
		return "abandoned"
	}
	return "lost"
}
