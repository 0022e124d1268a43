package game

import (
	"context"
	"fmt"
	"io"

	"github.com/robalobadob/wordle-solver/internal/engine"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/strategy"
)

// SpaceSearch plays the strategy's choice over the computer's solution
// space, after exhausting its fixed opening words.
type SpaceSearch struct {
	computer *solver.Computer
	strategy strategy.Strategy
	openers  []string
}

func NewSpaceSearch(c *solver.Computer, s strategy.Strategy, openers ...string) *SpaceSearch {
	return &SpaceSearch{computer: c, strategy: s, openers: append([]string(nil), openers...)}
}

func (p *SpaceSearch) Provide(ctx context.Context) (string, error) {
	if len(p.openers) > 0 {
		w := p.openers[0]
		p.openers = p.openers[1:]
		return w, nil
	}
	s, err := p.computer.SolutionSpace(ctx)
	if err != nil {
		return "", err
	}
	return p.strategy.Choose(s)
}

func (p *SpaceSearch) Accept(instances ...feedback.Instance) error {
	return p.computer.Update(instances...)
}

// HumanPlayer reads guesses from a prompt, rejecting words the model does
// not accept.
type HumanPlayer struct {
	prompt *Prompter
	model  engine.Model
	guide  Guide
}

// NewHumanPlayer returns a player backed by p. guide may be nil.
func NewHumanPlayer(p *Prompter, m engine.Model, guide Guide) *HumanPlayer {
	return &HumanPlayer{prompt: p, model: m, guide: guide}
}

func (h *HumanPlayer) Provide(ctx context.Context) (string, error) {
	if h.guide != nil {
		if err := h.guide.Guide(ctx, h.prompt.out); err != nil {
			return "", err
		}
	}
	for {
		guess, err := h.prompt.Ask("Your guess: ")
		if err != nil {
			return "", err
		}
		if guess == GiveUp {
			return guess, nil
		}
		if isAlpha(guess) && h.model.Acceptable(guess) == nil {
			return guess, nil
		}
		h.prompt.Say("Not a valid guess.")
	}
}

func (h *HumanPlayer) Accept(instances ...feedback.Instance) error {
	next, err := h.model.Advance(instances...)
	if err != nil {
		return err
	}
	h.model = next
	if h.guide != nil {
		return h.guide.Commit(instances...)
	}
	return nil
}

// RemainingGuide lists up to five candidates left before each guess.
type RemainingGuide struct {
	model engine.Model
}

func NewRemainingGuide(m engine.Model) *RemainingGuide { return &RemainingGuide{model: m} }

func (r *RemainingGuide) Guide(_ context.Context, w io.Writer) error {
	answers := r.model.Answers()
	sample := answers[:min(5, len(answers))]
	if len(answers) > 5 {
		sample = append(append([]string(nil), sample...), "...")
	}
	_, err := fmt.Fprintf(w, "Remaining answers: %v\n", sample)
	return err
}

func (r *RemainingGuide) Commit(instances ...feedback.Instance) error {
	next, err := r.model.Advance(instances...)
	if err != nil {
		return err
	}
	r.model = next
	return nil
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return s != ""
}
