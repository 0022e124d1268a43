// internal/strategy/strategy.go
//
// Guess selection for the automated player.
// Responsibilities:
//   - Strategy: pick one word out of a solution space.
//   - Ranked: best guess under a rank.Sorter, after coalescing.
//   - MinMax, Greedy, Heuristic: tuple-scored selections kept for comparison runs.
//   - ByName: resolve the STRATEGY config value.
//
// Notes:
//   - Every strategy breaks ties by word so runs are reproducible.
//   - "Answers" are the words still present in some bucket of the space.
package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/engine"
	"github.com/robalobadob/wordle-solver/internal/guess"
	"github.com/robalobadob/wordle-solver/internal/rank"
	"github.com/robalobadob/wordle-solver/internal/space"
)

var (
	// ErrEmptySpace is returned for a space with no words or no candidates
	// left. It matches engine.ErrEmptyCandidateSet under errors.Is.
	ErrEmptySpace      = fmt.Errorf("solution space is empty: %w", engine.ErrEmptyCandidateSet)
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy chooses the next guess from a solution space.
type Strategy interface {
	Name() string
	Choose(s space.Space) (string, error)
}

// Names lists the strategies ByName resolves.
func Names() []string { return []string{"ranked", "minmax", "greedy", "heuristic"} }

// ByName returns the strategy registered under name. The empty name is Ranked.
func ByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ranked":
		return Ranked{}, nil
	case "minmax":
		return MinMax{}, nil
	case "greedy":
		return Greedy{}, nil
	case "heuristic":
		return Heuristic{}, nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
}

// Ranked picks the first coalesced guess under Sorter (rank.MostSplits(false) when nil).
type Ranked struct {
	Sorter rank.Sorter
}

func (Ranked) Name() string { return "ranked" }

func (r Ranked) Choose(s space.Space) (string, error) {
	if len(s) == 0 || len(s.Candidates()) == 0 {
		return "", ErrEmptySpace
	}
	gs, err := guess.Space(s)
	if err != nil {
		return "", err
	}
	sorter := r.Sorter
	if sorter == nil {
		sorter = rank.MostSplits(false)
	}
	sorted := rank.Sort(gs, sorter)
	best := sorted[0]
	if picked := rank.Coalesce(sorted, false, 1); len(picked) > 0 {
		best = picked[0]
	}
	log.Debug().Str("strategy", "ranked").Int("words", len(s)).Str("choice", best.Word()).Msg("guess chosen")
	return best.Word(), nil
}

// scored is one word with its grouping and the facts every tuple score uses.
type scored struct {
	word       string
	grouping   space.Grouping
	splits     int
	worst      int
	singletons int
	answer     bool
}

func score(s space.Space) ([]scored, error) {
	candidates := s.Candidates()
	if len(s) == 0 || len(candidates) == 0 {
		return nil, ErrEmptySpace
	}
	answers := map[string]struct{}{}
	for _, w := range candidates {
		answers[w] = struct{}{}
	}
	out := make([]scored, 0, len(s))
	for _, w := range s.Words() {
		g := s[w]
		sc := scored{word: w, grouping: g, splits: len(g)}
		for _, bucket := range g {
			sc.worst = max(sc.worst, len(bucket))
			if len(bucket) == 1 {
				sc.singletons++
			}
		}
		_, sc.answer = answers[w]
		out = append(out, sc)
	}
	return out, nil
}

// descending sorts by key, best first; equal keys keep word order.
func descending(xs []scored, key func(scored) rank.Key) {
	sort.SliceStable(xs, func(i, j int) bool {
		return key(xs[i]).Compare(key(xs[j])) > 0
	})
}

func b(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// MinMax maximizes (splits, is answer, -worst bucket).
type MinMax struct{}

func (MinMax) Name() string { return "minmax" }

func (MinMax) Choose(s space.Space) (string, error) {
	xs, err := score(s)
	if err != nil {
		return "", err
	}
	descending(xs, func(x scored) rank.Key {
		return rank.Key{float64(x.splits), b(x.answer), -float64(x.worst)}
	})
	log.Debug().Str("strategy", "minmax").Int("words", len(s)).Str("choice", xs[0].word).Msg("guess chosen")
	return xs[0].word, nil
}

// greedyPool is how many top guesses Greedy searches for an answer.
const greedyPool = 10

// Greedy goes for the most singleton buckets, preferring an answer among the
// top greedyPool guesses.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Choose(s space.Space) (string, error) {
	xs, err := score(s)
	if err != nil {
		return "", err
	}
	descending(xs, func(x scored) rank.Key {
		return rank.Key{float64(x.singletons), float64(x.splits), b(x.answer), -float64(x.worst)}
	})
	top := xs[:min(greedyPool, len(xs))]
	choice := top[0].word
	for _, x := range top {
		if x.answer {
			choice = x.word
			break
		}
	}
	log.Debug().Str("strategy", "greedy").Int("words", len(s)).Str("choice", choice).Msg("guess chosen")
	return choice, nil
}

// DefaultThreshold is Heuristic's split count above which exploring beats guessing.
const DefaultThreshold = 5

// Heuristic ranks by (splits, -worst bucket, is answer), skips guesses that
// partition exactly like their predecessor, and then plays the best answer
// unless that answer is outside the top five and the best guess still splits
// more than Threshold ways.
type Heuristic struct {
	Threshold int
}

func (Heuristic) Name() string { return "heuristic" }

func (h Heuristic) Choose(s space.Space) (string, error) {
	threshold := h.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	xs, err := score(s)
	if err != nil {
		return "", err
	}
	descending(xs, func(x scored) rank.Key {
		return rank.Key{float64(x.splits), -float64(x.worst), b(x.answer)}
	})

	var displayed []scored
	var last [][]string
	for _, x := range xs {
		if len(displayed) >= threshold {
			break
		}
		cur := x.grouping.Buckets()
		if !sameBuckets(cur, last) || x.answer {
			displayed = append(displayed, x)
		}
		last = cur
	}

	firstSolution := -1
	for i, x := range xs {
		if x.answer {
			firstSolution = i
			break
		}
	}
	if firstSolution < 0 {
		return displayed[0].word, nil
	}
	solution := xs[firstSolution]
	shown := false
	for _, x := range displayed[:min(5, len(displayed))] {
		if x.word == solution.word {
			shown = true
			break
		}
	}
	choice := solution.word
	if !shown && displayed[0].splits > threshold {
		choice = displayed[0].word
	}
	log.Debug().Str("strategy", "heuristic").Int("words", len(s)).Int("answers", len(s.Candidates())).
		Str("choice", choice).Msg("guess chosen")
	return choice, nil
}

func sameBuckets(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
