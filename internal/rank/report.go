package rank

import (
	"github.com/robalobadob/wordle-solver/internal/guess"
)

// Section is one titled list of a Report.
type Section struct {
	Title   string        `json:"title"`
	Guesses []guess.Stats `json:"-"`
}

// Tip is a named ordering used by reports and multi-board guidance.
type Tip struct {
	Name   string
	Sorter Sorter
}

// Tips are the orderings offered to a player, in display order.
func Tips() []Tip {
	return []Tip{
		{"Most chance to solve", MostChanceToSolve},
		{"Most splits", MostSplits(false)},
		{"Best worst case", WorstCaseScenario(false)},
		{"Solutions with most splits", MostSplits(true)},
	}
}

// Report lists the cutoff best guesses under every tip, coalescing
// equivalent and useless guesses.
func Report[S guess.Stats](gs []S, cutoff int) []Section {
	tips := Tips()
	out := make([]Section, 0, len(tips))
	for _, tip := range tips {
		best := Coalesce(Sort(gs, tip.Sorter), false, cutoff)
		sec := Section{Title: tip.Name, Guesses: make([]guess.Stats, len(best))}
		for i, g := range best {
			sec.Guesses[i] = g
		}
		out = append(out, sec)
	}
	return out
}
