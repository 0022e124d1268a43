// internal/rank/rank.go
//
// Total orderings over guesses.
// A Sorter maps a guess to a Key; keys compare lexicographically and smaller
// is better. Ties that survive every key component fall back to the word so
// that every ordering is total and deterministic.

package rank

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/robalobadob/wordle-solver/internal/guess"
)

// Key is a lexicographic sort key.
type Key []float64

// Sorter maps a guess to its key.
type Sorter func(g guess.Stats) Key

// Compare returns -1, 0 or +1. A shorter key that is a prefix of a longer one
// sorts first.
func (k Key) Compare(o Key) int {
	return compareSlices(k, o)
}

func compareSlices[T constraints.Ordered](a, b []T) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// AlwaysFirst puts the solution first and useless guesses last.
func AlwaysFirst(g guess.Stats) Key {
	return Key{flag(!g.IsTheSolution()), flag(g.IsUseless())}
}

// Ordinary is the default tail shared by every heuristic.
func Ordinary(g guess.Stats) Key {
	return Key{g.MeanSplitSize(), g.MedianSplitSize(), float64(g.LargestSplit()), flag(!g.IsEligible())}
}

// Prioritize builds AlwaysFirst + (eligible first) + extra + Ordinary.
func Prioritize(g guess.Stats, extra Key, eligiblesFirst bool) Key {
	k := AlwaysFirst(g)
	if eligiblesFirst {
		k = append(k, flag(!g.IsEligible()))
	}
	k = append(k, extra...)
	return append(k, Ordinary(g)...)
}

// MostSplits ranks by the ordinary tail only.
func MostSplits(eligiblesFirst bool) Sorter {
	return func(g guess.Stats) Key {
		return Prioritize(g, nil, eligiblesFirst)
	}
}

// WorstCaseScenario minimizes the largest bucket first.
func WorstCaseScenario(eligiblesFirst bool) Sorter {
	return func(g guess.Stats) Key {
		return Prioritize(g, Key{float64(g.LargestSplit())}, eligiblesFirst)
	}
}

// Percentile minimizes the bucket size at the p-th percentile of split sizes.
func Percentile(p int, eligiblesFirst bool) Sorter {
	return func(g guess.Stats) Key {
		sizes := g.SplitSizes()
		n := len(sizes)
		idx := min(n*p/100, n-1)
		return Prioritize(g, Key{float64(sizes[idx])}, eligiblesFirst)
	}
}

// MostChanceToSolve prefers the highest chance that this guess is the secret.
func MostChanceToSolve(g guess.Stats) Key {
	return Key{100 - g.CurrentSolvingPercentage()}
}

// Sort returns the guesses ordered by s, best first. The input is not modified.
func Sort[S guess.Stats](gs []S, s Sorter) []S {
	type keyed struct {
		g S
		k Key
	}
	ks := make([]keyed, len(gs))
	for i, g := range gs {
		ks[i] = keyed{g, s(g)}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if c := ks[i].k.Compare(ks[j].k); c != 0 {
			return c < 0
		}
		return ks[i].g.Word() < ks[j].g.Word()
	})
	out := make([]S, len(ks))
	for i, k := range ks {
		out[i] = k.g
	}
	return out
}

// Smallest returns the n best guesses under s.
func Smallest[S guess.Stats](gs []S, n int, s Sorter) []S {
	sorted := Sort(gs, s)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Coalesce walks a sorted sequence and drops useless guesses and guesses
// equivalent to their predecessor. It stops once count guesses were yielded,
// except that with awaitEligible it keeps going until the first eligible guess
// has been seen; past count only eligible guesses are yielded.
func Coalesce[S guess.Stats](sorted []S, awaitEligible bool, count int) []S {
	var out []S
	var last guess.Stats
	for _, g := range sorted {
		if g.IsEligible() {
			awaitEligible = false
		}
		proceed := count > 0 || g.IsEligible()
		if !g.Equiv(last) && !g.IsUseless() && proceed {
			out = append(out, g)
			count--
			if count <= 0 && !awaitEligible {
				return out
			}
		}
		last = g
	}
	return out
}
