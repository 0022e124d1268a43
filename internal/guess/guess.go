// internal/guess/guess.go
//
// Statistics over one guess's partition of the eligible solutions.
// Every value is computed once in New and stored; a Guess is bound to the
// candidate snapshot its grouping was taken against and must be rebuilt
// after the candidate set changes.

package guess

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/robalobadob/wordle-solver/internal/space"
)

// ErrNoSplits is returned for a grouping with no candidates.
var ErrNoSplits = errors.New("grouping has no candidates")

// Stats is the view rankers consume. Guess and Multi implement it.
type Stats interface {
	Word() string
	NSplits() int
	SplitSizes() []int
	LargestSplit() int
	MeanSplitSize() float64
	MedianSplitSize() float64
	SplitStdev() float64
	IsEligible() bool
	CurrentSolvingPercentage() float64
	NextSolvingPercentage() float64
	IsTheSolution() bool
	IsUseless() bool
	Eligible() []string
	Equiv(other Stats) bool
}

// Guess holds the derived statistics of one guess.
type Guess struct {
	word       string
	buckets    [][]string // ordered by first member
	eligible   []string   // sorted union of buckets
	splitSizes []int      // ascending

	largest  int
	mean     float64
	median   float64
	stdev    float64
	isElig   bool
	current  float64
	next     float64
	solution bool
	useless  bool
}

// New derives every statistic of word from its grouping.
func New(word string, grouping space.Grouping) (*Guess, error) {
	if grouping.Size() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSplits, word)
	}
	g := &Guess{
		word:     word,
		buckets:  grouping.Buckets(),
		eligible: grouping.Members(),
	}
	g.splitSizes = make([]int, len(g.buckets))
	for i, b := range g.buckets {
		g.splitSizes[i] = len(b)
	}
	sort.Ints(g.splitSizes)

	n := len(g.splitSizes)
	total := len(g.eligible)
	g.largest = g.splitSizes[n-1]
	g.mean = float64(total) / float64(n)
	g.median = median(g.splitSizes)
	g.stdev = stdev(g.splitSizes, g.mean)

	i := sort.SearchStrings(g.eligible, word)
	g.isElig = i < total && g.eligible[i] == word
	if g.isElig {
		g.current = 100 / float64(total)
	}
	g.next = 100 * float64(n) / float64(total)
	g.solution = n == 1 && total == 1 && g.isElig
	g.useless = n == 1 && !g.solution
	return g, nil
}

// Space builds a Guess for every word in s.
func Space(s space.Space) ([]*Guess, error) {
	out := make([]*Guess, 0, len(s))
	for _, w := range s.Words() {
		g, err := New(w, s[w])
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (g *Guess) Word() string                      { return g.word }
func (g *Guess) NSplits() int                      { return len(g.splitSizes) }
func (g *Guess) SplitSizes() []int                 { return append([]int(nil), g.splitSizes...) }
func (g *Guess) LargestSplit() int                 { return g.largest }
func (g *Guess) MeanSplitSize() float64            { return g.mean }
func (g *Guess) MedianSplitSize() float64          { return g.median }
func (g *Guess) SplitStdev() float64               { return g.stdev }
func (g *Guess) IsEligible() bool                  { return g.isElig }
func (g *Guess) CurrentSolvingPercentage() float64 { return g.current }
func (g *Guess) NextSolvingPercentage() float64    { return g.next }
func (g *Guess) IsTheSolution() bool               { return g.solution }
func (g *Guess) IsUseless() bool                   { return g.useless }
func (g *Guess) Eligible() []string                { return append([]string(nil), g.eligible...) }

// Buckets returns the partition ordered by each bucket's first member.
func (g *Guess) Buckets() [][]string { return g.buckets }

// Equiv reports whether two non-eligible guesses split the eligible solutions
// identically. An eligible guess is never equivalent to any other guess.
func (g *Guess) Equiv(other Stats) bool {
	if other == nil || g.IsEligible() || other.IsEligible() {
		return false
	}
	o, ok := other.(bucketer)
	if !ok {
		return false
	}
	return equalBuckets(g.buckets, o.bucketSeq())
}

func (g *Guess) bucketSeq() [][]string { return g.buckets }

func (g *Guess) String() string {
	return format(g)
}

type bucketer interface {
	bucketSeq() [][]string
}

func equalBuckets(a, b [][]string) bool {
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

func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// stdev is the population standard deviation of sizes about mean.
func stdev(sizes []int, mean float64) float64 {
	var sum float64
	for _, s := range sizes {
		d := float64(s) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(sizes)))
}

// format renders one line per guess, marking the solution with "x " and
// other eligible guesses with "* ".
func format(s Stats) string {
	prefix := "  "
	switch {
	case s.IsTheSolution():
		prefix = "x "
	case s.IsEligible():
		prefix = "* "
	}
	sizes := s.SplitSizes()
	return fmt.Sprintf("%s%s: %d splits (mean: %.2f, median: %.1f, stdev: %.2f, max: %d) win prob: %.2f%% -> %.2f%%",
		prefix, s.Word(), s.NSplits(), s.MeanSplitSize(), s.MedianSplitSize(), s.SplitStdev(),
		sizes[len(sizes)-1], s.CurrentSolvingPercentage(), s.NextSolvingPercentage())
}
