package guess

import (
	"errors"
	"fmt"
	"sort"
)

// Multi is one guess word viewed across several boards that share a dictionary.
// Board statistics combine so that one ranking can value the guess for all
// boards at once: the best board dominates the worst case, splits add up,
// eligible solutions are unioned.
type Multi struct {
	word   string
	boards []*Guess

	nSplits    int
	splitSizes []int
	eligible   []string
	largest    int
	mean       float64
	median     float64
	stdev      float64
	isElig     bool
	current    float64
	next       float64
	solution   bool
	useless    bool
	buckets    [][]string
}

// NewMulti aggregates per-board statistics of the same word.
func NewMulti(boards ...*Guess) (*Multi, error) {
	if len(boards) == 0 {
		return nil, errors.New("multi guess needs at least one board")
	}
	m := &Multi{word: boards[0].word, boards: boards, useless: true, largest: boards[0].largest, next: boards[0].next}
	seen := map[string]struct{}{}
	total := 0
	for _, b := range boards {
		if b.word != m.word {
			return nil, fmt.Errorf("multi guess mixes %q and %q", m.word, b.word)
		}
		m.solution = m.solution || b.solution
		m.useless = m.useless && b.useless
		m.largest = min(m.largest, b.largest)
		m.next = min(m.next, b.next)
		m.current = max(m.current, b.current)
		m.nSplits += len(b.splitSizes)
		m.splitSizes = append(m.splitSizes, b.splitSizes...)
		m.buckets = append(m.buckets, b.buckets...)
		total += len(b.eligible)
		for _, w := range b.eligible {
			seen[w] = struct{}{}
		}
	}
	sort.Ints(m.splitSizes)
	m.eligible = make([]string, 0, len(seen))
	for w := range seen {
		m.eligible = append(m.eligible, w)
	}
	sort.Strings(m.eligible)
	_, m.isElig = seen[m.word]

	m.mean = float64(total) / float64(m.nSplits)
	m.median = median(m.splitSizes)
	m.stdev = stdev(m.splitSizes, m.mean)
	return m, nil
}

// Combine groups per-board guesses by word and aggregates each word.
// Words missing from some boards are aggregated over the boards that have them.
func Combine(boards ...[]*Guess) ([]*Multi, error) {
	byWord := map[string][]*Guess{}
	var order []string
	for _, board := range boards {
		for _, g := range board {
			if _, ok := byWord[g.word]; !ok {
				order = append(order, g.word)
			}
			byWord[g.word] = append(byWord[g.word], g)
		}
	}
	sort.Strings(order)
	out := make([]*Multi, 0, len(order))
	for _, w := range order {
		m, err := NewMulti(byWord[w]...)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (m *Multi) Word() string                      { return m.word }
func (m *Multi) Boards() int                       { return len(m.boards) }
func (m *Multi) NSplits() int                      { return m.nSplits }
func (m *Multi) SplitSizes() []int                 { return append([]int(nil), m.splitSizes...) }
func (m *Multi) LargestSplit() int                 { return m.largest }
func (m *Multi) MeanSplitSize() float64            { return m.mean }
func (m *Multi) MedianSplitSize() float64          { return m.median }
func (m *Multi) SplitStdev() float64               { return m.stdev }
func (m *Multi) IsEligible() bool                  { return m.isElig }
func (m *Multi) CurrentSolvingPercentage() float64 { return m.current }
func (m *Multi) NextSolvingPercentage() float64    { return m.next }
func (m *Multi) IsTheSolution() bool               { return m.solution }
func (m *Multi) IsUseless() bool                   { return m.useless }
func (m *Multi) Eligible() []string                { return append([]string(nil), m.eligible...) }

func (m *Multi) Equiv(other Stats) bool {
	if other == nil || m.IsEligible() || other.IsEligible() {
		return false
	}
	o, ok := other.(bucketer)
	if !ok {
		return false
	}
	return equalBuckets(m.buckets, o.bucketSeq())
}

func (m *Multi) bucketSeq() [][]string { return m.buckets }

func (m *Multi) String() string { return format(m) }
