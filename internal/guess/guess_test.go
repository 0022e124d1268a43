package guess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/space"
)

func build(t *testing.T, word string, candidates []string) *Guess {
	t.Helper()
	grouping, err := space.Group(word, candidates)
	require.NoError(t, err)
	g, err := New(word, grouping)
	require.NoError(t, err)
	return g
}

func TestStatsScenario(t *testing.T) {
	g := build(t, "slate", []string{"crane", "shine", "slate"})
	assert.Equal(t, 3, g.NSplits())
	assert.Equal(t, []int{1, 1, 1}, g.SplitSizes())
	assert.Equal(t, 1, g.LargestSplit())
	assert.Equal(t, 1.0, g.MeanSplitSize())
	assert.Equal(t, 1.0, g.MedianSplitSize())
	assert.Equal(t, 0.0, g.SplitStdev())
	assert.True(t, g.IsEligible())
	assert.InDelta(t, 100.0/3, g.CurrentSolvingPercentage(), 1e-9)
	assert.Equal(t, 100.0, g.NextSolvingPercentage())
	assert.False(t, g.IsTheSolution())
	assert.False(t, g.IsUseless())
}

func TestStatsUnevenSplits(t *testing.T) {
	// "zzzzz" shares no letter with anything: one bucket of everything
	cands := []string{"crane", "crate", "trace", "slate", "shine"}
	g := build(t, "zzzzz", cands)
	assert.Equal(t, 1, g.NSplits())
	assert.True(t, g.IsUseless())
	assert.False(t, g.IsTheSolution())
	assert.False(t, g.IsEligible())
	assert.Equal(t, 0.0, g.CurrentSolvingPercentage())
	assert.Equal(t, 20.0, g.NextSolvingPercentage())

	// crane vs {crane,crate,trace,slate,shine}: XXXXX, XXX_X, ?XX_?... sizes vary
	g = build(t, "crane", cands)
	sizes := g.SplitSizes()
	sum := 0
	for i, s := range sizes {
		sum += s
		if i > 0 {
			assert.LessOrEqual(t, sizes[i-1], s)
		}
	}
	assert.Equal(t, len(cands), sum)
	assert.Equal(t, sizes[len(sizes)-1], g.LargestSplit())
	assert.InDelta(t, float64(len(cands))/float64(len(sizes)), g.MeanSplitSize(), 1e-12)
}

func TestMedianAndStdev(t *testing.T) {
	assert.Equal(t, 2.5, median([]int{1, 2, 3, 4}))
	assert.Equal(t, 3.0, median([]int{1, 3, 7}))
	// sizes 1,1,4 mean 2 -> variance (1+1+4)/3 = 2
	assert.InDelta(t, math.Sqrt(2), stdev([]int{1, 1, 4}, 2), 1e-12)
}

func TestIsTheSolution(t *testing.T) {
	g := build(t, "slate", []string{"slate"})
	assert.True(t, g.IsTheSolution())
	assert.False(t, g.IsUseless())
	assert.Equal(t, 100.0, g.CurrentSolvingPercentage())

	// one bucket of a different word: useless, not the solution
	g = build(t, "crane", []string{"slate"})
	assert.False(t, g.IsTheSolution())
	assert.True(t, g.IsUseless())
}

func TestNewEmptyGrouping(t *testing.T) {
	_, err := New("slate", space.Grouping{})
	assert.ErrorIs(t, err, ErrNoSplits)
}

func TestEquiv(t *testing.T) {
	cands := []string{"crane", "shine", "slate"}
	a := build(t, "zzzzz", cands)
	b := build(t, "qqqqq", cands)
	c := build(t, "slate", cands)
	d := build(t, "plate", cands)

	assert.True(t, a.Equiv(b))
	assert.False(t, a.Equiv(nil))
	// eligible guesses are never equivalent, not even to themselves
	assert.False(t, c.Equiv(c))
	assert.False(t, d.Equiv(c))
	assert.False(t, a.Equiv(d))
}

func TestSpace(t *testing.T) {
	s := space.Space{}
	for _, w := range []string{"slate", "crane"} {
		g, err := space.Group(w, []string{"crane", "shine", "slate"})
		require.NoError(t, err)
		s[w] = g
	}
	gs, err := Space(s)
	require.NoError(t, err)
	require.Len(t, gs, 2)
	assert.Equal(t, "crane", gs[0].Word())
}

func TestString(t *testing.T) {
	g := build(t, "slate", []string{"slate"})
	assert.Equal(t, "x slate: 1 splits (mean: 1.00, median: 1.0, stdev: 0.00, max: 1) win prob: 100.00% -> 100.00%", g.String())
}

func TestMultiSingleBoardIdentity(t *testing.T) {
	for _, word := range []string{"slate", "crane", "zzzzz"} {
		g := build(t, word, []string{"crane", "crate", "trace", "slate", "shine"})
		m, err := NewMulti(g)
		require.NoError(t, err)

		assert.Equal(t, g.Word(), m.Word())
		assert.Equal(t, g.NSplits(), m.NSplits())
		assert.Equal(t, g.SplitSizes(), m.SplitSizes())
		assert.Equal(t, g.LargestSplit(), m.LargestSplit())
		assert.Equal(t, g.MeanSplitSize(), m.MeanSplitSize())
		assert.Equal(t, g.MedianSplitSize(), m.MedianSplitSize())
		assert.Equal(t, g.SplitStdev(), m.SplitStdev())
		assert.Equal(t, g.IsEligible(), m.IsEligible())
		assert.Equal(t, g.CurrentSolvingPercentage(), m.CurrentSolvingPercentage())
		assert.Equal(t, g.NextSolvingPercentage(), m.NextSolvingPercentage())
		assert.Equal(t, g.IsTheSolution(), m.IsTheSolution())
		assert.Equal(t, g.IsUseless(), m.IsUseless())
		assert.Equal(t, g.Eligible(), m.Eligible())
	}
}

func TestMultiAggregation(t *testing.T) {
	a := build(t, "slate", []string{"slate"})                   // solved board
	b := build(t, "slate", []string{"crane", "crate", "trace"}) // open board
	m, err := NewMulti(a, b)
	require.NoError(t, err)

	assert.True(t, m.IsTheSolution())
	assert.False(t, m.IsUseless())
	assert.Equal(t, min(a.LargestSplit(), b.LargestSplit()), m.LargestSplit())
	assert.Equal(t, a.NSplits()+b.NSplits(), m.NSplits())
	assert.InDelta(t, 4/float64(m.NSplits()), m.MeanSplitSize(), 1e-12)
	assert.Equal(t, min(a.NextSolvingPercentage(), b.NextSolvingPercentage()), m.NextSolvingPercentage())
	assert.Equal(t, 100.0, m.CurrentSolvingPercentage())
	assert.Equal(t, []string{"crane", "crate", "slate", "trace"}, m.Eligible())
	assert.True(t, m.IsEligible())
	assert.Len(t, m.SplitSizes(), m.NSplits())
	assert.Equal(t, 2, m.Boards())
}

func TestMultiUselessOnlyIfAllBoardsUseless(t *testing.T) {
	a := build(t, "zzzzz", []string{"crane", "crate"})
	b := build(t, "zzzzz", []string{"slate"})
	m, err := NewMulti(a, b)
	require.NoError(t, err)
	assert.True(t, m.IsUseless())

	c := build(t, "crane", []string{"crane", "slate"})
	d := build(t, "crane", []string{"crate"})
	m, err = NewMulti(c, d)
	require.NoError(t, err)
	assert.False(t, m.IsUseless())
}

func TestMultiRejectsMixedWords(t *testing.T) {
	_, err := NewMulti(build(t, "slate", []string{"slate"}), build(t, "crane", []string{"slate"}))
	assert.Error(t, err)
	_, err = NewMulti()
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	b1 := []*Guess{build(t, "slate", []string{"crane", "slate"}), build(t, "crane", []string{"crane", "slate"})}
	b2 := []*Guess{build(t, "slate", []string{"shine"})}
	ms, err := Combine(b1, b2)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "crane", ms[0].Word())
	assert.Equal(t, 1, ms[0].Boards())
	assert.Equal(t, "slate", ms[1].Word())
	assert.Equal(t, 2, ms[1].Boards())
}
