package advisor

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/engine"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/rank"
)

func newTracker(t *testing.T, n int, skipFirst bool) *Tracker {
	t.Helper()
	e, err := engine.New([]string{"crane", "crate", "slate", "shine", "spine"}, []string{"lints", "roast"}, false)
	require.NoError(t, err)
	tr, err := NewTracker(e, n, skipFirst)
	require.NoError(t, err)
	return tr
}

func instances(t *testing.T, guess string, secrets ...string) []feedback.Instance {
	t.Helper()
	out := make([]feedback.Instance, 0, len(secrets))
	for _, s := range secrets {
		in, err := feedback.For(s, guess)
		require.NoError(t, err)
		out = append(out, in)
	}
	return out
}

func TestAdviseCombinesBoards(t *testing.T) {
	tr := newTracker(t, 2, false)
	tips, err := tr.Advise(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, tips, len(rank.Tips()))
	for i, tip := range tips {
		assert.Equal(t, rank.Tips()[i].Name, tip.Name)
		assert.Len(t, tip.Guesses, 3)
		for _, g := range tip.Guesses {
			assert.Equal(t, 2, g.Boards())
		}
	}
}

func TestAdviseDefaultCutoff(t *testing.T) {
	tr := newTracker(t, 1, false)
	tips, err := tr.Advise(context.Background(), 0)
	require.NoError(t, err)
	// 7 allowed words, fewer than the default cutoff
	assert.Len(t, tips[0].Guesses, 7)
}

func TestCommitRetiresSolvedBoards(t *testing.T) {
	tr := newTracker(t, 2, false)
	require.NoError(t, tr.Commit(instances(t, "crane", "crane", "slate")...))
	assert.Equal(t, 1, tr.Boards())

	tips, err := tr.Advise(context.Background(), 1)
	require.NoError(t, err)
	// one candidate left on the open board: the solution ranks first
	assert.Equal(t, "slate", tips[1].Guesses[0].Word())
	assert.Equal(t, 1, tips[1].Guesses[0].Boards())
}

func TestCommitCountMismatch(t *testing.T) {
	tr := newTracker(t, 2, false)
	assert.Error(t, tr.Commit(instances(t, "crane", "slate")...))
	assert.Equal(t, 2, tr.Boards())
}

func TestCommitContradictionLeavesBoards(t *testing.T) {
	tr := newTracker(t, 2, false)
	bad, err := feedback.NewInstance(feedback.MustCompute("zzzzz", "crane"), "crane")
	require.NoError(t, err)
	good := instances(t, "crane", "slate")[0]

	err = tr.Commit(good, bad)
	assert.ErrorIs(t, err, engine.ErrEmptyCandidateSet)
	assert.Equal(t, 2, tr.Boards())
}

func TestAdviseWithoutBoards(t *testing.T) {
	tr := newTracker(t, 1, false)
	require.NoError(t, tr.Commit(instances(t, "crane", "crane")...))
	_, err := tr.Advise(context.Background(), 1)
	assert.Error(t, err)
}

func TestGuideSkipsFirst(t *testing.T) {
	tr := newTracker(t, 2, true)
	var out bytes.Buffer
	require.NoError(t, tr.Guide(context.Background(), &out))
	assert.Empty(t, out.String())

	require.NoError(t, tr.Guide(context.Background(), &out))
	assert.Contains(t, out.String(), "Most splits")
	assert.Contains(t, out.String(), "Solutions with most splits")
}

func TestNewTrackerRejectsNoBoards(t *testing.T) {
	e, err := engine.New([]string{"crane"}, nil, false)
	require.NoError(t, err)
	_, err = NewTracker(e, 0, false)
	assert.Error(t, err)
}
