package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

var (
	answers = []string{"crane", "shine", "slate", "crate", "trace", "react", "plane", "spine", "shale", "stale"}
	extra   = []string{"adieu", "roast", "lints", "tramp", "snail", "aaaaa"}
)

func instance(t *testing.T, secret, guess string) feedback.Instance {
	t.Helper()
	in, err := feedback.For(secret, guess)
	require.NoError(t, err)
	return in
}

func TestNewMergesAnswersIntoAllowed(t *testing.T) {
	e, err := New(answers, extra, false)
	require.NoError(t, err)
	assert.Len(t, e.Allowed(), len(answers)+len(extra))
	assert.Len(t, e.Answers(), len(answers))
	assert.True(t, e.IsAnswer("slate"))
	assert.False(t, e.IsAnswer("adieu"))
	assert.NoError(t, e.Acceptable("adieu"))
	assert.Equal(t, 5, e.Length())
}

func TestNewRejectsMixedLengths(t *testing.T) {
	_, err := New([]string{"crane", "cranes"}, nil, false)
	assert.ErrorIs(t, err, feedback.ErrInvalidWordLength)
	_, err = New(nil, extra, false)
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)
}

func TestAcceptable(t *testing.T) {
	e, err := New(answers, extra, false)
	require.NoError(t, err)
	assert.ErrorIs(t, e.Acceptable("zzzzz"), ErrUnknownWord)
	assert.ErrorIs(t, e.Acceptable("zz"), feedback.ErrInvalidWordLength)
}

func TestPrunedKeepsConsistentCandidates(t *testing.T) {
	e, err := New(answers, extra, false)
	require.NoError(t, err)
	in := instance(t, "crate", "roast")

	next, err := e.Pruned(in)
	require.NoError(t, err)
	for _, w := range next.Answers() {
		assert.True(t, in.Matches(w), w)
	}
	assert.Contains(t, next.Answers(), "crate")
	assert.Less(t, len(next.Answers()), len(e.Answers()))
	// earlier snapshot untouched
	assert.Len(t, e.Answers(), len(answers))
	// normal mode keeps the vocabulary
	assert.Equal(t, e.Allowed(), next.Allowed())
}

func TestPruneNonIncreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	all := append(append([]string(nil), answers...), extra...)
	for i := 0; i < 200; i++ {
		secret := answers[rng.Intn(len(answers))]
		guess := all[rng.Intn(len(all))]
		in := instance(t, secret, guess)
		out, err := Prune(answers, []feedback.Instance{in})
		require.NoError(t, err)

		var bucket []string
		for _, w := range answers {
			if feedback.MustCompute(w, guess) == in.Feedback {
				bucket = append(bucket, w)
			}
		}
		if len(bucket) < len(answers) {
			assert.Less(t, len(out), len(answers), "%s vs %s", guess, secret)
		} else {
			assert.LessOrEqual(t, len(out), len(answers))
		}
		if secret != guess {
			assert.Contains(t, out, secret)
			assert.ElementsMatch(t, bucket, out)
		}
	}
}

func TestPruneRemovesSolvedSecret(t *testing.T) {
	out, err := Prune(answers, []feedback.Instance{instance(t, "slate", "slate")})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPruneMultiBoard(t *testing.T) {
	// one guess, two boards: one solved by the guess, the other not
	solved := instance(t, "slate", "slate")
	other := instance(t, "shine", "slate")
	out, err := Prune(answers, []feedback.Instance{solved, other})
	require.NoError(t, err)
	assert.NotContains(t, out, "slate")
	assert.Contains(t, out, "shine")
	for _, w := range out {
		assert.True(t, other.Matches(w))
	}
}

func TestPruneContradiction(t *testing.T) {
	f, err := feedback.Parse("XXXX_")
	require.NoError(t, err)
	in, err := feedback.NewInstance(f, "slate")
	require.NoError(t, err)
	_, err = Prune([]string{"slate", "crane"}, []feedback.Instance{in})
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)
}

func TestPrunedUnknownCause(t *testing.T) {
	e, err := New(answers, nil, false)
	require.NoError(t, err)
	in := instance(t, "crane", "roast")
	_, err = e.Pruned(in)
	assert.ErrorIs(t, err, ErrUnknownWord)
}

func TestHardModeContainment(t *testing.T) {
	e, err := New(answers, extra, true)
	require.NoError(t, err)
	instances := []feedback.Instance{instance(t, "crate", "roast")}

	next, err := e.Pruned(instances...)
	require.NoError(t, err)
	assert.Less(t, len(next.Allowed()), len(e.Allowed()))
	for _, w := range next.Allowed() {
		for _, in := range instances {
			assert.True(t, in.Matches(w), w)
		}
	}
	assert.ErrorIs(t, next.Acceptable("adieu"), ErrUnknownWord)
	assert.NoError(t, next.Acceptable("crate"))
}

func TestPruneAllowedRequiresEveryInstance(t *testing.T) {
	a := instance(t, "crate", "roast")
	b := instance(t, "crate", "plane")
	out := PruneAllowed(append(answers, extra...), []feedback.Instance{a, b})
	for _, w := range out {
		assert.True(t, a.Matches(w) && b.Matches(w), w)
	}
	assert.Contains(t, out, "crate")
}

func TestVariantsAgree(t *testing.T) {
	for _, hard := range []bool{false, true} {
		e, err := New(answers, extra, hard)
		require.NoError(t, err)
		m := e.Mutable()

		turns := [][]feedback.Instance{
			{instance(t, "stale", "crane")},
			{instance(t, "stale", "slate")},
		}
		var model Model = e
		for _, in := range turns {
			next, err := e.Pruned(in...)
			require.NoError(t, err)
			require.NoError(t, m.Prune(in...))
			assert.Equal(t, next.Answers(), m.Answers())
			assert.Equal(t, next.Allowed(), m.Allowed())
			assert.Equal(t, next.Key(), m.Key())
			e = next

			model, err = model.Advance(in...)
			require.NoError(t, err)
			assert.Equal(t, m.Answers(), model.Answers())
		}
	}
}

func TestMutableAdvanceReturnsSelf(t *testing.T) {
	m, err := NewMutable(answers, extra, false)
	require.NoError(t, err)
	got, err := m.Advance(instance(t, "stale", "crane"))
	require.NoError(t, err)
	assert.Same(t, m, got)

	snap := m.Snapshot()
	require.NoError(t, m.Prune(instance(t, "stale", "slate")))
	assert.NotEqual(t, snap.Answers(), m.Answers())
}

func TestMutablePruneErrorLeavesState(t *testing.T) {
	m, err := NewMutable(answers, extra, false)
	require.NoError(t, err)
	before := m.Answers()
	f, err := feedback.Parse("XXXX_")
	require.NoError(t, err)
	assert.ErrorIs(t, m.Prune(feedback.Instance{Feedback: f, Cause: "slate"}), ErrEmptyCandidateSet)
	assert.Equal(t, before, m.Answers())
}

func TestGroupingAndKey(t *testing.T) {
	e, err := New([]string{"crane", "shine", "slate"}, nil, false)
	require.NoError(t, err)
	g, err := e.Grouping("slate")
	require.NoError(t, err)
	assert.Len(t, g, 3)

	e2, err := New([]string{"slate", "shine", "crane"}, nil, false)
	require.NoError(t, err)
	assert.Equal(t, e.Key(), e2.Key())
}
