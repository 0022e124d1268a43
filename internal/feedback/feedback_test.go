package feedback

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marksOf(t *testing.T, secret, guess string) []Mark {
	t.Helper()
	f, err := Compute(secret, guess)
	require.NoError(t, err)
	return f.Marks()
}

func TestComputeGolden(t *testing.T) {
	cases := []struct {
		secret, guess string
		want          string
	}{
		{"ababa", "aabbb", "X??X_"},
		{"robot", "oomph", "?X___"},
		{"crane", "eerie", "__?_X"},
		{"crane", "slate", "__X_X"},
		{"shine", "slate", "X___X"},
		{"slate", "slate", "XXXXX"},
		{"abbey", "babes", "??XX_"},
		{"mamma", "ammam", "??X??"},
	}
	for _, tc := range cases {
		t.Run(tc.secret+"/"+tc.guess, func(t *testing.T) {
			f, err := Compute(tc.secret, tc.guess)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.String())
		})
	}
}

func TestComputeGoldenCode(t *testing.T) {
	f, err := Compute("ababa", "aabbb")
	require.NoError(t, err)
	assert.Equal(t, []Mark{Correct, Present, Present, Correct, Absent}, f.Marks())
	assert.Equal(t, uint32(2+1*3+1*9+2*27), f.Code())
}

func TestComputeLengthMismatch(t *testing.T) {
	_, err := Compute("crane", "cranes")
	assert.ErrorIs(t, err, ErrInvalidWordLength)
	_, err = Compute("", "")
	assert.ErrorIs(t, err, ErrInvalidWordLength)
}

func TestComputeDeterministic(t *testing.T) {
	a, err := Compute("robot", "oomph")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		b, err := Compute("robot", "oomph")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

// Letters marked Correct or Present never outnumber their occurrences in the secret.
func TestComputeNeverOvermarks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		secret, guess := randWord(rng, 5, "abcd"), randWord(rng, 5, "abcd")
		marks := marksOf(t, secret, guess)
		marked := map[byte]int{}
		for j, m := range marks {
			if m != Absent {
				marked[guess[j]]++
			}
		}
		for ch, n := range marked {
			assert.LessOrEqual(t, n, strings.Count(secret, string(ch)), "%s vs %s", secret, guess)
		}
	}
}

func TestSolvedOnlyForEqualWords(t *testing.T) {
	words := allWords(4, "abc")
	for _, s := range words {
		for _, g := range words {
			f := MustCompute(s, g)
			assert.Equal(t, s == g, f.Solved(), "%s vs %s", s, g)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for length := 1; length <= 6; length++ {
		for code := uint32(0); code < pow3(length); code++ {
			f, err := Decode(code, length)
			require.NoError(t, err)
			g, err := Encode(f.Marks()...)
			require.NoError(t, err)
			assert.Equal(t, f, g)
			back, err := Decode(g.Code(), length)
			require.NoError(t, err)
			assert.Equal(t, f, back)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode(243, 5)
	assert.ErrorIs(t, err, ErrInvalidFeedback)
	_, err = Decode(0, 0)
	assert.ErrorIs(t, err, ErrInvalidWordLength)
	_, err = Decode(0, MaxLength+1)
	assert.ErrorIs(t, err, ErrInvalidWordLength)
}

func TestParse(t *testing.T) {
	a, err := Parse("X??X_")
	require.NoError(t, err)
	b, err := Parse("21120")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, Present, a.At(1))
	assert.Equal(t, Absent, a.At(4))

	_, err = Parse("21z20")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestAllCorrect(t *testing.T) {
	f := AllCorrect(5)
	assert.True(t, f.Solved())
	assert.Equal(t, "XXXXX", f.String())
}

func TestMatchesEquivalentToCompute(t *testing.T) {
	words := allWords(4, "abc")
	for _, cause := range words {
		for _, secret := range words {
			in := Instance{Feedback: MustCompute(secret, cause), Cause: cause}
			for _, cand := range words {
				want := MustCompute(cand, cause) == in.Feedback
				require.Equal(t, want, in.Matches(cand), "cause %s secret %s cand %s", cause, secret, cand)
			}
		}
	}
}

func TestMatchesArbitraryFeedback(t *testing.T) {
	// includes feedback no secret could ever produce
	words := allWords(3, "ab")
	for _, cause := range words {
		for code := uint32(0); code < pow3(3); code++ {
			f, err := Decode(code, 3)
			require.NoError(t, err)
			in := Instance{Feedback: f, Cause: cause}
			for _, cand := range words {
				assert.Equal(t, MustCompute(cand, cause) == f, in.Matches(cand))
			}
		}
	}
}

func TestMatchesSampledFiveLetters(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20000; i++ {
		cause := randWord(rng, 5, "abcde")
		secret := randWord(rng, 5, "abcde")
		cand := randWord(rng, 5, "abcde")
		in := Instance{Feedback: MustCompute(secret, cause), Cause: cause}
		require.Equal(t, MustCompute(cand, cause) == in.Feedback, in.Matches(cand))
	}
}

func TestMatchesLengthMismatch(t *testing.T) {
	in, err := For("crane", "slate")
	require.NoError(t, err)
	assert.False(t, in.Matches("cranes"))
	_, err = NewInstance(in.Feedback, "slat")
	assert.ErrorIs(t, err, ErrInvalidWordLength)
}

func TestInstanceString(t *testing.T) {
	in, err := For("crane", "slate")
	require.NoError(t, err)
	assert.Equal(t, "| __A_E | Not present: l,s,t", in.String())
}

func randWord(rng *rand.Rand, n int, alphabet string) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

func allWords(n int, alphabet string) []string {
	out := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range out {
			for j := 0; j < len(alphabet); j++ {
				next = append(next, w+alphabet[j:j+1])
			}
		}
		out = next
	}
	return out
}
