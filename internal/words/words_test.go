package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	nAns, nAll := d.Stats()
	assert.Greater(t, nAns, 100)
	assert.Greater(t, nAll, nAns)
	assert.Equal(t, 5, d.Length())
	for _, w := range d.Answers() {
		assert.True(t, d.IsAllowed(w), w)
	}
	assert.True(t, d.IsAnswer("crane"))
	assert.True(t, d.IsAllowed("adieu"))
	assert.False(t, d.IsAnswer("adieu"))

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, d, again)
}

func TestNewNormalizes(t *testing.T) {
	d, err := New([]string{" Crane", "slate", "slate", "toolong", "ab1de"}, []string{"LINTS", "xx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, d.Answers())
	assert.Equal(t, []string{"crane", "lints", "slate"}, d.Allowed())
	assert.True(t, d.IsAllowed("LINTS"))
}

func TestNewRejects(t *testing.T) {
	_, err := New(nil, []string{"crane"})
	assert.Error(t, err)

	_, err = New([]string{"abcdefghijklmnopqrstu"}, nil)
	assert.ErrorIs(t, err, feedback.ErrInvalidWordLength)
}

func TestLoadBothFiles(t *testing.T) {
	ans := writeFile(t, "answers.txt", "# answers\ncrane\nslate\n\n")
	all := writeFile(t, "allowed.txt", "lints roast\nsoare\n")
	d, err := Load(ans, all)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, d.Answers())
	assert.Equal(t, []string{"crane", "lints", "roast", "slate", "soare"}, d.Allowed())
}

func TestLoadAllowedOnly(t *testing.T) {
	all := writeFile(t, "allowed.txt", "crane\nslate\n")
	d, err := Load("", all)
	require.NoError(t, err)
	assert.Equal(t, d.Answers(), d.Allowed())
}

func TestLoadAnswersOnly(t *testing.T) {
	ans := writeFile(t, "answers.txt", "cat\ndog\n")
	d, err := Load(ans, "")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Length())
	assert.Equal(t, []string{"cat", "dog"}, d.Allowed())
}

func TestLoadFallsBackToDefault(t *testing.T) {
	d, err := Load("", "")
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Same(t, def, d)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), "")
	assert.Error(t, err)

	empty := writeFile(t, "empty.txt", "# nothing\n")
	_, err = Load(empty, "")
	assert.Error(t, err)
}

func TestRandomAndSample(t *testing.T) {
	d, err := New([]string{"crane", "slate", "shine", "spine"}, nil)
	require.NoError(t, err)
	assert.True(t, d.IsAnswer(d.RandomAnswer()))

	s, err := d.Sample(3)
	require.NoError(t, err)
	require.Len(t, s, 3)
	seen := map[string]bool{}
	for _, w := range s {
		assert.True(t, d.IsAnswer(w))
		assert.False(t, seen[w], "duplicate %s", w)
		seen[w] = true
	}
	// sampling does not disturb the dictionary
	assert.Equal(t, []string{"crane", "shine", "slate", "spine"}, d.Answers())

	_, err = d.Sample(5)
	assert.Error(t, err)
}
