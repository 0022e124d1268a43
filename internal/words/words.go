// internal/words/words.go
//
// Provides word list management for the solver.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply utility functions like RandomAnswer, Sample, IsAllowed, IsAnswer, and Stats.
//
// Word Lists:
//   - "answers": possible secrets.
//   - "allowed": valid guesses (always includes answers).
//
// Loading behavior (Load):
//   1. If both paths are set, load answers from the first and allowed guesses from the second.
//   2. If only the allowed path is set, use that file for both answers and allowed guesses.
//   3. If neither is set, fall back to the embedded defaults from
//      `default_small_answers.txt` and `default_small_allowed.txt`.
//
// Constraints:
//   • Words are alphabetic a–z, lowercased, and all as long as the first answer.
//   • Blank lines and lines starting with '#' are skipped; a line may hold several words.
//   • The embedded defaults are parsed once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// --- embedded defaults (ensures the solver runs even if no files are configured) ---

//go:embed default_small_answers.txt
var embeddedAnswers string

//go:embed default_small_allowed.txt
var embeddedAllowed string

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
	defaultErr  error
)

// Dictionary is a validated pair of word lists.
type Dictionary struct {
	answers    []string            // sorted, unique
	allowed    []string            // sorted, unique, ⊇ answers
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
	length     int
}

// New validates the lists. Answers are added to the allowed guesses; words of
// a different length than the first answer are dropped.
func New(answers, allowed []string) (*Dictionary, error) {
	if len(answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	length := len(strings.TrimSpace(answers[0]))
	if length < 1 || length > feedback.MaxLength {
		return nil, fmt.Errorf("%w: words of %d letters", feedback.ErrInvalidWordLength, length)
	}

	d := &Dictionary{length: length}
	d.answers = d.keep(answers)
	if len(d.answers) == 0 {
		return nil, errors.New("words: no valid answers")
	}
	d.allowed = d.keep(append(append([]string{}, answers...), allowed...))
	d.answersSet = toSet(d.answers)
	d.allowedSet = toSet(d.allowed)
	return d, nil
}

// keep normalizes, filters and sorts a list.
func (d *Dictionary) keep(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	dropped := 0
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) != d.length || !isAlpha(w) {
			dropped++
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("length", d.length).Msg("words of unexpected shape skipped")
	}
	sort.Strings(out)
	return out
}

// Load reads the lists from files, following the rules in the header.
func Load(answersPath, allowedPath string) (*Dictionary, error) {
	switch {
	case answersPath != "" && allowedPath != "":
		ans, err := readWordFile(answersPath)
		if err != nil {
			return nil, err
		}
		all, err := readWordFile(allowedPath)
		if err != nil {
			return nil, err
		}
		return New(ans, all)

	case answersPath == "" && allowedPath != "":
		all, err := readWordFile(allowedPath)
		if err != nil {
			return nil, err
		}
		return New(all, all)

	case answersPath != "":
		ans, err := readWordFile(answersPath)
		if err != nil {
			return nil, err
		}
		return New(ans, nil)
	}
	return Default()
}

// Default returns the embedded dictionary.
func Default() (*Dictionary, error) {
	defaultOnce.Do(func() {
		defaultDict, defaultErr = New(
			readWords(strings.NewReader(embeddedAnswers)),
			readWords(strings.NewReader(embeddedAllowed)),
		)
	})
	return defaultDict, defaultErr
}

// readWordFile loads the words of a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out := readWords(f)
	if len(out) == 0 {
		return nil, fmt.Errorf("words: %s has no words", path)
	}
	return out, nil
}

// readWords splits r into whitespace-separated words, skipping comment lines.
func readWords(r io.Reader) []string {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.Fields(strings.ToLower(s))...)
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func (d *Dictionary) Answers() []string { return append([]string(nil), d.answers...) }
func (d *Dictionary) Allowed() []string { return append([]string(nil), d.allowed...) }
func (d *Dictionary) Length() int       { return d.length }

// RandomAnswer returns a cryptographically random answer.
func (d *Dictionary) RandomAnswer() string {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(d.answers))))
	return d.answers[nBig.Int64()]
}

// Sample returns n distinct random answers.
func (d *Dictionary) Sample(n int) ([]string, error) {
	if n < 0 || n > len(d.answers) {
		return nil, fmt.Errorf("words: cannot sample %d of %d answers", n, len(d.answers))
	}
	pool := d.Answers()
	for i := 0; i < n; i++ {
		j, _ := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		k := i + int(j.Int64())
		pool[i], pool[k] = pool[k], pool[i]
	}
	return pool[:n], nil
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (d *Dictionary) IsAllowed(w string) bool {
	_, ok := d.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (d *Dictionary) IsAnswer(w string) bool {
	_, ok := d.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (d *Dictionary) Stats() (answersCount int, allowedCount int) {
	return len(d.answers), len(d.allowed)
}
