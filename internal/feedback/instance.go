// internal/feedback/instance.go
//
// Instance pairs observed feedback with the guess that caused it, and decides
// whether an arbitrary word could be the secret given that observation.

package feedback

import (
	"fmt"
	"sort"
	"strings"
)

// Instance is a Feedback together with the guess ("cause") that produced it.
type Instance struct {
	Feedback Feedback
	Cause    string
}

// NewInstance validates that feedback and cause have the same length.
func NewInstance(f Feedback, cause string) (Instance, error) {
	if f.Len() != len(cause) {
		return Instance{}, fmt.Errorf("%w: feedback %d vs cause %q", ErrInvalidWordLength, f.Len(), cause)
	}
	return Instance{Feedback: f, Cause: cause}, nil
}

// For returns the instance a guess produces against a known secret.
func For(secret, guess string) (Instance, error) {
	f, err := Compute(secret, guess)
	if err != nil {
		return Instance{}, err
	}
	return Instance{Feedback: f, Cause: guess}, nil
}

// Matches reports whether guessing Cause against candidate would reproduce
// Feedback exactly. It replays the second scoring pass instead of recomputing
// the full feedback:
//   - Correct positions must hold the cause letter; every other position must not.
//   - Scanning left to right over non-correct positions, a Present mark needs a
//     remaining candidate letter (and consumes it), an Absent mark needs none.
func (in Instance) Matches(candidate string) bool {
	n := len(in.Cause)
	if len(candidate) != n || in.Feedback.Len() != n {
		return false
	}
	var counts [256]uint8
	code := in.Feedback.code
	var marks [MaxLength]Mark
	for i := 0; i < n; i++ {
		marks[i] = Mark(code % 3)
		code /= 3
		hit := candidate[i] == in.Cause[i]
		if hit != (marks[i] == Correct) {
			return false
		}
		if !hit {
			counts[candidate[i]]++
		}
	}
	for i := 0; i < n; i++ {
		c := in.Cause[i]
		switch marks[i] {
		case Present:
			if counts[c] == 0 {
				return false
			}
			counts[c]--
		case Absent:
			if counts[c] != 0 {
				return false
			}
		}
	}
	return true
}

// String renders the cause with correct letters upper-cased and present
// letters lower-cased, followed by the letters known not to be present.
func (in Instance) String() string {
	marks := in.Feedback.Marks()
	base := make([]byte, len(marks))
	removed := map[byte]bool{}
	for i := 0; i < len(in.Cause) && i < len(marks); i++ {
		removed[in.Cause[i]] = true
	}
	for i, m := range marks {
		if i >= len(in.Cause) {
			break
		}
		ch := in.Cause[i]
		switch m {
		case Correct:
			base[i] = strings.ToUpper(string(ch))[0]
			delete(removed, ch)
		case Present:
			base[i] = strings.ToLower(string(ch))[0]
			delete(removed, ch)
		default:
			base[i] = glyphs[Absent]
		}
	}
	out := "| " + string(base) + " |"
	if len(removed) > 0 {
		letters := make([]string, 0, len(removed))
		for ch := range removed {
			letters = append(letters, string(ch))
		}
		sort.Strings(letters)
		out += " Not present: " + strings.Join(letters, ",")
	}
	return out
}
