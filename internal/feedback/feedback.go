// internal/feedback/feedback.go
//
// Feedback computation and encoding.
// Responsibilities:
//   - Mark: per-letter result of a guess (absent/present/correct).
//   - Feedback: immutable sequence of marks, stored as its base-3 code.
//   - Compute: the classic two-pass scoring algorithm.
//   - Encode/Decode/Parse: integer and text forms.
//
// Notes:
//   - Feedback is comparable and usable as a map key; two values are equal
//     iff they have the same length and the same marks.
//   - Code() is the stable hash: mark[0] + mark[1]*3 + ... + mark[L-1]*3^(L-1).
package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLength bounds word length so that 3^L fits in a uint32.
const MaxLength = 20

var (
	ErrInvalidWordLength = errors.New("invalid word length")
	ErrInvalidFeedback   = errors.New("invalid feedback")
)

// Mark represents the evaluation result for a single letter in a guess.
type Mark uint8

const (
	Absent  Mark = iota // letter does not occur in the (remaining) secret
	Present             // letter occurs elsewhere
	Correct             // letter is in the right position
)

// glyphs renders marks as "_?X".
const glyphs = "_?X"

func (m Mark) String() string {
	if m > Correct {
		return "!"
	}
	return glyphs[m : m+1]
}

// Feedback is the outcome of comparing one guess to one secret.
type Feedback struct {
	code   uint32
	length uint8
}

// Encode builds a Feedback from marks.
func Encode(marks ...Mark) (Feedback, error) {
	if len(marks) == 0 || len(marks) > MaxLength {
		return Feedback{}, fmt.Errorf("%w: %d", ErrInvalidWordLength, len(marks))
	}
	var code uint32
	for i := len(marks) - 1; i >= 0; i-- {
		if marks[i] > Correct {
			return Feedback{}, fmt.Errorf("%w: mark %d at %d", ErrInvalidFeedback, marks[i], i)
		}
		code = code*3 + uint32(marks[i])
	}
	return Feedback{code: code, length: uint8(len(marks))}, nil
}

// Decode is the inverse of Code for a given word length.
func Decode(code uint32, length int) (Feedback, error) {
	if length <= 0 || length > MaxLength {
		return Feedback{}, fmt.Errorf("%w: %d", ErrInvalidWordLength, length)
	}
	if code >= pow3(length) {
		return Feedback{}, fmt.Errorf("%w: code %d out of range for length %d", ErrInvalidFeedback, code, length)
	}
	return Feedback{code: code, length: uint8(length)}, nil
}

// AllCorrect returns the feedback of a solved guess.
func AllCorrect(length int) Feedback {
	return Feedback{code: pow3(length) - 1, length: uint8(length)}
}

// Code returns the base-3 integer encoding.
func (f Feedback) Code() uint32 { return f.code }

// Len returns the word length the feedback was produced for.
func (f Feedback) Len() int { return int(f.length) }

// At returns the mark at position i.
func (f Feedback) At(i int) Mark {
	c := f.code
	for ; i > 0; i-- {
		c /= 3
	}
	return Mark(c % 3)
}

// Marks expands the feedback into its per-position marks.
func (f Feedback) Marks() []Mark {
	out := make([]Mark, f.length)
	c := f.code
	for i := range out {
		out[i] = Mark(c % 3)
		c /= 3
	}
	return out
}

// Solved reports whether every position is Correct.
func (f Feedback) Solved() bool {
	return f.length > 0 && f.code == pow3(int(f.length))-1
}

func (f Feedback) String() string {
	var b strings.Builder
	for _, m := range f.Marks() {
		b.WriteString(m.String())
	}
	return b.String()
}

// Parse reads feedback in either glyph form ("_?X") or digit form ("012").
func Parse(s string) (Feedback, error) {
	s = strings.TrimSpace(s)
	marks := make([]Mark, 0, len(s))
	for _, r := range s {
		switch r {
		case '_', '0', '.':
			marks = append(marks, Absent)
		case '?', '1':
			marks = append(marks, Present)
		case 'X', 'x', '2':
			marks = append(marks, Correct)
		default:
			return Feedback{}, fmt.Errorf("%w: %q", ErrInvalidFeedback, s)
		}
	}
	return Encode(marks...)
}

// Compute implements the two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) secret letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// A letter repeated in the guess more often than in the secret is never
// marked more times than it occurs in the secret.
func Compute(secret, guess string) (Feedback, error) {
	n := len(guess)
	if len(secret) != n {
		return Feedback{}, fmt.Errorf("%w: secret %q vs guess %q", ErrInvalidWordLength, secret, guess)
	}
	if n == 0 || n > MaxLength {
		return Feedback{}, fmt.Errorf("%w: %d", ErrInvalidWordLength, n)
	}
	return compute(secret, guess), nil
}

// compute assumes equal, valid lengths.
func compute(secret, guess string) Feedback {
	n := len(guess)
	var marks [MaxLength]Mark
	var counts [256]uint8

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			marks[i] = Correct
		} else {
			counts[secret[i]]++
		}
	}
	for i := 0; i < n; i++ {
		if marks[i] == Correct {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			marks[i] = Present
			counts[c]--
		}
	}

	var code uint32
	for i := n - 1; i >= 0; i-- {
		code = code*3 + uint32(marks[i])
	}
	return Feedback{code: code, length: uint8(n)}
}

// MustCompute is Compute for callers that already validated lengths.
func MustCompute(secret, guess string) Feedback {
	f, err := Compute(secret, guess)
	if err != nil {
		panic(err)
	}
	return f
}

func pow3(n int) uint32 {
	p := uint32(1)
	for i := 0; i < n; i++ {
		p *= 3
	}
	return p
}
