// internal/engine/engine.go
//
// Game-state engine for the solver.
// Responsibilities:
//   - Hold the candidate secrets and the allowed guesses (plus hard-mode flag).
//   - Validate guesses against the allowed vocabulary.
//   - Narrow both sets as feedback is accepted.
//
// Two variants share one pruning contract:
//   - Engine:        Pruned returns a fresh snapshot; safe to share.
//   - MutableEngine: Prune replaces its own sets; exclusive ownership.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/space"
)

var (
	ErrEmptyCandidateSet = errors.New("no candidate is consistent with the feedback")
	ErrUnknownWord       = errors.New("not in word list")
)

// Model is the read side shared by both variants plus the pruning step.
// Advance returns the narrowed model: a new value for Engine, the receiver
// itself for MutableEngine.
type Model interface {
	Answers() []string
	Allowed() []string
	HardMode() bool
	Length() int
	IsAnswer(word string) bool
	Acceptable(word string) error
	Grouping(word string) (space.Grouping, error)
	Key() string
	Advance(instances ...feedback.Instance) (Model, error)
}

// state is the data both variants own.
type state struct {
	answers    []string // sorted, unique
	allowed    []string // sorted, unique
	answerSet  map[string]struct{}
	allowedSet map[string]struct{}
	hardMode   bool
	length     int
}

func newState(answers, allowed []string, hardMode bool) (state, error) {
	if len(answers) == 0 {
		return state{}, ErrEmptyCandidateSet
	}
	length := len(answers[0])
	for _, list := range [][]string{answers, allowed} {
		for _, w := range list {
			if len(w) != length {
				return state{}, fmt.Errorf("%w: %q is not %d letters", feedback.ErrInvalidWordLength, w, length)
			}
		}
	}
	s := state{hardMode: hardMode, length: length}
	s.setAnswers(sortedUnique(answers))
	// answers are always valid guesses
	s.setAllowed(sortedUnique(append(append([]string(nil), allowed...), answers...)))
	return s, nil
}

func (s *state) setAnswers(a []string) {
	s.answers = a
	s.answerSet = toSet(a)
}

func (s *state) setAllowed(a []string) {
	s.allowed = a
	s.allowedSet = toSet(a)
}

// Answers returns the remaining candidate secrets, sorted.
func (s *state) Answers() []string { return append([]string(nil), s.answers...) }

// Allowed returns the allowed guesses, sorted.
func (s *state) Allowed() []string { return append([]string(nil), s.allowed...) }

func (s *state) HardMode() bool { return s.hardMode }

func (s *state) Length() int { return s.length }

// IsAnswer reports whether w is still a candidate secret.
func (s *state) IsAnswer(w string) bool {
	_, ok := s.answerSet[w]
	return ok
}

// Acceptable returns ErrUnknownWord if w may not be guessed now.
func (s *state) Acceptable(w string) error {
	if len(w) != s.length {
		return fmt.Errorf("%w: %q is not %d letters", feedback.ErrInvalidWordLength, w, s.length)
	}
	if _, ok := s.allowedSet[w]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWord, w)
	}
	return nil
}

// Grouping partitions the current candidates by the feedback word would produce.
func (s *state) Grouping(w string) (space.Grouping, error) {
	return space.Group(w, s.answers)
}

// Key is the content address of (allowed, candidates).
func (s *state) Key() string {
	return space.Key(s.allowed, s.answers)
}

// next computes the narrowed sets without touching s.
func (s *state) next(instances []feedback.Instance) (answers, allowed []string, err error) {
	for _, in := range instances {
		if err := s.Acceptable(in.Cause); err != nil {
			return nil, nil, err
		}
	}
	answers, err = Prune(s.answers, instances)
	if err != nil {
		return nil, nil, err
	}
	allowed = s.allowed
	if s.hardMode {
		allowed = PruneAllowed(s.allowed, instances)
	}
	log.Debug().
		Int("answers_before", len(s.answers)).
		Int("answers_after", len(answers)).
		Int("allowed_after", len(allowed)).
		Msg("pruned engine")
	return answers, allowed, nil
}

// Prune returns the candidates consistent with the observed feedback.
//
// Each instance contributes the bucket of its cause's grouping that matches
// its feedback; the result is the union of those buckets. An instance whose
// bucket is exactly {cause} marks that secret as solved, and solved secrets
// are removed from the union even if another instance also contributed them.
//
// If every bucket is empty the feedback is contradictory and
// ErrEmptyCandidateSet is returned. An empty result caused only by removing
// solved secrets is not an error.
func Prune(candidates []string, instances []feedback.Instance) ([]string, error) {
	union := map[string]struct{}{}
	solved := map[string]struct{}{}
	for _, in := range instances {
		grouping, err := space.Group(in.Cause, candidates)
		if err != nil {
			return nil, err
		}
		bucket := grouping[in.Feedback]
		if len(bucket) == 1 && bucket[0] == in.Cause {
			solved[in.Cause] = struct{}{}
		}
		for _, w := range bucket {
			union[w] = struct{}{}
		}
	}
	if len(union) == 0 {
		return nil, ErrEmptyCandidateSet
	}
	out := make([]string, 0, len(union))
	for _, w := range candidates {
		if _, ok := union[w]; !ok {
			continue
		}
		if _, ok := solved[w]; ok {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// PruneAllowed keeps exactly the guesses consistent with every instance.
func PruneAllowed(allowed []string, instances []feedback.Instance) []string {
	out := make([]string, 0, len(allowed))
next:
	for _, w := range allowed {
		for _, in := range instances {
			if !in.Matches(w) {
				continue next
			}
		}
		out = append(out, w)
	}
	return out
}

// Engine is the copy-on-prune variant.
type Engine struct{ state }

// New builds an engine from the answer list and the guess dictionary.
// Answers are added to the allowed guesses.
func New(answers, allowed []string, hardMode bool) (*Engine, error) {
	s, err := newState(answers, allowed, hardMode)
	if err != nil {
		return nil, err
	}
	return &Engine{s}, nil
}

// Pruned returns a new engine narrowed by the instances; e is unchanged.
func (e *Engine) Pruned(instances ...feedback.Instance) (*Engine, error) {
	answers, allowed, err := e.next(instances)
	if err != nil {
		return nil, err
	}
	out := &Engine{state{hardMode: e.hardMode, length: e.length}}
	out.setAnswers(answers)
	if e.hardMode {
		out.setAllowed(allowed)
	} else {
		out.allowed, out.allowedSet = e.allowed, e.allowedSet
	}
	return out, nil
}

func (e *Engine) Advance(instances ...feedback.Instance) (Model, error) {
	return e.Pruned(instances...)
}

// Mutable returns an independent in-place engine with the same state.
func (e *Engine) Mutable() *MutableEngine {
	m := &MutableEngine{state{hardMode: e.hardMode, length: e.length}}
	m.setAnswers(append([]string(nil), e.answers...))
	m.setAllowed(append([]string(nil), e.allowed...))
	return m
}

// MutableEngine is the in-place variant.
type MutableEngine struct{ state }

// NewMutable is New for the in-place variant.
func NewMutable(answers, allowed []string, hardMode bool) (*MutableEngine, error) {
	s, err := newState(answers, allowed, hardMode)
	if err != nil {
		return nil, err
	}
	return &MutableEngine{s}, nil
}

// Prune narrows m in place. On error m is unchanged.
func (m *MutableEngine) Prune(instances ...feedback.Instance) error {
	answers, allowed, err := m.next(instances)
	if err != nil {
		return err
	}
	m.setAnswers(answers)
	if m.hardMode {
		m.setAllowed(allowed)
	}
	return nil
}

func (m *MutableEngine) Advance(instances ...feedback.Instance) (Model, error) {
	if err := m.Prune(instances...); err != nil {
		return nil, err
	}
	return m, nil
}

// Snapshot returns an immutable copy of the current state.
func (m *MutableEngine) Snapshot() *Engine {
	e := &Engine{state{hardMode: m.hardMode, length: m.length}}
	e.setAnswers(append([]string(nil), m.answers...))
	e.setAllowed(append([]string(nil), m.allowed...))
	return e
}

func sortedUnique(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	j := 0
	for i, w := range out {
		if i > 0 && w == out[j-1] {
			continue
		}
		out[j] = w
		j++
	}
	return out[:j]
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}
