// internal/space/space.go
//
// Partitioning of a candidate set by feedback.
// Responsibilities:
//   - Group: bucket candidates by the feedback one guess produces against each.
//   - Compute: apply Group to every allowed guess (the solution space).
//   - Key: deterministic, order-independent identity of (allowed, candidates)
//     that an external cache can key on.
//
// Notes:
//   - Buckets keep the candidates' input order, so callers that pass sorted
//     candidates get sorted buckets.
//   - A Space is only valid for the candidate set it was computed against.
package space

import (
	"context"
	"encoding/hex"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// Grouping maps feedback to the candidates that would produce it.
type Grouping map[feedback.Feedback][]string

// Space maps each guess to its grouping against one fixed candidate set.
type Space map[string]Grouping

// Group evaluates feedback for every candidate and buckets the result.
func Group(guess string, candidates []string) (Grouping, error) {
	g := make(Grouping)
	for _, c := range candidates {
		f, err := feedback.Compute(c, guess)
		if err != nil {
			return nil, err
		}
		g[f] = append(g[f], c)
	}
	return g, nil
}

// Size returns the number of candidates across all buckets.
func (g Grouping) Size() int {
	n := 0
	for _, b := range g {
		n += len(b)
	}
	return n
}

// Buckets returns the bucket contents ordered by their first member.
func (g Grouping) Buckets() [][]string {
	out := make([][]string, 0, len(g))
	for _, b := range g {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Members returns the union of all buckets, sorted.
func (g Grouping) Members() []string {
	out := make([]string, 0, g.Size())
	for _, b := range g {
		out = append(out, b...)
	}
	sort.Strings(out)
	return out
}

// Options tune Compute.
type Options struct {
	// Workers caps the number of goroutines; <= 0 means runtime.NumCPU().
	Workers int
	// Progress, if set, is called once per finished guess.
	Progress func(done, total int)
}

// Compute applies Group to every allowed guess.
// Guesses are independent, so each is grouped in its own goroutine slot and
// the results are merged after all workers finish.
func Compute(ctx context.Context, allowed, candidates []string, opts Options) (Space, error) {
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Grouping, len(allowed))
	done := make(chan struct{}, len(allowed))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		n := 0
		for range done {
			n++
			if opts.Progress != nil {
				opts.Progress(n, len(allowed))
			}
		}
	}()

	for i, word := range allowed {
		i, word := i, word
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grouping, err := Group(word, candidates)
			if err != nil {
				return fmt.Errorf("group %q: %w", word, err)
			}
			results[i] = grouping
			done <- struct{}{}
			return nil
		})
	}
	err := g.Wait()
	close(done)
	<-progressDone
	if err != nil {
		computeErrors.Inc()
		return nil, err
	}

	out := make(Space, len(allowed))
	for i, word := range allowed {
		out[word] = results[i]
	}
	elapsed := time.Since(start)
	computeTotal.Inc()
	computeDuration.Observe(elapsed.Seconds())
	log.Debug().
		Int("allowed", len(allowed)).
		Int("candidates", len(candidates)).
		Dur("elapsed", elapsed).
		Msg("computed solution space")
	return out, nil
}

// Candidates returns the union of every bucket in the space, sorted.
// All groupings share one candidate set, so any single guess suffices.
func (s Space) Candidates() []string {
	for _, g := range s {
		return g.Members()
	}
	return nil
}

// Words returns the guesses of the space, sorted.
func (s Space) Words() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Key returns a content address for (allowed, candidates). Input order and
// duplicates do not affect the result.
func Key(allowed, candidates []string) string {
	h, _ := blake2b.New256(nil)
	for _, list := range [][]string{allowed, candidates} {
		for _, w := range sortedUnique(list) {
			h.Write([]byte(w))
			h.Write([]byte{'\n'})
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
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
