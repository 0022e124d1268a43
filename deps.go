package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle-solver/internal/cache"
	"github.com/robalobadob/wordle-solver/internal/engine"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/space"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// deps is what most commands need: the word lists, the base engine and
// the space cache.
type deps struct {
	dict  *words.Dictionary
	base  *engine.Engine
	cache cache.Cache
}

func loadDeps() (*deps, error) {
	dict, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	base, err := engine.New(dict.Answers(), dict.Allowed(), cfg.HardMode)
	if err != nil {
		return nil, err
	}
	c, err := cache.Open(cfg.CacheBackend, cfg.CachePath)
	if err != nil {
		// a broken cache only costs recomputation
		log.Warn().Err(err).Str("backend", cfg.CacheBackend).Msg("cache unavailable; continuing without")
		c = cache.Nop{}
	}
	a, g := dict.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Bool("hard", cfg.HardMode).Msg("word lists loaded")
	return &deps{dict: dict, base: base, cache: c}, nil
}

func (d *deps) Close() {
	if err := d.cache.Close(); err != nil {
		log.Warn().Err(err).Msg("close cache")
	}
}

// computer returns a fresh solver over the base engine.
func (d *deps) computer() *solver.Computer {
	return solver.New(d.base, d.cache, spaceOptions())
}

// replay builds a computer narrowed by "guess=feedback" turns.
func (d *deps) replay(turns []string) (*solver.Computer, error) {
	c := d.computer()
	for _, t := range turns {
		in, err := parseTurn(t)
		if err != nil {
			return nil, err
		}
		if err := c.Update(in); err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
	}
	return c, nil
}

// parseTurn reads "guess=feedback" (also "guess:feedback"); feedback is
// "_?X" glyphs or "012" digits.
func parseTurn(s string) (feedback.Instance, error) {
	guess, fb, ok := strings.Cut(s, "=")
	if !ok {
		guess, fb, ok = strings.Cut(s, ":")
	}
	if !ok {
		return feedback.Instance{}, fmt.Errorf("turn %q: want guess=feedback", s)
	}
	f, err := feedback.Parse(fb)
	if err != nil {
		return feedback.Instance{}, err
	}
	return feedback.NewInstance(f, strings.ToLower(strings.TrimSpace(guess)))
}

func spaceOptions() space.Options {
	opts := space.Options{Workers: cfg.Workers}
	if !noProgress {
		opts.Progress = progress()
	}
	return opts
}

// progress draws one bar per space computation.
func progress() func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil || done == 1 {
			bar = progressbar.Default(int64(total), "grouping guesses")
		}
		_ = bar.Set(done)
	}
}
