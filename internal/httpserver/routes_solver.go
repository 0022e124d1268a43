// internal/httpserver/routes_solver.go
//
// Solver endpoints.
//   - POST /feedback → score a guess against a secret
//   - POST /rank     → ranked guesses for one board after some turns
//   - POST /advise   → combined tips for several boards after some turns
//   - POST /solve    → let a strategy play against known (or random) secrets
//   - POST /admin/warm (JWT) → compute and cache the opening space
//
// Turns are given as {guess, feedback}; feedback accepts "_?X" glyphs or "012" digits.

package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/advisor"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/guess"
	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/rank"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/strategy"
)

// ------------------------------ payloads -----------------------------------

type turnReq struct {
	Guess    string `json:"guess" validate:"required,alpha"`
	Feedback string `json:"feedback" validate:"required"`
}

func (t turnReq) instance() (feedback.Instance, error) {
	f, err := feedback.Parse(t.Feedback)
	if err != nil {
		return feedback.Instance{}, err
	}
	return feedback.NewInstance(f, strings.ToLower(t.Guess))
}

type feedbackReq struct {
	Secret string `json:"secret" validate:"required,alpha"`
	Guess  string `json:"guess" validate:"required,alpha"`
}

type feedbackRes struct {
	Feedback string `json:"feedback"` // "_?X" form
	Code     uint32 `json:"code"`
	Solved   bool   `json:"solved"`
	Text     string `json:"text"`
}

type rankReq struct {
	History []turnReq `json:"history" validate:"omitempty,dive"`
	Cutoff  int       `json:"cutoff" validate:"omitempty,min=1,max=100"`
}

type rankRes struct {
	Candidates int           `json:"candidates"`
	Remaining  []string      `json:"remaining"`
	Sections   []sectionView `json:"sections"`
}

type adviseTurn struct {
	Guess    string   `json:"guess" validate:"required,alpha"`
	Feedback []string `json:"feedback" validate:"required,min=1,dive,required"`
}

type adviseReq struct {
	Boards int          `json:"boards" validate:"required,min=1,max=16"`
	Turns  []adviseTurn `json:"turns" validate:"omitempty,dive"`
	Cutoff int          `json:"cutoff" validate:"omitempty,min=1,max=100"`
}

type adviseRes struct {
	Open int           `json:"open"`
	Tips []sectionView `json:"tips"`
}

type solveReq struct {
	Secrets  []string `json:"secrets" validate:"omitempty,max=16,unique,dive,alpha"`
	Boards   int      `json:"boards" validate:"omitempty,min=1,max=16"`
	Strategy string   `json:"strategy" validate:"omitempty,oneof=ranked minmax greedy heuristic"`
	Openers  []string `json:"openers" validate:"omitempty,max=6,dive,alpha"`
}

type solveRes struct {
	Game       *game.Game `json:"game"`
	State      string     `json:"state"`
	Strategy   string     `json:"strategy"`
	Secrets    []string   `json:"secrets"`
	Transcript []string   `json:"transcript"`
	RunID      string     `json:"runId,omitempty"`
}

// guessView is the wire form of guess.Stats.
type guessView struct {
	Word        string  `json:"word"`
	Splits      int     `json:"splits"`
	Largest     int     `json:"largest"`
	Mean        float64 `json:"mean"`
	Eligible    bool    `json:"eligible"`
	Solving     float64 `json:"solvingPct"`
	NextSolving float64 `json:"nextSolvingPct"`
	Solution    bool    `json:"solution"`
}

type sectionView struct {
	Title   string      `json:"title"`
	Guesses []guessView `json:"guesses"`
}

func viewOf(g guess.Stats) guessView {
	return guessView{
		Word:        g.Word(),
		Splits:      g.NSplits(),
		Largest:     g.LargestSplit(),
		Mean:        g.MeanSplitSize(),
		Eligible:    g.IsEligible(),
		Solving:     g.CurrentSolvingPercentage(),
		NextSolving: g.NextSolvingPercentage(),
		Solution:    g.IsTheSolution(),
	}
}

func viewsOf[S guess.Stats](title string, gs []S) sectionView {
	v := sectionView{Title: title, Guesses: make([]guessView, 0, len(gs))}
	for _, g := range gs {
		v.Guesses = append(v.Guesses, viewOf(g))
	}
	return v
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if !s.decode(w, r, &req) {
		return
	}
	in, err := feedback.For(strings.ToLower(req.Secret), strings.ToLower(req.Guess))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedbackRes{
		Feedback: in.Feedback.String(),
		Code:     in.Feedback.Code(),
		Solved:   in.Feedback.Solved(),
		Text:     in.String(),
	})
}

// replay builds a computer over the base engine narrowed by history.
func (s *Server) replay(history []turnReq) (*solver.Computer, error) {
	c := solver.New(s.base, s.opts.Cache, s.spaceOptions())
	for i, t := range history {
		in, err := t.instance()
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i+1, err)
		}
		if err := c.Update(in); err != nil {
			return nil, fmt.Errorf("turn %d: %w", i+1, err)
		}
	}
	return c, nil
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankReq
	if !s.decode(w, r, &req) {
		return
	}
	if req.Cutoff == 0 {
		req.Cutoff = advisor.DefaultCutoff
	}
	c, err := s.replay(req.History)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res := rankRes{Remaining: c.Model().Answers(), Sections: []sectionView{}}
	res.Candidates = len(res.Remaining)
	if res.Candidates == 0 {
		writeJSON(w, http.StatusOK, res)
		return
	}
	if len(res.Remaining) > 20 {
		res.Remaining = res.Remaining[:20]
	}

	sp, err := c.SolutionSpace(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	gs, err := guess.Space(sp)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for _, sec := range rank.Report(gs, req.Cutoff) {
		res.Sections = append(res.Sections, viewsOf(sec.Title, sec.Guesses))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAdvise(w http.ResponseWriter, r *http.Request) {
	var req adviseReq
	if !s.decode(w, r, &req) {
		return
	}
	t, err := advisor.NewTracker(s.base, req.Boards, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for i, turn := range req.Turns {
		if open := t.Boards(); len(turn.Feedback) != open {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("turn %d: %d feedbacks for %d open boards", i+1, len(turn.Feedback), open))
			return
		}
		instances := make([]feedback.Instance, len(turn.Feedback))
		for j, fb := range turn.Feedback {
			in, err := turnReq{Guess: turn.Guess, Feedback: fb}.instance()
			if err != nil {
				s.fail(w, r, fmt.Errorf("turn %d board %d: %w", i+1, j+1, err))
				return
			}
			instances[j] = in
		}
		if err := t.Commit(instances...); err != nil {
			s.fail(w, r, fmt.Errorf("turn %d: %w", i+1, err))
			return
		}
	}

	res := adviseRes{Open: t.Boards(), Tips: []sectionView{}}
	if res.Open == 0 {
		writeJSON(w, http.StatusOK, res)
		return
	}
	tips, err := t.Advise(r.Context(), req.Cutoff)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for _, tip := range tips {
		res.Tips = append(res.Tips, viewsOf(tip.Name, tip.Guesses))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if !s.decode(w, r, &req) {
		return
	}
	secrets := make([]string, len(req.Secrets))
	seen := make(map[string]bool, len(req.Secrets))
	for i, sec := range req.Secrets {
		secrets[i] = strings.ToLower(sec)
		if !s.opts.Dict.IsAnswer(secrets[i]) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown secret %q", sec))
			return
		}
		if seen[secrets[i]] {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("duplicate secret %q", sec))
			return
		}
		seen[secrets[i]] = true
	}
	if len(secrets) == 0 {
		n := max(req.Boards, 1)
		sampled, err := s.opts.Dict.Sample(n)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		secrets = sampled
	}
	res, err := s.solve(r.Context(), secrets, req.Strategy, req.Openers)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// solve plays one automated game and records it when history is enabled.
func (s *Server) solve(ctx context.Context, secrets []string, strategyName string, openers []string) (*solveRes, error) {
	if strategyName == "" {
		strategyName = s.opts.Strategy
	}
	strat, err := strategy.ByName(strategyName)
	if err != nil {
		return nil, err
	}
	lowered := make([]string, len(openers))
	for i, o := range openers {
		lowered[i] = strings.ToLower(o)
		if err := s.base.Acceptable(lowered[i]); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	player := game.NewSpaceSearch(solver.New(s.base, s.opts.Cache, s.spaceOptions()), strat, lowered...)
	g, err := game.Play(ctx, player, game.NewKnownAnswers(secrets...), len(secrets), &out)
	if err != nil {
		return nil, err
	}

	res := &solveRes{
		Game:       g,
		State:      g.State(),
		Strategy:   strat.Name(),
		Secrets:    secrets,
		Transcript: strings.Split(strings.TrimRight(out.String(), "\n"), "\n"),
	}
	if s.opts.History != nil {
		id, err := s.opts.History.Insert(ctx, history.FromGame(g, strat.Name(), secrets))
		if err != nil {
			log.Warn().Err(err).Str("game", g.ID).Msg("record run")
		} else {
			res.RunID = id
		}
	}
	return res, nil
}

// handleWarm computes the opening space so later requests hit the cache.
func (s *Server) handleWarm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sp, err := solver.New(s.base, s.opts.Cache, s.spaceOptions()).SolutionSpace(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	log.Info().Str("by", subject(r)).Int("words", len(sp)).Msg("opening space warmed")
	writeJSON(w, http.StatusOK, map[string]any{
		"key":        s.base.Key(),
		"words":      len(sp),
		"candidates": len(sp.Candidates()),
		"elapsedMs":  time.Since(start).Milliseconds(),
	})
}
