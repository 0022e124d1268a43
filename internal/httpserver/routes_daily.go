// internal/httpserver/routes_daily.go
//
// History and "daily puzzle" routes.
//   - GET /leaderboard        → strategies ranked by average turns
//   - GET /runs               → most recent solve runs
//   - GET /runs/{id}          → one run
//   - GET /daily              → today's date key and board count (secrets stay hidden)
//   - POST /daily/solve       → let a strategy solve today's puzzle and record it
//
// Deterministic secret selection is based on date + salt, so every server
// sharing a word list and salt agrees on the day's puzzle.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/history"
)

// mountHistory registers the run history routes.
func (s *Server) mountHistory(r chi.Router) {
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/runs", s.handleRecent)
	r.Get("/runs/{id}", s.handleRun)
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/solve", s.handleDailySolve)
	})
}

// withHistory answers 503 when no store is configured.
func (s *Server) withHistory(w http.ResponseWriter) (*history.Store, bool) {
	if s.opts.History == nil {
		writeError(w, http.StatusServiceUnavailable, "history_disabled")
		return nil, false
	}
	return s.opts.History, true
}

// limitParam reads ?limit=N, defaulting to 20 and capping at 100.
func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return 20
	}
	return min(n, 100)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	h, ok := s.withHistory(w)
	if !ok {
		return
	}
	rows, err := h.Leaderboard(r.Context(), limitParam(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	h, ok := s.withHistory(w)
	if !ok {
		return
	}
	runs, err := h.Recent(r.Context(), limitParam(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	h, ok := s.withHistory(w)
	if !ok {
		return
	}
	run, err := h.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// boardsParam reads ?boards=N (1..16), defaulting to 1.
func boardsParam(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("boards")
	if v == "" {
		return 1, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 16 {
		return 0, false
	}
	return n, true
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	boards, ok := boardsParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "boards must be 1..16")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   daily.DateKey(time.Now()),
		"boards": boards,
		"length": s.opts.Dict.Length(),
	})
}

// handleDailySolve solves today's puzzle with ?strategy= (or the default).
func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	boards, ok := boardsParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "boards must be 1..16")
		return
	}
	secrets := daily.Secrets(time.Now(), s.opts.DailySalt, s.opts.Dict.Answers(), boards)
	res, err := s.solve(r.Context(), secrets, r.URL.Query().Get("strategy"), nil)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": daily.DateKey(time.Now()), "result": res})
}
