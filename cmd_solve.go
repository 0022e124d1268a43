package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/advisor"
	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/strategy"
)

func runSolve(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	name := solveStrategy
	if name == "" {
		name = cfg.Strategy
	}
	strat, err := strategy.ByName(name)
	if err != nil {
		return err
	}
	openers := make([]string, len(solveOpeners))
	for i, o := range solveOpeners {
		openers[i] = strings.ToLower(strings.TrimSpace(o))
		if err := d.base.Acceptable(openers[i]); err != nil {
			return fmt.Errorf("opener: %w", err)
		}
	}

	boards := solveBoards
	if len(args) > 0 {
		boards = len(args)
	}
	if boards <= 0 {
		return fmt.Errorf("boards must be positive, got %d", boards)
	}
	games := max(solveGames, 1)
	if solveMode != "auto" {
		games = 1
	}

	var hist *history.Store
	if !solveNoRecord && cfg.HistoryDB != "" && (solveMode == "auto" || solveMode == "play") {
		if hist, err = history.Open(cfg.HistoryDB); err != nil {
			log.Warn().Err(err).Msg("history unavailable; runs will not be recorded")
			hist = nil
		} else {
			defer hist.Close()
		}
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prompt := game.NewPrompter(cmd.InOrStdin(), out)
	won, turns := 0, 0
	for i := 0; i < games; i++ {
		secrets, err := pickSecrets(d, args, boards)
		if err != nil {
			return err
		}

		var (
			player    game.Player
			evaluator game.Evaluator
			label     = strat.Name()
		)
		switch solveMode {
		case "auto":
			player = game.NewSpaceSearch(d.computer(), strat, openers...)
			evaluator = game.NewKnownAnswers(secrets...)
		case "evaluate":
			player = game.NewSpaceSearch(d.computer(), strat, openers...)
			evaluator = game.NewInputEvaluator(prompt, boards)
		case "play", "assist":
			tracker, err := advisor.NewTracker(d.base, boards, !solveAdviseFirst)
			if err != nil {
				return err
			}
			player = game.NewHumanPlayer(prompt, d.base, tracker)
			evaluator = game.NewKnownAnswers(secrets...)
			if solveMode == "assist" {
				evaluator = game.NewInputEvaluator(prompt, boards)
			}
			label = "human"
		default:
			return fmt.Errorf("unknown mode %q (want auto, evaluate, play or assist)", solveMode)
		}

		g, err := game.Play(ctx, player, evaluator, boards, out)
		if err != nil {
			return err
		}
		if g.Won {
			won++
		}
		turns += g.Turns()
		if hist != nil {
			if _, err := hist.Insert(ctx, history.FromGame(g, label, secrets)); err != nil {
				log.Warn().Err(err).Str("game", g.ID).Msg("record run")
			}
		}
	}

	if games > 1 {
		fmt.Fprintf(out, "%d/%d won, %.2f turns on average\n", won, games, float64(turns)/float64(games))
	}
	return nil
}

// pickSecrets returns the given secrets, today's, or a random sample.
func pickSecrets(d *deps, args []string, boards int) ([]string, error) {
	if len(args) > 0 {
		out := make([]string, len(args))
		seen := make(map[string]bool, len(args))
		for i, a := range args {
			out[i] = strings.ToLower(a)
			if !d.dict.IsAnswer(out[i]) {
				return nil, fmt.Errorf("%q is not a possible answer", a)
			}
			if seen[out[i]] {
				return nil, fmt.Errorf("secret %q given twice", a)
			}
			seen[out[i]] = true
		}
		return out, nil
	}
	if solveDaily {
		secrets := daily.Secrets(time.Now(), cfg.DailySalt, d.dict.Answers(), boards)
		if len(secrets) < boards {
			return nil, fmt.Errorf("only %d answers for %d boards", len(secrets), boards)
		}
		return secrets, nil
	}
	return d.dict.Sample(boards)
}
