package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/guess"
	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/rank"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/strategy"
)

// sorterByName maps the --sort flag to a ranking.
func sorterByName(name string) (rank.Sorter, error) {
	switch name {
	case "", "splits":
		return rank.MostSplits(false), nil
	case "worst":
		return rank.WorstCaseScenario(false), nil
	case "chance":
		return rank.MostChanceToSolve, nil
	case "solutions":
		return rank.MostSplits(true), nil
	}
	if p, ok := strings.CutPrefix(name, "p"); ok {
		n, err := strconv.Atoi(p)
		if err == nil && n >= 0 && n <= 100 {
			return rank.Percentile(n, false), nil
		}
	}
	return nil, fmt.Errorf("unknown sort %q (want splits, worst, chance, solutions or pNN)", name)
}

// guesses replays the turns and scores every allowed word. It returns nil
// guesses when no candidate is left.
func guesses(cmd *cobra.Command, d *deps, turns []string) (*solver.Computer, []*guess.Guess, error) {
	c, err := d.replay(turns)
	if err != nil {
		return nil, nil, err
	}
	remaining := c.Model().Answers()
	printRemaining(cmd.OutOrStdout(), remaining)
	if len(remaining) == 0 {
		return c, nil, nil
	}
	sp, err := c.SolutionSpace(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	gs, err := guess.Space(sp)
	return c, gs, err
}

func printRemaining(w io.Writer, remaining []string) {
	shown := remaining[:min(10, len(remaining))]
	more := ""
	if len(remaining) > len(shown) {
		more = " ..."
	}
	fmt.Fprintf(w, "%d remaining: %s%s\n", len(remaining), strings.Join(shown, " "), more)
}

func runRank(cmd *cobra.Command, args []string) error {
	sorter, err := sorterByName(rankSort)
	if err != nil {
		return err
	}
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	c, gs, err := guesses(cmd, d, args)
	if err != nil || gs == nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, g := range rank.Coalesce(rank.Sort(gs, sorter), false, rankCutoff) {
		fmt.Fprintln(out, g)
	}

	strat, err := strategy.ByName(cfg.Strategy)
	if err != nil {
		return err
	}
	sp, err := c.SolutionSpace(cmd.Context())
	if err != nil {
		return err
	}
	pick, err := strat.Choose(sp)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Suggested (%s): %s\n", strat.Name(), strings.ToUpper(pick))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	_, gs, err := guesses(cmd, d, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if gs != nil {
		for _, sec := range rank.Report(gs, rankCutoff) {
			fmt.Fprintf(out, "\n%s:\n", sec.Title)
			for _, g := range sec.Guesses {
				fmt.Fprintln(out, " ", g)
			}
		}
	}

	if !statsLeaderboard || cfg.HistoryDB == "" {
		return nil
	}
	hist, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer hist.Close()
	rows, err := hist.Leaderboard(cmd.Context(), 0)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%-10s %6s %9s %8s %10s\n", "strategy", "runs", "avg turns", "win rate", "avg ms")
	for _, r := range rows {
		fmt.Fprintf(out, "%-10s %6d %9.2f %7.1f%% %10.1f\n", r.Strategy, r.Runs, r.AvgTurns, 100*r.WinRate, r.AvgElapsedMs)
	}
	return nil
}
