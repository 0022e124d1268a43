package main

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/advisor"
	"github.com/robalobadob/wordle-solver/internal/config"
)

// --- Global Command Variables ---
var (
	cfg config.Config

	noProgress bool
	hardMode   bool
	workers    int

	solveBoards      int
	solveDaily       bool
	solveMode        string
	solveStrategy    string
	solveOpeners     []string
	solveGames       int
	solveNoRecord    bool
	solveAdviseFirst bool

	rankCutoff int
	rankSort   string

	statsLeaderboard bool

	tokenSubject string
	tokenTTL     time.Duration

	rootCmd = &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Solve, rank and serve Wordle guesses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			zerolog.SetGlobalLevel(cfg.Level())
			if cmd.Flags().Changed("hard") {
				cfg.HardMode = hardMode
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			return nil
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in cmd_serve.go
	}

	solveCmd = &cobra.Command{
		Use:   "solve [secret...]",
		Short: "Play a game: automated, with typed feedback, or as a human",
		Long: `Modes:
  auto      the strategy plays against known secrets (given, daily or random)
  evaluate  the strategy guesses and you type the feedback of a real game
  play      you guess against random secrets, with multi-board tips
  assist    you guess and type the feedback of a real game, with tips`,
		RunE: runSolve, // Defined in cmd_solve.go
	}

	rankCmd = &cobra.Command{
		Use:   "rank [guess=feedback...]",
		Short: "List the best guesses after the given turns",
		RunE:  runRank, // Defined in cmd_rank.go
	}

	statsCmd = &cobra.Command{
		Use:   "stats [guess=feedback...]",
		Short: "Full guess report after the given turns, optionally with the run leaderboard",
		RunE:  runStats, // Defined in cmd_rank.go
	}

	feedbackCmd = &cobra.Command{
		Use:   "feedback <secret> <guess>...",
		Short: "Score guesses against a secret",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runFeedback, // Defined in cmd_utils.go
	}

	warmCmd = &cobra.Command{
		Use:   "warm",
		Short: "Compute the opening solution space into the configured cache",
		Args:  cobra.NoArgs,
		RunE:  runWarm, // Defined in cmd_utils.go
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Print an admin token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runToken, // Defined in cmd_utils.go
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Do not draw progress bars")
	rootCmd.PersistentFlags().BoolVar(&hardMode, "hard", false, "Hard mode: only guesses consistent with all feedback (overrides HARD_MODE)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Goroutines for space computation, 0 = all CPUs (overrides WORKERS)")

	solveCmd.Flags().IntVarP(&solveBoards, "boards", "b", 1, "Number of simultaneous boards")
	solveCmd.Flags().BoolVar(&solveDaily, "daily", false, "Use today's secrets instead of random ones")
	solveCmd.Flags().StringVarP(&solveMode, "mode", "m", "auto", "auto, evaluate, play or assist")
	solveCmd.Flags().StringVarP(&solveStrategy, "strategy", "s", "", "ranked, minmax, greedy or heuristic (default from STRATEGY)")
	solveCmd.Flags().StringSliceVar(&solveOpeners, "openers", nil, "Fixed first guesses for the strategy")
	solveCmd.Flags().IntVarP(&solveGames, "games", "n", 1, "Number of automated games to play")
	solveCmd.Flags().BoolVar(&solveNoRecord, "no-record", false, "Do not store automated runs in the history database")
	solveCmd.Flags().BoolVar(&solveAdviseFirst, "advise-first", false, "Show tips before the first guess too")

	rankCmd.Flags().IntVarP(&rankCutoff, "cutoff", "c", advisor.DefaultCutoff, "How many guesses to list")
	rankCmd.Flags().StringVar(&rankSort, "sort", "splits", "splits, worst, chance, solutions or pNN (percentile)")
	statsCmd.Flags().IntVarP(&rankCutoff, "cutoff", "c", advisor.DefaultCutoff, "How many guesses to list per section")
	statsCmd.Flags().BoolVar(&statsLeaderboard, "leaderboard", false, "Also print the strategy leaderboard")

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")

	rootCmd.AddCommand(serveCmd, solveCmd, rankCmd, statsCmd, feedbackCmd, warmCmd, tokenCmd)
}
