package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
)

// runFeedback prints the feedback of every guess against args[0].
func runFeedback(cmd *cobra.Command, args []string) error {
	secret := strings.ToLower(args[0])
	out := cmd.OutOrStdout()
	for _, g := range args[1:] {
		in, err := feedback.For(secret, strings.ToLower(g))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s  %s\n", in.Cause, in.Feedback, in)
	}
	return nil
}

// runWarm fills the cache with the opening space so later runs skip it.
func runWarm(cmd *cobra.Command, _ []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	start := time.Now()
	sp, err := d.computer().SolutionSpace(cmd.Context())
	if err != nil {
		return err
	}
	log.Info().Str("backend", cfg.CacheBackend).Int("words", len(sp)).Dur("elapsed", time.Since(start)).Msg("opening space cached")
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d words\n", d.base.Key(), len(sp))
	return nil
}

func runToken(cmd *cobra.Command, _ []string) error {
	tok, exp, err := httpserver.SignToken(cfg.JWTSecret, tokenSubject, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	log.Info().Str("subject", tokenSubject).Time("expires", exp).Msg("admin token issued")
	return nil
}
