package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
)

func runServe(cmd *cobra.Command, _ []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	var hist *history.Store
	if cfg.HistoryDB != "" {
		if hist, err = history.Open(cfg.HistoryDB); err != nil {
			return err
		}
		defer hist.Close()
	}

	srv, err := httpserver.New(httpserver.Options{
		Dict:      d.dict,
		Cache:     d.cache,
		History:   hist,
		HardMode:  cfg.HardMode,
		Workers:   cfg.Workers,
		Strategy:  cfg.Strategy,
		JWTSecret: cfg.JWTSecret,
		DailySalt: cfg.DailySalt,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Info().Str("port", cfg.Port).Str("cache", cfg.CacheBackend).Msg("starting wordle-solver")
	return srv.Start(ctx, ":"+cfg.Port)
}
