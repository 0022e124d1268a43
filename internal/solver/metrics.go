package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_cache_hits_total",
		Help: "Solution spaces served from the cache",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_cache_misses_total",
		Help: "Solution spaces absent from the cache",
	})

	cacheErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_cache_errors_total",
		Help: "Cache reads or writes that failed",
	})
)
