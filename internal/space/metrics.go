package space

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	computeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_space_computations_total",
		Help: "Total number of solution spaces computed",
	})

	computeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_space_computation_errors_total",
		Help: "Total number of failed solution-space computations",
	})

	computeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_space_computation_duration_seconds",
		Help:    "Time spent grouping every allowed guess against the candidates",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)
