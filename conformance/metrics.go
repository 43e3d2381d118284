package conformance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shaclc_conformance_checks_total",
		Help: "Number of per-shape conformance checks evaluated, by outcome.",
	}, []string{"outcome"})

	mCheckSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "shaclc_conformance_seconds",
		Help: "Time to evaluate a single shape's conformance check.",
	})
)
