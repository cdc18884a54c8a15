package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	calculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_promise_calculations_total",
		Help: "Promise calculations by outcome (calculated, rejected, invalid, error).",
	}, []string{"outcome"})

	calculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "otp_promise_calculation_duration_seconds",
		Help:    "End-to-end promise calculation latency.",
		Buckets: prometheus.DefBuckets,
	})

	calculationConfidence = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_promise_confidence_total",
		Help: "Successful calculations by confidence level.",
	}, []string{"confidence"})
)
