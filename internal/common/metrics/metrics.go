// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UtterancesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_utterances_processed_total",
			Help: "Total number of utterances classified, by intent",
		},
		[]string{"intent"},
	)

	ClassifyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nlu_classify_duration_seconds",
			Help: "Duration of the full classification pipeline in seconds",
		},
		[]string{"intent"},
	)

	FallbackUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_fallback_used_total",
			Help: "Times the pattern fallback was consulted, by adopted source",
		},
		[]string{"source"},
	)

	LowConfidenceResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nlu_low_confidence_results_total",
			Help: "Results whose final confidence fell below 0.5",
		},
	)

	RetrainsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_retrains_total",
			Help: "Model retrain attempts, by outcome",
		},
		[]string{"outcome"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_cache_requests_total",
			Help: "Result cache lookups, by outcome",
		},
		[]string{"outcome"},
	)
)
