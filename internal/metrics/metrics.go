package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_llm_requests_total",
			Help: "Total number of structured generation calls by schema and status",
		},
		[]string{"schema", "status"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketlens_llm_request_duration_seconds",
			Help:    "Duration of structured generation calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"schema"},
	)

	AnalysisResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_analysis_results_total",
			Help: "Analysis outcomes by query kind; outcome is ok or a failure class",
		},
		[]string{"kind", "outcome"},
	)

	CollectionWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_collection_writes_total",
			Help: "Collection snapshot writes by collection and status",
		},
		[]string{"collection", "status"},
	)
)
