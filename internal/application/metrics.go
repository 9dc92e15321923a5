package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_requests_total",
			Help: "Handled skill requests by handler and outcome code.",
		},
		[]string{"handler", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skill_request_duration_seconds",
			Help:    "Time spent building a skill response.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)

	recommendationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_recommendation_calls_total",
			Help: "Background recommendation calls by result (ok, error, dropped).",
		},
		[]string{"result"},
	)

	recommendationLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skill_recommendation_level",
			Help: "Last recommendation level stored.",
		},
	)
)
