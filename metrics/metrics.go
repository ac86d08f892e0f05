package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tree metrics
	DecorationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festive_decorations_created_total",
			Help: "Total number of decorations placed, by type",
		},
		[]string{"type"},
	)

	CreationsBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festive_creations_blocked_total",
			Help: "Total number of creations rejected by a moderation block, by type",
		},
		[]string{"type"},
	)

	DecorationsRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "festive_decorations_removed_total",
			Help: "Total number of decorations removed by an admin",
		},
	)

	// Document metrics
	DocumentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festive_document_writes_total",
			Help: "Total number of whole-document writes by document and result",
		},
		[]string{"document", "result"},
	)

	DocumentWriteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "festive_document_write_duration_seconds",
			Help:    "Time spent in a read-modify-write cycle, queue wait included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"document"},
	)

	MediumFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festive_medium_fallbacks_total",
			Help: "Total number of remote storage operations served by the local fallback",
		},
		[]string{"op"},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festive_api_requests_total",
			Help: "Total number of API requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "festive_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

func init() {
	prometheus.MustRegister(DecorationsCreated)
	prometheus.MustRegister(CreationsBlocked)
	prometheus.MustRegister(DecorationsRemoved)
	prometheus.MustRegister(DocumentWrites)
	prometheus.MustRegister(DocumentWriteDuration)
	prometheus.MustRegister(MediumFallbacks)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
