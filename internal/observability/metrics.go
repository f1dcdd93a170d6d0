package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Session metrics
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Total number of sessions issued",
		},
	)

	SessionValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_validations_total",
			Help: "Session validations by outcome",
		},
		[]string{"result"},
	)

	SessionsRenewed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_renewed_total",
			Help: "Total number of sessions whose expiry was extended",
		},
	)

	SessionsInvalidated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_invalidated_total",
			Help: "Total number of sessions deleted by logout or revocation",
		},
	)

	SessionsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_swept_total",
			Help: "Total number of expired sessions removed by the sweeper",
		},
	)

	// Validation metrics
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_validation_failures_total",
			Help: "Requests rejected by the validation gate",
		},
		[]string{"target"},
	)

	// WebSocket metrics
	WebSocketConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Number of active comment feed connections",
		},
	)

	WebSocketMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of events sent via WebSocket",
		},
		[]string{"type"},
	)

	// Messaging metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comment_events_published_total",
			Help: "Comment events published by transport and outcome",
		},
		[]string{"transport", "status"},
	)

	// Database metrics
	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		},
	)

	DBConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections currently in use",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
