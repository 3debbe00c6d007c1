package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	restRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_client_rest_requests_total",
			Help: "Total number of REST requests issued by the chat client.",
		},
		[]string{"method", "path", "status"},
	)
	restRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_client_rest_request_duration_seconds",
			Help:    "REST request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_client_ws_active_connections",
			Help: "Whether a chat channel connection is currently live (0 or 1).",
		},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_client_ws_events_total",
			Help: "Total number of chat channel events by direction.",
		},
		[]string{"direction", "event"},
	)
	droppedActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_client_dropped_actions_total",
			Help: "Outbound actions dropped because the connection was not live.",
		},
		[]string{"event"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_client_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		restRequestsTotal,
		restRequestDuration,
		wsActiveConnections,
		wsEventsTotal,
		droppedActionsTotal,
		amqpPublishErrorsTotal,
	)
}

func ObserveRESTRequest(method, path string, status int, elapsed time.Duration) {
	restRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	restRequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

func SetWSActive(live bool) {
	if live {
		wsActiveConnections.Set(1)
		return
	}
	wsActiveConnections.Set(0)
}

func IncWSEvent(direction, event string) {
	wsEventsTotal.WithLabelValues(direction, event).Inc()
}

func IncDroppedAction(event string) {
	droppedActionsTotal.WithLabelValues(event).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
