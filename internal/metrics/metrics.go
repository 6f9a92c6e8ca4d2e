package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	CommandsDispatched  *prometheus.CounterVec
	DispatchFailures    *prometheus.CounterVec
	RepliesCorrelated   *prometheus.CounterVec
	ReplyWaitSeconds    *prometheus.HistogramVec
	FallbackResults     *prometheus.CounterVec
	InboundMessages     prometheus.Counter
	InquiriesCreated    *prometheus.CounterVec
	InquiriesProcessed  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kplcgateway_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kplcgateway_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "kplcgateway_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		CommandsDispatched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kplcgateway_commands_dispatched_total",
				Help: "Utility commands submitted to the short code",
			},
			[]string{"kind"},
		),
		DispatchFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kplcgateway_dispatch_failures_total",
				Help: "Utility commands that failed at the messaging gateway",
			},
			[]string{"kind"},
		),
		RepliesCorrelated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kplcgateway_replies_correlated_total",
				Help: "Inbound replies matched to a dispatched command",
			},
			[]string{"kind"},
		),
		ReplyWaitSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kplcgateway_reply_wait_seconds",
				Help:    "Time spent waiting for the utility reply",
				Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60},
			},
			[]string{"kind"},
		),
		FallbackResults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kplcgateway_fallback_results_total",
				Help: "Results synthesized because no reply was parsed",
			},
			[]string{"kind"},
		),
		InboundMessages: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kplcgateway_inbound_messages_total",
				Help: "Inbound SMS appended by the provider webhook",
			},
		),
		InquiriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kplcgateway_inquiries_created_total",
				Help: "Inquiries accepted into the ledger",
			},
			[]string{"kind"},
		),
		InquiriesProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kplcgateway_inquiries_processed_total",
				Help: "Worker inquiry outcomes",
			},
			[]string{"kind", "outcome"},
		),
	}
}
