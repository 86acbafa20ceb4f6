package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Uncategorized reasons.
const (
	ReasonNoCategories = "no_categories"
	ReasonNoMatch      = "no_match"
	ReasonEmpty        = "empty"
	ReasonError        = "error"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RepliesReceived        prometheus.Counter
	RepliesNotCorrelated   prometheus.Counter
	RepliesCategorized     prometheus.Counter
	RepliesUncategorized   *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	MessagesSent           prometheus.Counter
	MessageSendFailures    prometheus.Counter
}

// NewMetrics registers the service metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RepliesReceived: f.NewCounter(prometheus.CounterOpts{
			Name: "smsify_replies_received_total",
			Help: "Inbound replies persisted",
		}),
		RepliesNotCorrelated: f.NewCounter(prometheus.CounterOpts{
			Name: "smsify_replies_not_correlated_total",
			Help: "Inbound webhooks whose MessageSid matched no sent message",
		}),
		RepliesCategorized: f.NewCounter(prometheus.CounterOpts{
			Name: "smsify_replies_categorized_total",
			Help: "Replies linked to a campaign category",
		}),
		RepliesUncategorized: f.NewCounterVec(prometheus.CounterOpts{
			Name: "smsify_replies_uncategorized_total",
			Help: "Replies left without a category, by reason",
		}, []string{"reason"}),
		ClassificationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "smsify_classification_duration_seconds",
			Help:    "Latency of completion calls used for classification",
			Buckets: prometheus.DefBuckets,
		}),
		MessagesSent: f.NewCounter(prometheus.CounterOpts{
			Name: "smsify_messages_sent_total",
			Help: "Outbound messages accepted by the provider",
		}),
		MessageSendFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "smsify_message_send_failures_total",
			Help: "Outbound sends rejected by the provider or not persisted",
		}),
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ReplyReceived() {
	if m != nil {
		m.RepliesReceived.Inc()
	}
}

func (m *Metrics) ReplyNotCorrelated() {
	if m != nil {
		m.RepliesNotCorrelated.Inc()
	}
}

func (m *Metrics) ReplyCategorized() {
	if m != nil {
		m.RepliesCategorized.Inc()
	}
}

func (m *Metrics) MessageSent() {
	if m != nil {
		m.MessagesSent.Inc()
	}
}

func (m *Metrics) MessageSendFailed() {
	if m != nil {
		m.MessageSendFailures.Inc()
	}
}

func (m *Metrics) Uncategorized(reason string) {
	if m != nil {
		m.RepliesUncategorized.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) ObserveClassification(seconds float64) {
	if m != nil {
		m.ClassificationDuration.Observe(seconds)
	}
}
