package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ReplyReceived()
		m.ReplyNotCorrelated()
		m.ReplyCategorized()
		m.MessageSent()
		m.MessageSendFailed()
		m.Uncategorized(ReasonNoMatch)
		m.ObserveClassification(0.2)
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := NewMetrics()
	m.ReplyReceived()
	m.Uncategorized(ReasonNoCategories)
	m.Uncategorized(ReasonNoCategories)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RepliesReceived))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RepliesUncategorized.WithLabelValues(ReasonNoCategories)))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "smsify_replies_received_total 1")
	assert.Contains(t, w.Body.String(), `smsify_replies_uncategorized_total{reason="no_categories"} 2`)
}
