package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unclebandit/smsify-backend/internal/controller"
	"github.com/unclebandit/smsify-backend/internal/handler"
	"github.com/unclebandit/smsify-backend/internal/metrics"
	"github.com/unclebandit/smsify-backend/internal/middleware"
	"github.com/unclebandit/smsify-backend/internal/server"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type rejectAll struct{}

func (rejectAll) ValidateSignature(string, map[string]string, string) bool { return false }

func (rejectAll) ValidateBodySignature(string, []byte, string) bool { return false }

func newRouter() http.Handler {
	m := metrics.NewMetrics()
	return server.NewRouter(&server.Handlers{
		SMS:      &controller.SMSController{},
		Category: &controller.CategoryController{},
		Campaign: &controller.CampaignController{},
		Health:   handler.NewHealthHandler(okPinger{}),
		Metrics:  m.Handler(),
		Webhook:  middleware.TwilioSignature(rejectAll{}, "https://api.smsify.test"),
		Auth:     middleware.Auth("secret"),
	})
}

func TestRouter_Operational(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_WebhooksRequireSignature(t *testing.T) {
	r := newRouter()

	for _, path := range []string{"/api/v1/sms/receive", "/api/v1/sms/status"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("MessageSid=SM1&Body=hi"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_APIRequiresBearerToken(t *testing.T) {
	r := newRouter()

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/sms/sendBulk"},
		{http.MethodGet, "/api/v1/sms/responses/3"},
		{http.MethodGet, "/api/v1/sms/messages/3"},
		{http.MethodPost, "/api/v1/category"},
		{http.MethodGet, "/api/v1/category/3"},
		{http.MethodPut, "/api/v1/category/update/1"},
		{http.MethodPut, "/api/v1/category/delete/1"},
		{http.MethodPut, "/api/v1/campaign/3"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}
