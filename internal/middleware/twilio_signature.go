package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/smsify-backend/internal/telephony"
)

// SignatureValidator checks a provider request signature.
type SignatureValidator interface {
	ValidateSignature(url string, params map[string]string, signature string) bool
	ValidateBodySignature(url string, body []byte, signature string) bool
}

// TwilioSignature rejects webhook requests whose signature does not match the
// public callback URL and posted parameters. Requests carrying a bodySHA256 query
// parameter are checked against the raw body instead. A nil validator disables the check.
func TwilioSignature(v SignatureValidator, publicURL string) func(http.Handler) http.Handler {
	base := strings.TrimRight(publicURL, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v == nil {
				next.ServeHTTP(w, r)
				return
			}

			url := base + r.URL.RequestURI()
			signature := r.Header.Get(telephony.SignatureHeader)
			log := logrus.WithField("url", url)

			var valid bool
			if r.URL.Query().Get("bodySHA256") != "" {
				raw, err := io.ReadAll(r.Body)
				if err != nil {
					http.Error(w, "invalid webhook body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(raw))
				valid = v.ValidateBodySignature(url, raw, signature)
			} else {
				params, err := telephony.WebhookParams(r)
				if err != nil {
					http.Error(w, "invalid webhook body", http.StatusBadRequest)
					return
				}
				log = log.WithField("message_sid", params["MessageSid"])
				valid = v.ValidateSignature(url, params, signature)
			}

			if !valid {
				log.Warn("failed twilio request validation")
				http.Error(w, "Invalid request signature.", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
