// Package telephony wraps the SMS provider: outbound sends and webhook signature checks.
package telephony

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/unclebandit/smsify-backend/internal/config"
)

type SendRequest struct {
	To             string
	From           string
	Body           string
	StatusCallback string
}

// Sender sends one SMS and returns the provider's message SID.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (string, error)
}

type TwilioClient struct {
	rest      *twilio.RestClient
	validator client.RequestValidator
}

func NewTwilioClient(cfg config.TwilioConfig) *TwilioClient {
	return &TwilioClient{
		rest: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		validator: client.NewRequestValidator(cfg.AuthToken),
	}
}

// Send ignores ctx; the provider SDK has no context support.
func (c *TwilioClient) Send(_ context.Context, req SendRequest) (string, error) {
	params := &openapi.CreateMessageParams{}
	params.SetTo(req.To)
	params.SetFrom(req.From)
	params.SetBody(req.Body)
	if req.StatusCallback != "" {
		params.SetStatusCallback(req.StatusCallback)
	}

	resp, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid == nil || *resp.Sid == "" {
		return "", fmt.Errorf("twilio create message: empty sid")
	}
	return *resp.Sid, nil
}

// ValidateSignature checks X-Twilio-Signature against the full callback URL and the posted parameters.
// Only the first value of a repeated parameter is signed.
func (c *TwilioClient) ValidateSignature(url string, params map[string]string, signature string) bool {
	return c.validator.Validate(url, params, signature)
}

// ValidateBodySignature checks a JSON webhook signed over its URL, whose bodySHA256 query
// parameter must be the hex SHA-256 of body.
func (c *TwilioClient) ValidateBodySignature(url string, body []byte, signature string) bool {
	return c.validator.ValidateBody(url, body, signature)
}
