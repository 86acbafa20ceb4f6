// internal/controller/sms_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/smsify-backend/internal/errors"
	"github.com/unclebandit/smsify-backend/internal/service"
	"github.com/unclebandit/smsify-backend/internal/telephony"
)

type SMSController struct {
	Ingestion       *service.IngestionService
	MessageService  *service.MessageService
	CampaignService *service.CampaignService
}

// Receive handles the inbound reply webhook.
func (c *SMSController) Receive(w http.ResponseWriter, r *http.Request) {
	params, err := telephony.WebhookParams(r)
	if err != nil {
		http.Error(w, "invalid webhook body", http.StatusBadRequest)
		return
	}
	sid := params["MessageSid"]
	if sid == "" {
		http.Error(w, "MessageSid is required", http.StatusBadRequest)
		return
	}

	envelope, err := c.Ingestion.Ingest(r.Context(), sid, params["Body"])
	if err != nil {
		var notFound *appErrors.ErrMessageNotFound
		if errors.As(err, &notFound) {
			http.Error(w, "Original message not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).WithField("message_sid", sid).Error("error processing received SMS")
		http.Error(w, "There was an error processing received SMS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(envelope))
}

// Status handles provider delivery-status callbacks.
func (c *SMSController) Status(w http.ResponseWriter, r *http.Request) {
	params, err := telephony.WebhookParams(r)
	if err != nil {
		http.Error(w, "invalid webhook body", http.StatusBadRequest)
		return
	}

	if err := c.MessageService.UpdateStatus(r.Context(), params["MessageSid"], params["MessageStatus"]); err != nil {
		logrus.WithError(err).WithField("message_sid", params["MessageSid"]).Error("failed to update message status")
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Status updated successfully"))
}

func (c *SMSController) SendBulk(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body struct {
		CampaignID     int    `json:"campaignId"`
		MessageContent string `json:"messageContent"`
		TwilioNumber   string `json:"twilioNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	result, err := c.CampaignService.SendBulk(r.Context(), userID, body.CampaignID, body.MessageContent, body.TwilioNumber)
	if err != nil {
		writeError(w, err, "Error sending SMS")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Bulk SMS sent successfully",
		"queued":  result.Queued,
		"failed":  result.Failed,
	})
}

func (c *SMSController) ListReplies(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	campaignID, ok := intParam(r, "campaignId")
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	replies, err := c.MessageService.ListReplies(r.Context(), userID, campaignID)
	if err != nil {
		writeError(w, err, "Failed to fetch responses")
		return
	}
	writeJSON(w, http.StatusOK, replies)
}

func (c *SMSController) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	campaignID, ok := intParam(r, "campaignId")
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	messages, err := c.MessageService.ListMessages(r.Context(), userID, campaignID)
	if err != nil {
		writeError(w, err, "Failed to fetch messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
