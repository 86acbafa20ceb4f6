package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/smsify-backend/internal/metrics"
	"github.com/unclebandit/smsify-backend/internal/model"
	"github.com/unclebandit/smsify-backend/internal/telephony"
)

type MessageWriter interface {
	Create(ctx context.Context, msg *model.Message) error
}

// Dispatcher sends queued jobs through the provider and records each accepted message.
type Dispatcher struct {
	Sender            telephony.Sender
	Messages          MessageWriter
	StatusCallbackURL string
	Metrics           *metrics.Metrics
}

// HandleSendJob is a queue.Handler. A job whose provider call fails is logged and dropped.
func (d *Dispatcher) HandleSendJob(ctx context.Context, payload []byte) error {
	var job SendJob
	if err := json.Unmarshal(payload, &job); err != nil {
		logrus.WithError(err).Warn("invalid send job")
		return nil
	}

	log := logrus.WithFields(logrus.Fields{"campaign_id": job.CampaignID, "contact_id": job.ContactID})

	sid, err := d.Sender.Send(ctx, telephony.SendRequest{
		To:             job.To,
		From:           job.From,
		Body:           job.Body,
		StatusCallback: d.StatusCallbackURL,
	})
	if err != nil {
		d.Metrics.MessageSendFailed()
		return fmt.Errorf("send to contact %d: %w", job.ContactID, err)
	}
	log = log.WithField("message_sid", sid)

	msg := &model.Message{
		CampaignID:        job.CampaignID,
		ContactID:         job.ContactID,
		Content:           job.Body,
		ProviderMessageID: sid,
		Status:            model.MessageStatusPending,
	}
	if err := d.Messages.Create(ctx, msg); err != nil {
		// The SMS is out but replies to it can no longer be correlated.
		d.Metrics.MessageSendFailed()
		return fmt.Errorf("persist sent message %s: %w", sid, err)
	}

	d.Metrics.MessageSent()
	log.WithField("message_id", msg.ID).Info("message sent")
	return nil
}
