// internal/service/ingestion_service.go
package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/smsify-backend/internal/errors"
	"github.com/unclebandit/smsify-backend/internal/metrics"
	"github.com/unclebandit/smsify-backend/internal/model"
	"github.com/unclebandit/smsify-backend/internal/telephony"
)

var errNoReplyID = errors.New("insert returned no reply id")

// MessageCorrelator maps a provider SID back to the outbound message.
type MessageCorrelator interface {
	FindByProviderID(ctx context.Context, sid string) (*model.Message, error)
}

type ReplyStore interface {
	Create(ctx context.Context, reply *model.Reply) error
}

type CategoryStore interface {
	ListActiveByCampaign(ctx context.Context, campaignID int) ([]model.Category, error)
}

type CategorizationStore interface {
	Create(ctx context.Context, replyID, categoryID int) (*model.ReplyCategorization, error)
}

type ReplyClassifier interface {
	Classify(ctx context.Context, reply string, categories []model.Category, original string) (int, bool)
}

// IngestionService turns one inbound webhook into a persisted reply and, when the
// classifier agrees on a label, a categorization row.
type IngestionService struct {
	Messages        MessageCorrelator
	Replies         ReplyStore
	Categories      CategoryStore
	Categorizations CategorizationStore
	Classifier      ReplyClassifier
	Metrics         *metrics.Metrics
}

// Ingest returns the acknowledgement envelope. Errors are *appErrors.ErrMessageNotFound when the
// SID is unknown and *appErrors.ErrPersistence when a store read or write fails, including the
// category load after the reply is stored. Classification problems never produce an error.
//
// The reply insert and the categorization insert are separate statements; a failure between
// them leaves an uncategorized reply. Redelivered webhooks create duplicate replies.
func (s *IngestionService) Ingest(ctx context.Context, sid, content string) (string, error) {
	log := logrus.WithField("message_sid", sid)

	msg, err := s.Messages.FindByProviderID(ctx, sid)
	if err != nil {
		var notFound *appErrors.ErrMessageNotFound
		if errors.As(err, &notFound) {
			log.Info("no matching outgoing message found for the provider sid")
			s.Metrics.ReplyNotCorrelated()
			return "", err
		}
		return "", appErrors.NewPersistence("find original message", err)
	}
	log = log.WithFields(logrus.Fields{"message_id": msg.ID, "campaign_id": msg.CampaignID})

	reply := &model.Reply{MessageID: msg.ID, Content: content}
	if err := s.Replies.Create(ctx, reply); err != nil {
		return "", appErrors.NewPersistence("create reply", err)
	}
	if reply.ID == 0 {
		return "", appErrors.NewPersistence("create reply", errNoReplyID)
	}
	log = log.WithField("reply_id", reply.ID)
	s.Metrics.ReplyReceived()

	categories, err := s.Categories.ListActiveByCampaign(ctx, msg.CampaignID)
	if err != nil {
		s.Metrics.Uncategorized(metrics.ReasonError)
		return "", appErrors.NewPersistence("load categories", err)
	}

	categoryID, ok := s.Classifier.Classify(ctx, content, categories, msg.Content)
	if !ok {
		log.Info("no valid category determined for the response")
		return telephony.Envelope, nil
	}

	if _, err := s.Categorizations.Create(ctx, reply.ID, categoryID); err != nil {
		return "", appErrors.NewPersistence("create reply categorization", err)
	}
	s.Metrics.ReplyCategorized()
	log.WithField("category_id", categoryID).Info("response categorized")

	return telephony.Envelope, nil
}
