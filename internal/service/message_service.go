package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/smsify-backend/internal/model"
	"github.com/unclebandit/smsify-backend/internal/repository"
)

type MessageService struct {
	MessageRepo  repository.MessageRepositoryInterface
	ReplyRepo    repository.ReplyRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
}

// UpdateStatus applies a provider status callback. An unknown SID or an empty status is a no-op.
func (s *MessageService) UpdateStatus(ctx context.Context, sid, status string) error {
	status = strings.TrimSpace(status)
	if sid == "" || status == "" {
		logrus.WithField("message_sid", sid).Warn("status callback without sid or status, ignoring")
		return nil
	}

	n, err := s.MessageRepo.UpdateStatusByProviderID(ctx, sid, model.MessageStatus(strings.ToLower(status)))
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"message_sid": sid, "status": status, "rows": n}).Info("message status updated")
	return nil
}

func (s *MessageService) ListMessages(ctx context.Context, userID, campaignID int) ([]model.Message, error) {
	if _, err := s.CampaignRepo.GetOwned(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	return s.MessageRepo.ListByCampaign(ctx, campaignID)
}

func (s *MessageService) ListReplies(ctx context.Context, userID, campaignID int) ([]model.ReplyWithMessage, error) {
	return s.ReplyRepo.ListByCampaign(ctx, userID, campaignID)
}
