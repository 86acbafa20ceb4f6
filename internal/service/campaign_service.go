// internal/service/campaign_service.go
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "strings"

    "github.com/sirupsen/logrus"

    appErrors "github.com/unclebandit/smsify-backend/internal/errors"
    "github.com/unclebandit/smsify-backend/internal/model"
    "github.com/unclebandit/smsify-backend/internal/queue"
    "github.com/unclebandit/smsify-backend/internal/repository"
)

const DefaultSendTopic = "campaign_sends"

// SendJob is one outbound SMS to one contact.
type SendJob struct {
    CampaignID int    `json:"campaign_id"`
    ContactID  int    `json:"contact_id"`
    To         string `json:"to"`
    From       string `json:"from"`
    Body       string `json:"body"`
}

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    ContactRepo  repository.ContactRepositoryInterface
    Queue        queue.Queue
    Topic        string
}

// Result struct for SendBulk
type SendBulkResult struct {
    CampaignID int `json:"campaign_id"`
    Queued     int `json:"queued"`
    Failed     int `json:"failed"`
}

func (s *CampaignService) topic() string {
    if s.Topic == "" {
        return DefaultSendTopic
    }
    return s.Topic
}

// SendBulk enqueues one send job per active contact of the caller's campaign.
func (s *CampaignService) SendBulk(ctx context.Context, userID, campaignID int, content, from string) (*SendBulkResult, error) {
    if strings.TrimSpace(content) == "" {
        return nil, appErrors.NewValidation("message content cannot be empty")
    }
    if strings.TrimSpace(from) == "" {
        return nil, appErrors.NewValidation("sender number is required")
    }

    if _, err := s.CampaignRepo.GetOwned(ctx, userID, campaignID); err != nil {
        return nil, err
    }

    contacts, err := s.ContactRepo.ListByCampaign(ctx, campaignID)
    if err != nil {
        return nil, err
    }

    result := &SendBulkResult{CampaignID: campaignID}
    log := logrus.WithField("campaign_id", campaignID)

    for _, contact := range contacts {
        payload, err := json.Marshal(SendJob{
            CampaignID: campaignID,
            ContactID:  contact.ID,
            To:         contact.PhoneNumber,
            From:       from,
            Body:       content,
        })
        if err != nil {
            return nil, fmt.Errorf("encode send job: %w", err)
        }

        if err := s.Queue.Publish(ctx, s.topic(), payload); err != nil {
            log.WithError(err).WithField("contact_id", contact.ID).Warn("failed to enqueue message")
            result.Failed++
            continue
        }
        result.Queued++
    }

    log.WithFields(logrus.Fields{"queued": result.Queued, "failed": result.Failed}).Info("bulk send queued")
    return result, nil
}

// UpdateCampaign applies a partial update restricted to the allowed campaign fields.
func (s *CampaignService) UpdateCampaign(ctx context.Context, userID, campaignID int, updates map[string]any) (*model.Campaign, error) {
    return s.CampaignRepo.Update(ctx, userID, campaignID, updates)
}
