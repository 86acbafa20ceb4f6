package service

import (
	"context"
	"strings"

	appErrors "github.com/unclebandit/smsify-backend/internal/errors"
	"github.com/unclebandit/smsify-backend/internal/model"
	"github.com/unclebandit/smsify-backend/internal/repository"
)

type CategoryService struct {
	CategoryRepo repository.CategoryRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
}

func (s *CategoryService) AddCategories(ctx context.Context, userID, campaignID int, labels []string) ([]model.Category, error) {
	if len(labels) == 0 {
		return nil, appErrors.NewValidation("at least one category label is required")
	}
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			return nil, appErrors.NewValidation("category labels cannot be empty")
		}
	}
	if _, err := s.CampaignRepo.GetOwned(ctx, userID, campaignID); err != nil {
		return nil, err
	}

	created := make([]model.Category, 0, len(labels))
	for _, l := range labels {
		c, err := s.CategoryRepo.Create(ctx, campaignID, strings.TrimSpace(l))
		if err != nil {
			return nil, err
		}
		created = append(created, *c)
	}
	return created, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID, campaignID int) ([]model.Category, error) {
	if _, err := s.CampaignRepo.GetOwned(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	return s.CategoryRepo.ListActiveByCampaign(ctx, campaignID)
}

func (s *CategoryService) UpdateLabel(ctx context.Context, userID, categoryID int, label string) (*model.Category, error) {
	if strings.TrimSpace(label) == "" {
		return nil, appErrors.NewValidation("new label cannot be empty")
	}
	if err := s.authorize(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	return s.CategoryRepo.UpdateLabel(ctx, categoryID, strings.TrimSpace(label))
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID int) (*model.Category, error) {
	if err := s.authorize(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	return s.CategoryRepo.SoftDelete(ctx, categoryID)
}

func (s *CategoryService) authorize(ctx context.Context, userID, categoryID int) error {
	c, err := s.CategoryRepo.GetActive(ctx, categoryID)
	if err != nil {
		return err
	}
	_, err = s.CampaignRepo.GetOwned(ctx, userID, c.CampaignID)
	return err
}
