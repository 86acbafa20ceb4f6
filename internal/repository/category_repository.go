package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appErrors "github.com/unclebandit/smsify-backend/internal/errors"
	"github.com/unclebandit/smsify-backend/internal/model"
)

type CategoryRepositoryInterface interface {
	ListActiveByCampaign(ctx context.Context, campaignID int) ([]model.Category, error)
	GetActive(ctx context.Context, categoryID int) (*model.Category, error)
	Create(ctx context.Context, campaignID int, label string) (*model.Category, error)
	UpdateLabel(ctx context.Context, categoryID int, label string) (*model.Category, error)
	SoftDelete(ctx context.Context, categoryID int) (*model.Category, error)
}

type CategoryRepository struct {
	DB *sql.DB
}

const categoryColumns = `category_id, campaign_id, category_label, created_at, deleted_at`

func scanCategory(row interface{ Scan(...any) error }, c *model.Category) error {
	return row.Scan(&c.ID, &c.CampaignID, &c.Label, &c.CreatedAt, &c.DeletedAt)
}

// ListActiveByCampaign returns the campaign's categories that are not soft-deleted. Order is unspecified.
func (r *CategoryRepository) ListActiveByCampaign(ctx context.Context, campaignID int) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM campaign_categories WHERE campaign_id = $1 AND deleted_at IS NULL`
	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetActive(ctx context.Context, categoryID int) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM campaign_categories WHERE category_id = $1 AND deleted_at IS NULL`
	return r.one(ctx, categoryID, query, categoryID)
}

func (r *CategoryRepository) Create(ctx context.Context, campaignID int, label string) (*model.Category, error) {
	query := `
        INSERT INTO campaign_categories (campaign_id, category_label, created_at)
        VALUES ($1, $2, NOW())
        RETURNING ` + categoryColumns
	var c model.Category
	if err := scanCategory(r.DB.QueryRowContext(ctx, query, campaignID, label), &c); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) UpdateLabel(ctx context.Context, categoryID int, label string) (*model.Category, error) {
	query := `
        UPDATE campaign_categories SET category_label = $2
        WHERE category_id = $1 AND deleted_at IS NULL
        RETURNING ` + categoryColumns
	return r.one(ctx, categoryID, query, categoryID, label)
}

// SoftDelete stamps deleted_at; categories are never removed.
func (r *CategoryRepository) SoftDelete(ctx context.Context, categoryID int) (*model.Category, error) {
	query := `
        UPDATE campaign_categories SET deleted_at = NOW()
        WHERE category_id = $1 AND deleted_at IS NULL
        RETURNING ` + categoryColumns
	return r.one(ctx, categoryID, query, categoryID)
}

func (r *CategoryRepository) one(ctx context.Context, categoryID int, query string, args ...any) (*model.Category, error) {
	var c model.Category
	if err := scanCategory(r.DB.QueryRowContext(ctx, query, args...), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCategoryNotFound(categoryID)
		}
		return nil, fmt.Errorf("category %d: %w", categoryID, err)
	}
	return &c, nil
}

var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)
