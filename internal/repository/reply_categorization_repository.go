package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unclebandit/smsify-backend/internal/model"
)

type ReplyCategorizationRepositoryInterface interface {
	Create(ctx context.Context, replyID, categoryID int) (*model.ReplyCategorization, error)
}

type ReplyCategorizationRepository struct {
	DB *sql.DB
}

func (r *ReplyCategorizationRepository) Create(ctx context.Context, replyID, categoryID int) (*model.ReplyCategorization, error) {
	query := `
        INSERT INTO response_categorizations (response_id, category_id)
        VALUES ($1, $2)
        RETURNING categorization_id
    `
	rc := &model.ReplyCategorization{ReplyID: replyID, CategoryID: categoryID}
	if err := r.DB.QueryRowContext(ctx, query, replyID, categoryID).Scan(&rc.ID); err != nil {
		return nil, fmt.Errorf("insert reply categorization: %w", err)
	}
	return rc, nil
}

var _ ReplyCategorizationRepositoryInterface = (*ReplyCategorizationRepository)(nil)
