package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unclebandit/smsify-backend/internal/model"
)

type ReplyRepositoryInterface interface {
	Create(ctx context.Context, reply *model.Reply) error
	ListByCampaign(ctx context.Context, userID, campaignID int) ([]model.ReplyWithMessage, error)
}

type ReplyRepository struct {
	DB *sql.DB
}

// Create inserts an inbound reply. Replies have no update path.
func (r *ReplyRepository) Create(ctx context.Context, reply *model.Reply) error {
	query := `
        INSERT INTO responses (message_id, response_content, received_at)
        VALUES ($1, $2, NOW())
        RETURNING response_id, received_at
    `
	if err := r.DB.QueryRowContext(ctx, query, reply.MessageID, reply.Content).Scan(&reply.ID, &reply.ReceivedAt); err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	return nil
}

// ListByCampaign returns active replies of a campaign owned by userID.
func (r *ReplyRepository) ListByCampaign(ctx context.Context, userID, campaignID int) ([]model.ReplyWithMessage, error) {
	query := `
        SELECT r.response_id, r.message_id, r.response_content, r.received_at, r.deleted_at,
               m.message_content, m.sent_at
        FROM responses r
        INNER JOIN messages m ON r.message_id = m.message_id
        WHERE m.campaign_id = $1
          AND EXISTS (SELECT 1 FROM campaigns c WHERE c.campaign_id = m.campaign_id AND c.user_id = $2)
          AND r.deleted_at IS NULL
        ORDER BY r.received_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, campaignID, userID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	replies := []model.ReplyWithMessage{}
	for rows.Next() {
		var rm model.ReplyWithMessage
		if err := rows.Scan(&rm.ID, &rm.MessageID, &rm.Content, &rm.ReceivedAt, &rm.DeletedAt, &rm.MessageContent, &rm.SentAt); err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		replies = append(replies, rm)
	}
	return replies, rows.Err()
}

var _ ReplyRepositoryInterface = (*ReplyRepository)(nil)
