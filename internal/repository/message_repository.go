package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appErrors "github.com/unclebandit/smsify-backend/internal/errors"
	"github.com/unclebandit/smsify-backend/internal/model"
)

type MessageRepositoryInterface interface {
	Create(ctx context.Context, msg *model.Message) error
	FindByProviderID(ctx context.Context, sid string) (*model.Message, error)
	UpdateStatusByProviderID(ctx context.Context, sid string, status model.MessageStatus) (int64, error)
	ListByCampaign(ctx context.Context, campaignID int) ([]model.Message, error)
}

type MessageRepository struct {
	DB *sql.DB
}

const messageColumns = `message_id, campaign_id, contact_id, message_content, sent_at, status, twilio_sid, deleted_at`

func scanMessage(row interface{ Scan(...any) error }, m *model.Message) error {
	var sid sql.NullString
	if err := row.Scan(&m.ID, &m.CampaignID, &m.ContactID, &m.Content, &m.SentAt, &m.Status, &sid, &m.DeletedAt); err != nil {
		return err
	}
	m.ProviderMessageID = sid.String
	return nil
}

// Create inserts the message and fills in the generated id and sent_at.
func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	if msg.Status == "" {
		msg.Status = model.MessageStatusPending
	}
	query := `
        INSERT INTO messages (campaign_id, contact_id, message_content, twilio_sid, status, sent_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING message_id, sent_at
    `
	err := r.DB.QueryRowContext(ctx, query, msg.CampaignID, msg.ContactID, msg.Content, msg.ProviderMessageID, msg.Status).
		Scan(&msg.ID, &msg.SentAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// FindByProviderID correlates a provider SID to its message. Soft-deleted rows still match.
func (r *MessageRepository) FindByProviderID(ctx context.Context, sid string) (*model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE twilio_sid = $1 LIMIT 1`
	var m model.Message
	if err := scanMessage(r.DB.QueryRowContext(ctx, query, sid), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewMessageNotFound(sid)
		}
		return nil, fmt.Errorf("find message by sid: %w", err)
	}
	return &m, nil
}

// UpdateStatusByProviderID returns the number of rows touched; zero is not an error.
func (r *MessageRepository) UpdateStatusByProviderID(ctx context.Context, sid string, status model.MessageStatus) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE messages SET status = $2 WHERE twilio_sid = $1`, sid, status)
	if err != nil {
		return 0, fmt.Errorf("update message status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update message status: %w", err)
	}
	return n, nil
}

func (r *MessageRepository) ListByCampaign(ctx context.Context, campaignID int) ([]model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
        WHERE campaign_id = $1 AND deleted_at IS NULL
        ORDER BY sent_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)
