package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unclebandit/smsify-backend/internal/model"
)

// ContactRepositoryInterface defines methods used by the send path
type ContactRepositoryInterface interface {
	ListByCampaign(ctx context.Context, campaignID int) ([]model.Contact, error)
}

type ContactRepository struct {
	DB *sql.DB
}

// ListByCampaign fetches the active contacts a bulk send targets
func (r *ContactRepository) ListByCampaign(ctx context.Context, campaignID int) ([]model.Contact, error) {
	query := `
        SELECT contact_id, user_id, campaign_id, name, phone_number
        FROM contacts
        WHERE campaign_id = $1 AND deleted_at IS NULL
    `
	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.CampaignID, &c.Name, &c.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
