// internal/model/campaign.go
package model

import "time"

type Campaign struct {
    ID            int        `db:"campaign_id" json:"campaign_id"`
    UserID        int        `db:"user_id" json:"user_id"`
    PhoneNumberID *int       `db:"phone_number_id" json:"phone_number_id,omitempty"`
    Name          string     `db:"name" json:"name"`
    Description   *string    `db:"description" json:"description,omitempty"`
    Status        string     `db:"status" json:"status"`
    CreatedAt     time.Time  `db:"created_at" json:"created_at"`
    DeletedAt     *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
