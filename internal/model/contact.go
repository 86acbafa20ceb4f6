// internal/model/contact.go
package model

type Contact struct {
    ID          int    `db:"contact_id" json:"contact_id"`
    UserID      int    `db:"user_id" json:"user_id"`
    CampaignID  int    `db:"campaign_id" json:"campaign_id"`
    Name        string `db:"name" json:"name"`
    PhoneNumber string `db:"phone_number" json:"phone_number"`
}
