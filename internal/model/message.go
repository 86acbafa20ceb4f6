// internal/model/message.go
package model

import "time"

type MessageStatus string

const (
    MessageStatusPending     MessageStatus = "pending"
    MessageStatusSent        MessageStatus = "sent"
    MessageStatusDelivered   MessageStatus = "delivered"
    MessageStatusFailed      MessageStatus = "failed"
    MessageStatusUndelivered MessageStatus = "undelivered"
)

// Message is one outbound SMS sent to one contact of a campaign.
// ProviderMessageID is the telephony provider's SID and the join key for inbound replies.
type Message struct {
    ID                int           `db:"message_id" json:"message_id"`
    CampaignID        int           `db:"campaign_id" json:"campaign_id"`
    ContactID         int           `db:"contact_id" json:"contact_id"`
    Content           string        `db:"message_content" json:"message_content"`
    SentAt            time.Time     `db:"sent_at" json:"sent_at"`
    Status            MessageStatus `db:"status" json:"status"`
    ProviderMessageID string        `db:"twilio_sid" json:"twilio_sid"`
    DeletedAt         *time.Time    `db:"deleted_at" json:"deleted_at,omitempty"`
}
