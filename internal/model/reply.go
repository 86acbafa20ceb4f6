// internal/model/reply.go
package model

import "time"

type Reply struct {
    ID         int        `db:"response_id" json:"response_id"`
    MessageID  int        `db:"message_id" json:"message_id"`
    Content    string     `db:"response_content" json:"response_content"`
    ReceivedAt time.Time  `db:"received_at" json:"received_at"`
    DeletedAt  *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// ReplyWithMessage is a reply joined with the outbound message that provoked it.
type ReplyWithMessage struct {
    Reply
    MessageContent string    `db:"message_content" json:"message_content"`
    SentAt         time.Time `db:"sent_at" json:"sent_at"`
}
