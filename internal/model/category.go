// internal/model/category.go
package model

import "time"

type Category struct {
    ID         int        `db:"category_id" json:"category_id"`
    CampaignID int        `db:"campaign_id" json:"campaign_id"`
    Label      string     `db:"category_label" json:"category_label"`
    CreatedAt  time.Time  `db:"created_at" json:"created_at"`
    DeletedAt  *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

type ReplyCategorization struct {
    ID         int        `db:"categorization_id" json:"categorization_id"`
    ReplyID    int        `db:"response_id" json:"response_id"`
    CategoryID int        `db:"category_id" json:"category_id"`
    DeletedAt  *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
