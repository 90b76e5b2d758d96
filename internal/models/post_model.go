package models

import "time"

type Post struct {
	ID                int64      `db:"id" json:"id"`
	UserID            int64      `db:"user_id" json:"user_id"`
	Platform          string     `db:"platform" json:"platform"`
	PlatformAccountID *int64     `db:"platform_account_id" json:"platform_account_id"`
	Content           string     `db:"content" json:"content"`
	ScheduledTime     *time.Time `db:"scheduled_time" json:"scheduled_time"`
	Status            string     `db:"status" json:"status"` // draft, scheduled, publishing, published, failed
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft      = "draft"
	PostStatusScheduled  = "scheduled"
	PostStatusPublishing = "publishing"
	PostStatusPublished  = "published"
	PostStatusFailed     = "failed"
)
