package models

import (
	"time"
)

// SocialAccount is a connected account on one social network. The platform
// specific credential bundle is stored encrypted and never serialized.
type SocialAccount struct {
	ID                   int64     `db:"id" json:"id"`
	UserID               int64     `db:"user_id" json:"user_id"`
	Platform             string    `db:"platform" json:"platform"`
	AccountName          string    `db:"account_name" json:"account_name"`
	EncryptedCredentials string    `db:"encrypted_credentials" json:"-"`
	IsActive             bool      `db:"is_active" json:"is_active"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}
