package models

import "time"

// RefreshTokenRecord is the server-side half of a refresh token. One row exists
// per currently valid token; rotation deletes the old row and inserts a new one,
// it never updates in place. TokenHash holds a SHA-256 of the raw token, the raw
// value is never stored.
type RefreshTokenRecord struct {
	ID         string    `gorm:"primaryKey"`
	RotationID string    `gorm:"uniqueIndex"`
	TokenHash  string
	UserID     string    `gorm:"index"`
	ExpiresAt  time.Time `gorm:"index"`
	CreatedAt  time.Time
}
