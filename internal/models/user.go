package models

import (
	"time"
)

type User struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeUser is the only user shape that leaves the process. Handlers go through
// Safe() instead of serializing models.User, so the password hash cannot leak
// through a forgotten field.
type SafeUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		UpdatedAt: u.UpdatedAt,
	}
}
