package models

import "time"

type Organization struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Membership struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"index:idx_membership_user_org,unique"`
	OrganizationID string `gorm:"index:idx_membership_user_org,unique"`
	Role           string
	CreatedAt      time.Time
}
