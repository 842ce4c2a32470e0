package models

import "time"

// ErrorLog is a client-reported error persisted through the global error sink.
type ErrorLog struct {
	ID        uint   `gorm:"primaryKey"`
	Level     string `gorm:"index"`
	Name      string
	Message   string
	Stack     string
	Context   string
	CreatedAt time.Time
}
