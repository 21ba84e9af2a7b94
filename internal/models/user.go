package models

import "time"

// User represents application user.
type User struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	Name         string     `gorm:"size:64;not null"`
	WeddingDate  *time.Time `gorm:"type:date"`
	CreatedAt    time.Time
}
