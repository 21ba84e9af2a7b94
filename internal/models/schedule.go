package models

import "time"

// Schedule categories and statuses accepted by the API.
var (
	ScheduleCategories = []string{"venue", "photo", "dress", "honeymoon", "invitation", "other"}
	ScheduleStatuses   = []string{"pending", "in_progress", "completed"}
)

// Schedule represents a single wedding-preparation task.
type Schedule struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"index;not null"`
	Title     string     `gorm:"size:255;not null"`
	Category  string     `gorm:"size:32;index;not null"` // venue / photo / dress / ...
	Status    string     `gorm:"size:16;not null;default:pending"`
	DueDate   *time.Time `gorm:"type:date;index"`
	Notes     *string    `gorm:"type:text"`
	CreatedAt time.Time
}
