package models

import "time"

// Budget represents a planned-vs-actual spending line item.
// Amounts are stored in whole currency units to avoid float error.
type Budget struct {
	ID           uint    `gorm:"primaryKey"`
	UserID       uint    `gorm:"index;not null"`
	Category     string  `gorm:"size:64;index;not null"`
	ItemName     string  `gorm:"size:255;not null"`
	BudgetAmount int64   `gorm:"not null;default:0"`
	ActualAmount int64   `gorm:"not null;default:0"`
	IsPaid       bool    `gorm:"not null;default:false"`
	Notes        *string `gorm:"type:text"`
	CreatedAt    time.Time
}
