package database

import (
	"fmt"

	"github.com/marco0212/wedding-tracker/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Schedule{},
		&models.Budget{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
