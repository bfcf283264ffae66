package database

import (
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/models"
)

// AutoMigrate creates or updates the database schema for all models. The
// Organization is migrated first so the user foreign key can reference it.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organization{},
		&models.User{},
	)
}
