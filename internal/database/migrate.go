package database

import (
	"fmt"

	"conduit/internal/models"
	"conduit/internal/observability"

	"gorm.io/gorm"
)

// Models lists every persisted record, in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Follow{},
		&models.Article{},
		&models.ArticleTag{},
		&models.Favorite{},
		&models.Comment{},
	}
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	observability.Logger.Info("Database migration completed", "tables", len(Models()))
	return nil
}
