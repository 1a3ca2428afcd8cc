package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"augeo-server/services/admin-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	err := db.WithContext(ctx).AutoMigrate(
		&entities.User{},
		&entities.NPO{},
		&entities.NPOMember{},
		&entities.Invitation{},
		&entities.AuctionItem{},
		&entities.AuctionItemMedia{},
	)
	if err != nil {
		return err
	}
	log.Info().Msg("applied admin-api migrations")
	return nil
}
