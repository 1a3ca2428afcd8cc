package auctionitem

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "augeo-server/services/admin-api/internal/domain/media"
	"augeo-server/services/admin-api/internal/infrastructure/database/entities"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// Repository resolves auction items for media ownership checks.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByIDAndEvent(ctx context.Context, itemID, eventID uuid.UUID) (*domain.AuctionItem, error) {
	var entity entities.AuctionItem
	err := r.db.WithContext(ctx).Where("id = ? AND event_id = ?", itemID, eventID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("auction item %s not found in this event", itemID),
				err,
				"a8c5f2e9-3d67-4b04-9a1c-7e2b8d5f0c36",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load auction item",
			err,
			"d1e8b4c7-5f92-4a36-8d0e-9c3a6b1f4d85",
		)
	}
	return &domain.AuctionItem{
		ID:      entity.ID,
		EventID: entity.EventID,
		NPOID:   entity.NPOID,
		Status:  entity.Status,
	}, nil
}
