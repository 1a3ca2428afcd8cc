package media

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

// Repository handles auction item media persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, asset *domain.Asset) error {
	entity := entities.AuctionItemMedia{
		ID:            asset.ID,
		AuctionItemID: asset.AuctionItemID,
		MediaType:     asset.MediaType,
		FileName:      asset.FileName,
		MimeType:      asset.MimeType,
		FileSize:      asset.FileSize,
		BlobName:      asset.BlobName,
		Status:        asset.Status,
		DisplayOrder:  asset.DisplayOrder,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create media record",
			err,
			"4b8e2d7f-1c69-4a35-b9e4-6d0f3a8c5b21",
		)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	var entity entities.AuctionItemMedia
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("media %s not found", id),
				err,
				"7d2f9c4b-8e53-4a17-9b6e-0c5d1f8a3e62",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load media record",
			err,
			"f5a3c8e1-6b94-4d27-8f0a-2e7b5d9c1a46",
		)
	}
	asset := mapEntity(entity)
	return &asset, nil
}

func (r *Repository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Asset, error) {
	var rows []entities.AuctionItemMedia
	err := r.db.WithContext(ctx).
		Where("auction_item_id = ?", itemID).
		Order("display_order ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list media records",
			err,
			"0e6b4d9a-2f78-4c15-a3d6-8b1e5f7c2d94",
		)
	}
	assets := make([]domain.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, mapEntity(row))
	}
	return assets, nil
}

// UpdateStatusIf performs a compare-and-swap on the status column. Zero rows
// affected means the expected status no longer holds: the caller either
// raced another transition (conflict) or the row is gone (not found).
func (r *Repository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next string) (*domain.Asset, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.AuctionItemMedia{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update media status",
			res.Error,
			"9a7e3f2c-5d81-4b64-8c9f-1e0d6a4b7c35",
		)
	}
	if res.RowsAffected == 0 {
		return r.casFailure(ctx, id, expected)
	}
	return r.GetByID(ctx, id)
}

// SetScanResult is the scan-completion variant of the status CAS; it also
// records the derived thumbnail path when one was produced.
func (r *Repository) SetScanResult(ctx context.Context, id uuid.UUID, expected, next, thumbnailPath string) (*domain.Asset, error) {
	values := map[string]interface{}{"status": next}
	if thumbnailPath != "" {
		values["thumbnail_path"] = thumbnailPath
	}
	res := r.db.WithContext(ctx).
		Model(&entities.AuctionItemMedia{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(values)
	if res.Error != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to record scan result",
			res.Error,
			"3c9d5b7e-0f42-4a86-b1c8-7d2e6f9a0b54",
		)
	}
	if res.RowsAffected == 0 {
		return r.casFailure(ctx, id, expected)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) casFailure(ctx context.Context, id uuid.UUID, expected string) (*domain.Asset, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, platformerrors.NewError(
		ctx,
		platformerrors.LayerRepository,
		platformerrors.ErrorTypeInvalidState,
		fmt.Sprintf("status conflict: media is %s, expected %s", current.Status, expected),
		nil,
		"b2f6e9c3-4a57-4d18-9e0b-5c8f1d7a3b26",
	)
}

// Reorder assigns display_order = index for each id, all in one transaction.
func (r *Repository) Reorder(ctx context.Context, itemID uuid.UUID, ordered []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx, id := range ordered {
			res := tx.Model(&entities.AuctionItemMedia{}).
				Where("id = ? AND auction_item_id = ?", id, itemID).
				Update("display_order", idx)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeValidation,
				"reorder list contains a media id that does not belong to this item",
				err,
				"6e1a8c4f-9b23-4d75-8a6e-0f5b2d9c7e41",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to reorder media records",
			err,
			"1f4b7d2a-6c95-4e38-b0f1-9a3e5c8d6f72",
		)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.AuctionItemMedia{})
	if res.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete media record",
			res.Error,
			"8d3f6a1e-2b79-4c50-9d8a-4e7c0b5f2a93",
		)
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("media %s not found", id),
			nil,
			"5c0e9b3d-7f48-4a21-b6c5-3d1f8e6a9c07",
		)
	}
	return nil
}

func (r *Repository) SumSizeByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&entities.AuctionItemMedia{}).
		Where("auction_item_id = ?", itemID).
		Select("COALESCE(SUM(file_size), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to sum media sizes",
			err,
			"e7b2d5f8-0a64-4c39-8e1b-6f9d3a7c5e20",
		)
	}
	return total, nil
}

func mapEntity(entity entities.AuctionItemMedia) domain.Asset {
	return domain.Asset{
		ID:            entity.ID,
		AuctionItemID: entity.AuctionItemID,
		MediaType:     entity.MediaType,
		FileName:      entity.FileName,
		MimeType:      entity.MimeType,
		FileSize:      entity.FileSize,
		BlobName:      entity.BlobName,
		Status:        entity.Status,
		DisplayOrder:  entity.DisplayOrder,
		ThumbnailPath: entity.ThumbnailPath,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}
