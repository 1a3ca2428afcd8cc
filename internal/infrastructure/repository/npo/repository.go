package npo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "augeo-server/services/admin-api/internal/domain/npo"
	"augeo-server/services/admin-api/internal/infrastructure/database/entities"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// Repository handles NPO application persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var entity entities.NPO
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("NPO %s not found", id),
				err,
				"c4e7a2d9-8b51-4f36-9c0e-5a3d7f1b8e64",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load NPO",
			err,
			"2b9f6e3a-0d74-4c58-b2a9-7e1c4f8d5a30",
		)
	}
	app := mapEntity(entity)
	return &app, nil
}

func (r *Repository) ListPending(ctx context.Context, offset, limit int) ([]domain.Application, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&entities.NPO{}).Where("status = ?", domain.StatusPendingApproval)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count pending applications",
			err,
			"8e5c1f7b-3a92-4d46-8f5c-0b6e9d2a7c13",
		)
	}

	var rows []entities.NPO
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list pending applications",
			err,
			"5a8d3b6f-9c27-4e15-a4b8-2f7e0c9d6b41",
		)
	}

	apps := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, mapEntity(row))
	}
	return apps, total, nil
}

// ReviewIf is a compare-and-swap on the application status; a stale expected
// status surfaces as a conflict the handler maps to 409.
func (r *Repository) ReviewIf(ctx context.Context, id uuid.UUID, expected, next, notes string) (*domain.Application, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.NPO{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]interface{}{"status": next, "review_notes": notes})
	if res.Error != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to record review decision",
			res.Error,
			"e1c8f4a7-6b30-4d92-8e1f-9a5c2d7b0e36",
		)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInvalidState,
			fmt.Sprintf("review conflict: application is already %s", current.Status),
			nil,
			"0f7b3e9c-5d14-4a68-b7f0-8c2a6e1d4f59",
		)
	}
	return r.GetByID(ctx, id)
}

func mapEntity(entity entities.NPO) domain.Application {
	return domain.Application{
		ID:           entity.ID,
		Name:         entity.Name,
		ContactEmail: entity.ContactEmail,
		Status:       entity.Status,
		ReviewNotes:  entity.ReviewNotes,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}
