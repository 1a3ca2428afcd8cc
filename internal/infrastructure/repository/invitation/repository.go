package invitation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "augeo-server/services/admin-api/internal/domain/invitation"
	"augeo-server/services/admin-api/internal/infrastructure/database/entities"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// Repository handles invitation and membership persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, inv *domain.Invitation) error {
	entity := entities.Invitation{
		ID:          inv.ID,
		NPOID:       inv.NPOID,
		Email:       inv.Email,
		Role:        inv.Role,
		Status:      inv.Status,
		Message:     inv.Message,
		InvitedByID: inv.InvitedByID,
		ExpiresAt:   inv.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create invitation",
			err,
			"b3f8a5d2-4e71-4c96-8b3f-0a6d9e2c5f84",
		)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	var entity entities.Invitation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("invitation %s not found", id),
				err,
				"7c0e5d3a-9f28-4b64-a7c0-1d8b4f6e2a59",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load invitation",
			err,
			"d9b2e7f4-3a86-4c10-9d9b-5e0a8c3f7b62",
		)
	}
	inv := mapEntity(entity)
	return &inv, nil
}

func (r *Repository) ListByNPO(ctx context.Context, npoID uuid.UUID) ([]domain.Invitation, error) {
	var rows []entities.Invitation
	err := r.db.WithContext(ctx).
		Where("npo_id = ?", npoID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list invitations",
			err,
			"4a6f9c1e-7d53-4b27-84a6-2e8b0d5c9f31",
		)
	}
	invs := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		invs = append(invs, mapEntity(row))
	}
	return invs, nil
}

func (r *Repository) FindPending(ctx context.Context, npoID uuid.UUID, email string) (*domain.Invitation, error) {
	var entity entities.Invitation
	err := r.db.WithContext(ctx).
		Where("npo_id = ? AND email = ? AND status = ?", npoID, email, domain.StatusPending).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to look up pending invitation",
			err,
			"0d8c4b7f-2e95-4a63-b0d8-6f1a3e9c5d27",
		)
	}
	inv := mapEntity(entity)
	return &inv, nil
}

func (r *Repository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next string) (*domain.Invitation, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Invitation{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update invitation status",
			res.Error,
			"f6a1d8e3-5b24-4c70-9f6a-8d2c0b7e4a93",
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
			fmt.Sprintf("invitation conflict: status is %s, expected %s", current.Status, expected),
			nil,
			"8b5e2f9d-0c47-4a31-88b5-4e6d1a3f7c08",
		)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to look up user by email",
			err,
			"2f9d6a4c-8e13-4b57-92f9-0b5e7c1a8d64",
		)
	}
	return &domain.User{ID: entity.ID, Email: entity.Email, FullName: entity.FullName}, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to look up user",
			err,
			"a0c7e4b9-6d28-4f53-8a0c-3b9f5d1e7c46",
		)
	}
	return &domain.User{ID: entity.ID, Email: entity.Email, FullName: entity.FullName}, nil
}

func (r *Repository) IsActiveMember(ctx context.Context, npoID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.NPOMember{}).
		Where("npo_id = ? AND user_id = ? AND status = ?", npoID, userID, "active").
		Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to check membership",
			err,
			"5e3b8f0a-1c76-4d24-95e3-7a4d9c2b6f18",
		)
	}
	return count > 0, nil
}

// AcceptAndJoin performs the status flip and the membership insert inside a
// single transaction. A rollback on either side leaves the invitation pending.
func (r *Repository) AcceptAndJoin(ctx context.Context, invitationID uuid.UUID, npoID, userID uuid.UUID, role string) (*domain.Invitation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Invitation{}).
			Where("id = ? AND status = ?", invitationID, domain.StatusPending).
			Update("status", domain.StatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		member := entities.NPOMember{
			ID:     uuid.New(),
			NPOID:  npoID,
			UserID: userID,
			Role:   role,
			Status: "active",
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			current, getErr := r.GetByID(ctx, invitationID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeInvalidState,
				fmt.Sprintf("invitation conflict: status is %s, expected %s", current.Status, domain.StatusPending),
				nil,
				"e8d5a2c7-9f41-4b36-8e8d-0c6b3f9a5d72",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to accept invitation",
			err,
			"6c2a9f5e-3d81-4b47-a6c2-0e8b5d1f9a34",
		)
	}
	return r.GetByID(ctx, invitationID)
}

func (r *Repository) NPOName(ctx context.Context, npoID uuid.UUID) (string, error) {
	var entity entities.NPO
	err := r.db.WithContext(ctx).Select("name").Where("id = ?", npoID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("NPO %s not found", npoID),
				err,
				"3c1f7d5b-4a90-4e68-a3c1-9e2a8b6d0f54",
			)
		}
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load NPO name",
			err,
			"9f4e1b8d-7c25-4a09-b9f4-5d0c2e6a3b87",
		)
	}
	return entity.Name, nil
}

func mapEntity(entity entities.Invitation) domain.Invitation {
	return domain.Invitation{
		ID:          entity.ID,
		NPOID:       entity.NPOID,
		Email:       entity.Email,
		Role:        entity.Role,
		Status:      entity.Status,
		Message:     entity.Message,
		InvitedByID: entity.InvitedByID,
		ExpiresAt:   entity.ExpiresAt,
		CreatedAt:   entity.CreatedAt,
	}
}
