package npo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	"augeo-server/services/admin-api/internal/infrastructure/notification"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// Repository defines the persistence operations needed by the service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	ListPending(ctx context.Context, offset, limit int) ([]Application, int64, error)
	// ReviewIf transitions the application status from expected to next and
	// records the review notes, failing with a conflict when the expected
	// status no longer holds.
	ReviewIf(ctx context.Context, id uuid.UUID, expected, next, notes string) (*Application, error)
}

// Notifier delivers transactional email.
type Notifier interface {
	Notify(ctx context.Context, email notification.Email) error
}

// Service handles SuperAdmin review of NPO applications.
type Service struct {
	cfg      *config.Config
	repo     Repository
	notifier Notifier
	log      zerolog.Logger
}

func NewService(cfg *config.Config, repo Repository, notifier Notifier, log zerolog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		log:      log.With().Str("component", "npo-service").Logger(),
	}
}

// ListPending returns applications awaiting review, newest first.
func (s *Service) ListPending(ctx context.Context, offset, limit int) ([]Application, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListPending(ctx, offset, limit)
}

// Review approves or rejects a pending application. The status change
// commits first; the notification email is best-effort and a delivery
// failure never unwinds the decision.
func (s *Service) Review(ctx context.Context, npoID uuid.UUID, decision, notes string) (*Application, error) {
	var next string
	switch decision {
	case DecisionApprove:
		next = StatusApproved
	case DecisionReject:
		next = StatusRejected
	default:
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("decision must be %q or %q", DecisionApprove, DecisionReject),
			nil,
			"7f2a9e5c-1d48-4b63-8a7f-3e0c6b9d2f15",
		)
	}

	app, err := s.repo.ReviewIf(ctx, npoID, StatusPendingApproval, next, notes)
	if err != nil {
		return nil, err
	}

	var email notification.Email
	if next == StatusApproved {
		email = notification.ApplicationApproved(app.ContactEmail, app.Name, s.cfg.FrontendAdminURL+"/dashboard")
	} else {
		email = notification.ApplicationRejected(app.ContactEmail, app.Name, notes)
	}
	if err := s.notifier.Notify(ctx, email); err != nil {
		if !errors.Is(err, notification.ErrDeliveryFailed) {
			s.log.Error().Err(err).Msg("unexpected notifier error")
		}
		s.log.Error().
			Err(err).
			Str("recipient", app.ContactEmail).
			Str("kind", email.Kind).
			Msg("review notification failed; decision stands")
	}

	return app, nil
}
