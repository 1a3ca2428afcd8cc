package invitation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	"augeo-server/services/admin-api/internal/infrastructure/notification"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// Repository defines the persistence operations needed by the service.
type Repository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invitation, error)
	ListByNPO(ctx context.Context, npoID uuid.UUID) ([]Invitation, error)
	FindPending(ctx context.Context, npoID uuid.UUID, email string) (*Invitation, error)
	// UpdateStatusIf is a compare-and-swap on the invitation status.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next string) (*Invitation, error)
	// AcceptAndJoin flips pending to accepted and inserts the membership row
	// in one transaction; neither mutation is visible without the other.
	AcceptAndJoin(ctx context.Context, invitationID uuid.UUID, npoID, userID uuid.UUID, role string) (*Invitation, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	IsActiveMember(ctx context.Context, npoID, userID uuid.UUID) (bool, error)
	NPOName(ctx context.Context, npoID uuid.UUID) (string, error)
}

// Notifier delivers transactional email.
type Notifier interface {
	Notify(ctx context.Context, email notification.Email) error
}

// Service manages the NPO team invitation lifecycle.
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
		log:      log.With().Str("component", "invitation-service").Logger(),
	}
}

// Create issues a new invitation and emails the signed acceptance link.
// The invitation row commits before the email goes out; a delivery failure
// is logged and does not undo the invitation.
func (s *Service) Create(ctx context.Context, npoID uuid.UUID, email, role string, invitedBy uuid.UUID, message string) (*Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"email is required",
			nil,
			"4d9c2f7e-8a35-4b61-9d4c-0e7f3a8b5c12",
		)
	}
	if !ValidRole(role) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("invalid role %q", role),
			nil,
			"a6e3b8d1-5c97-4f24-8b6e-2d0a9f5c7e48",
		)
	}

	if user, err := s.repo.FindUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if user != nil {
		member, err := s.repo.IsActiveMember(ctx, npoID, user.ID)
		if err != nil {
			return nil, err
		}
		if member {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeConflict,
				fmt.Sprintf("user with email %s is already a member of this organization", email),
				nil,
				"f8b5d2a9-1e63-4c07-9f8b-6a4e0d3c8f75",
			)
		}
	}

	if pending, err := s.repo.FindPending(ctx, npoID, email); err != nil {
		return nil, err
	} else if pending != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict,
			fmt.Sprintf("a pending invitation for %s already exists", email),
			nil,
			"3e7a0c5f-9d28-4b84-a3e7-1f6b8d2c9a50",
		)
	}

	inv := &Invitation{
		ID:          uuid.New(),
		NPOID:       npoID,
		Email:       email,
		Role:        role,
		Status:      StatusPending,
		Message:     message,
		InvitedByID: invitedBy,
		ExpiresAt:   time.Now().UTC().Add(s.cfg.InvitationExpiry),
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	token, err := SignToken(inv, s.cfg.InvitationSignKey)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to sign invitation token",
			err,
			"9b4f7e2d-6a51-4c83-b9f4-0d8e5a2c7b16",
		)
	}

	npoName, err := s.repo.NPOName(ctx, npoID)
	if err != nil {
		return nil, err
	}
	invitationURL := fmt.Sprintf("%s/accept-invitation?token=%s", s.cfg.FrontendAdminURL, token)
	if err := s.notifier.Notify(ctx, notification.MemberInvitation(email, npoName, role, invitationURL)); err != nil {
		s.log.Error().
			Err(err).
			Str("recipient", email).
			Str("kind", "npo_invitation").
			Msg("invitation email failed; invitation stands")
	}

	return inv, nil
}

// Accept redeems an invitation token and adds the invitee to the NPO.
func (s *Service) Accept(ctx context.Context, tokenString string) (*Invitation, error) {
	id, err := ParseToken(tokenString, s.cfg.InvitationSignKey)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"invitation token is invalid or expired",
			err,
			"c2d8f5b3-7e04-4a69-8c2d-5f1a9e6b3d70",
		)
	}

	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if time.Now().UTC().After(inv.ExpiresAt) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"invitation has expired",
			nil,
			"6f1e4a8c-2b75-4d93-a6f1-8e0c3b7d5a24",
		)
	}

	user, err := s.repo.FindUserByEmail(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("no account found for %s; create an account first", inv.Email),
			nil,
			"e5a9c3f7-0d62-4b18-9e5a-4c8f2b6d0a37",
		)
	}

	member, err := s.repo.IsActiveMember(ctx, inv.NPOID, user.ID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict,
			"you are already a member of this organization",
			nil,
			"d5b0f8a3-6e27-4c94-8d5b-1a9c4e7f2b60",
		)
	}

	// CAS pending -> accepted and the membership insert commit together; a
	// concurrent accept or revoke loses on the status guard, and a failed
	// member insert leaves the invitation pending for a clean retry.
	accepted, err := s.repo.AcceptAndJoin(ctx, inv.ID, inv.NPOID, user.ID, inv.Role)
	if err != nil {
		return nil, err
	}

	if inviter, err := s.repo.GetUserByID(ctx, inv.InvitedByID); err == nil && inviter != nil {
		npoName, nameErr := s.repo.NPOName(ctx, inv.NPOID)
		if nameErr != nil {
			npoName = "your organization"
		}
		memberName := user.FullName
		if memberName == "" {
			memberName = user.Email
		}
		if err := s.notifier.Notify(ctx, notification.InvitationAccepted(inviter.Email, npoName, memberName, inv.Role)); err != nil {
			s.log.Error().
				Err(err).
				Str("recipient", inviter.Email).
				Str("kind", "npo_invitation_accepted").
				Msg("acceptance notification failed; membership stands")
		}
	}

	return accepted, nil
}

// Revoke cancels a pending invitation.
func (s *Service) Revoke(ctx context.Context, npoID, invitationID uuid.UUID) error {
	inv, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.NPOID != npoID {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("invitation %s not found for this NPO", invitationID),
			nil,
			"1a7d4b9e-8f36-4c52-b1a7-3e9c0f6d8b45",
		)
	}
	_, err = s.repo.UpdateStatusIf(ctx, invitationID, StatusPending, StatusRevoked)
	return err
}

// List returns all invitations for an NPO, newest first.
func (s *Service) List(ctx context.Context, npoID uuid.UUID) ([]Invitation, error) {
	return s.repo.ListByNPO(ctx, npoID)
}
