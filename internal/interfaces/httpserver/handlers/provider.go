package handlers

import (
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	invitationdomain "augeo-server/services/admin-api/internal/domain/invitation"
	mediadomain "augeo-server/services/admin-api/internal/domain/media"
	npodomain "augeo-server/services/admin-api/internal/domain/npo"
	"augeo-server/services/admin-api/internal/infrastructure/auth"
)

// Provider wires HTTP handlers.
type Provider struct {
	Media      *MediaHandler
	Admin      *AdminHandler
	Invitation *InvitationHandler
}

func NewProvider(
	cfg *config.Config,
	mediaService *mediadomain.Service,
	npoService *npodomain.Service,
	invitationService *invitationdomain.Service,
	authValidator *auth.Validator,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Media:      NewMediaHandler(cfg, mediaService, authValidator, log),
		Admin:      NewAdminHandler(npoService, log),
		Invitation: NewInvitationHandler(invitationService, log),
	}
}
