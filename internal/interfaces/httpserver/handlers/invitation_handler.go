package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "augeo-server/services/admin-api/internal/domain/invitation"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/requests"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/responses"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// InvitationHandler exposes the NPO team invitation endpoints.
type InvitationHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewInvitationHandler(service *domain.Service, log zerolog.Logger) *InvitationHandler {
	return &InvitationHandler{
		service: service,
		log:     log.With().Str("component", "invitation-handler").Logger(),
	}
}

func parseNPOPath(c *gin.Context) (uuid.UUID, bool) {
	npoID, err := uuid.Parse(c.Param("npo_id"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"npo_id must be a valid UUID", "b8e2f6a4-9c13-4d57-8b8e-3f0a5d7c9e21")
		return uuid.Nil, false
	}
	return npoID, true
}

// Create godoc
// @Summary      Invite a team member
// @Description  Issues a pending invitation and emails a signed acceptance link. Duplicate pending invitations and existing members are rejected.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        npo_id   path      string                           true  "NPO ID"
// @Param        request  body      requests.CreateInvitationRequest true  "Invitation"
// @Success      201      {object}  responses.InvitationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      409      {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/npos/{npo_id}/invitations [post]
func (h *InvitationHandler) Create(c *gin.Context) {
	npoID, ok := parseNPOPath(c)
	if !ok {
		return
	}

	var req requests.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			err.Error(), "0c5f9b3e-7a28-4d64-90c5-2e8b4f6a0d37")
		return
	}
	invitedBy, err := uuid.Parse(req.InvitedByID)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invited_by_id must be a valid UUID", "e9d3a7f1-5b46-4c82-8e9d-0f2c6a4b8d53")
		return
	}

	inv, err := h.service.Create(c.Request.Context(), npoID, req.Email, req.Role, invitedBy, req.Message)
	if err != nil {
		responses.HandleError(c, err, "failed to create invitation")
		return
	}

	c.JSON(http.StatusCreated, responses.BuildInvitationResponse(inv))
}

// List godoc
// @Summary      List NPO invitations
// @Description  Returns all invitations for the NPO, newest first.
// @Tags         invitations
// @Produce      json
// @Param        npo_id  path      string  true  "NPO ID"
// @Success      200     {object}  responses.InvitationListResponse
// @Security     BearerAuth
// @Router       /v1/npos/{npo_id}/invitations [get]
func (h *InvitationHandler) List(c *gin.Context) {
	npoID, ok := parseNPOPath(c)
	if !ok {
		return
	}

	invs, err := h.service.List(c.Request.Context(), npoID)
	if err != nil {
		responses.HandleError(c, err, "failed to list invitations")
		return
	}

	c.JSON(http.StatusOK, responses.BuildInvitationListResponse(invs))
}

// Revoke godoc
// @Summary      Revoke a pending invitation
// @Description  Cancels a pending invitation. An already accepted or revoked invitation fails with a conflict.
// @Tags         invitations
// @Param        npo_id         path  string  true  "NPO ID"
// @Param        invitation_id  path  string  true  "Invitation ID"
// @Success      204            "no content"
// @Failure      404            {object}  responses.ErrorResponse
// @Failure      409            {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/npos/{npo_id}/invitations/{invitation_id} [delete]
func (h *InvitationHandler) Revoke(c *gin.Context) {
	npoID, ok := parseNPOPath(c)
	if !ok {
		return
	}
	invitationID, err := uuid.Parse(c.Param("invitation_id"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invitation_id must be a valid UUID", "4f8b2d6a-0e57-4c93-a4f8-7d1c5e9b3f60")
		return
	}

	if err := h.service.Revoke(c.Request.Context(), npoID, invitationID); err != nil {
		responses.HandleError(c, err, "failed to revoke invitation")
		return
	}

	c.Status(http.StatusNoContent)
}

// Accept godoc
// @Summary      Accept an invitation
// @Description  Redeems a signed invitation token and adds the invitee to the NPO team. Requires an existing account for the invited email.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request  body      requests.AcceptInvitationRequest  true  "Signed token"
// @Success      200      {object}  responses.InvitationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Failure      409      {object}  responses.ErrorResponse
// @Router       /v1/invitations/accept [post]
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req requests.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			err.Error(), "a2c7e5b9-3f80-4d16-8a2c-6b4f0d9e3c72")
		return
	}

	inv, err := h.service.Accept(c.Request.Context(), req.Token)
	if err != nil {
		responses.HandleError(c, err, "failed to accept invitation")
		return
	}

	c.JSON(http.StatusOK, responses.BuildInvitationResponse(inv))
}
