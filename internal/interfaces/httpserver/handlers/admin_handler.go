package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "augeo-server/services/admin-api/internal/domain/npo"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/requests"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/responses"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// AdminHandler exposes the SuperAdmin NPO application review endpoints.
type AdminHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewAdminHandler(service *domain.Service, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With().Str("component", "admin-handler").Logger(),
	}
}

// ListApplications godoc
// @Summary      List pending NPO applications
// @Description  Returns applications awaiting review, newest first.
// @Tags         admin
// @Produce      json
// @Param        offset  query     int  false  "Pagination offset"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {object}  responses.ApplicationListResponse
// @Security     BearerAuth
// @Router       /v1/admin/npos/applications [get]
func (h *AdminHandler) ListApplications(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	apps, total, err := h.service.ListPending(c.Request.Context(), offset, limit)
	if err != nil {
		responses.HandleError(c, err, "failed to list applications")
		return
	}

	c.JSON(http.StatusOK, responses.BuildApplicationListResponse(apps, total, offset, limit))
}

// Review godoc
// @Summary      Review an NPO application
// @Description  Approves or rejects a pending application and emails the decision to the applicant. A concurrent review loses with a conflict.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        npo_id   path      string                 true  "NPO ID"
// @Param        request  body      requests.ReviewRequest true  "Decision"
// @Success      200      {object}  responses.ApplicationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Failure      409      {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/admin/npos/{npo_id}/review [post]
func (h *AdminHandler) Review(c *gin.Context) {
	npoID, err := uuid.Parse(c.Param("npo_id"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"npo_id must be a valid UUID", "7d4a1f8c-2e65-4b39-87d4-0c9e3b5f8a26")
		return
	}

	var req requests.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			err.Error(), "3a9c6e2d-8f41-4b07-93a9-5b0d7f2c4e68")
		return
	}

	app, err := h.service.Review(c.Request.Context(), npoID, req.Decision, req.Notes)
	if err != nil {
		responses.HandleError(c, err, "failed to review application")
		return
	}

	c.JSON(http.StatusOK, responses.BuildApplicationResponse(app))
}
