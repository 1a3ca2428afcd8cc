package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	domain "augeo-server/services/admin-api/internal/domain/media"
	"augeo-server/services/admin-api/internal/infrastructure/auth"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/requests"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/responses"
	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// MediaHandler exposes the auction item media lifecycle endpoints.
type MediaHandler struct {
	cfg     *config.Config
	service *domain.Service
	authv   *auth.Validator
	log     zerolog.Logger
}

func NewMediaHandler(cfg *config.Config, service *domain.Service, authValidator *auth.Validator, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		cfg:     cfg,
		service: service,
		authv:   authValidator,
		log:     log.With().Str("component", "media-handler").Logger(),
	}
}

func parseItemPath(c *gin.Context) (eventID, itemID uuid.UUID, ok bool) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"event_id must be a valid UUID", "0f6d3a9c-7b25-4e81-90f6-4c8a2e5d7b13")
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err = uuid.Parse(c.Param("item_id"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"item_id must be a valid UUID", "8c2e6b4f-1d79-4a35-b8c2-0f5d9a3e6c47")
		return uuid.Nil, uuid.Nil, false
	}
	return eventID, itemID, true
}

// RequestUploadURL godoc
// @Summary      Request presigned upload URL
// @Description  Validates size and MIME limits, records a pending media row and returns a write-scoped presigned URL. Client uploads directly to blob storage.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        event_id  path      string                     true  "Event ID"
// @Param        item_id   path      string                     true  "Auction item ID"
// @Param        request   body      requests.UploadURLRequest  true  "Upload request"
// @Success      200       {object}  responses.UploadGrantResponse
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Failure      413       {object}  responses.ErrorResponse
// @Failure      503       {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/events/{event_id}/auction-items/{item_id}/media/upload-url [post]
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	eventID, itemID, ok := parseItemPath(c)
	if !ok {
		return
	}

	var req requests.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			err.Error(), "5b9f2d7a-3e64-4c18-a5b9-8d0c4f6e2a31")
		return
	}

	grant, err := h.service.RequestUpload(c.Request.Context(), eventID, itemID, req.ToDomain())
	if err != nil {
		responses.HandleError(c, err, "failed to issue upload grant")
		return
	}

	c.JSON(http.StatusOK, responses.BuildUploadGrantResponse(grant))
}

// ConfirmUpload godoc
// @Summary      Confirm a completed upload
// @Description  Transitions the pending media row to uploaded and enqueues content scanning. Exactly one of two concurrent confirmations wins.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        event_id  path      string                        true  "Event ID"
// @Param        item_id   path      string                        true  "Auction item ID"
// @Param        request   body      requests.ConfirmUploadRequest true  "Confirmation"
// @Success      200       {object}  responses.MediaAssetResponse
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Failure      409       {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/events/{event_id}/auction-items/{item_id}/media/confirm [post]
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	eventID, itemID, ok := parseItemPath(c)
	if !ok {
		return
	}

	var req requests.ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			err.Error(), "e7a4c9f2-6b58-4d03-9e7a-1c5f8b2d6a94")
		return
	}
	mediaID, err := uuid.Parse(req.MediaID)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"media_id must be a valid UUID", "2d8b5f0c-9a37-4e62-82d8-6e1a4c9f3b75")
		return
	}

	asset, err := h.service.ConfirmUpload(c.Request.Context(), eventID, itemID, mediaID)
	if err != nil {
		responses.HandleError(c, err, "failed to confirm upload")
		return
	}

	c.JSON(http.StatusOK, responses.BuildMediaAssetResponse(asset, ""))
}

// List godoc
// @Summary      List item media
// @Description  Returns the item's media ordered by display_order. Scanned assets carry a time-boxed read URL. Draft items require authentication.
// @Tags         media
// @Produce      json
// @Param        event_id  path      string  true  "Event ID"
// @Param        item_id   path      string  true  "Auction item ID"
// @Success      200       {object}  responses.MediaListResponse
// @Failure      401       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/events/{event_id}/auction-items/{item_id}/media [get]
func (h *MediaHandler) List(c *gin.Context) {
	eventID, itemID, ok := parseItemPath(c)
	if !ok {
		return
	}

	authenticated := auth.IsAuthenticated(c, h.authv)
	assets, err := h.service.List(c.Request.Context(), eventID, itemID, authenticated)
	if err != nil {
		responses.HandleError(c, err, "failed to list media")
		return
	}

	readURLs := h.service.ReadGrants(c.Request.Context(), assets)
	c.JSON(http.StatusOK, responses.BuildMediaListResponse(assets, readURLs))
}

// Reorder godoc
// @Summary      Reorder item media
// @Description  Applies a client-supplied total order. The id list must exactly match the current sibling set; the change is all-or-nothing.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        event_id  path      string                  true  "Event ID"
// @Param        item_id   path      string                  true  "Auction item ID"
// @Param        request   body      requests.ReorderRequest true  "Ordered media ids"
// @Success      200       {object}  responses.MediaListResponse
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/events/{event_id}/auction-items/{item_id}/media/reorder [patch]
func (h *MediaHandler) Reorder(c *gin.Context) {
	eventID, itemID, ok := parseItemPath(c)
	if !ok {
		return
	}

	var req requests.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			err.Error(), "c4f1a8d6-0e93-4b27-8c4f-5a2d7e9b1c68")
		return
	}

	ordered := make([]uuid.UUID, 0, len(req.MediaIDs))
	for _, raw := range req.MediaIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"media_ids must contain valid UUIDs", "9e6b3c0f-8d52-4a74-b9e6-2f4a8c1d5b30")
			return
		}
		ordered = append(ordered, id)
	}

	assets, err := h.service.Reorder(c.Request.Context(), eventID, itemID, ordered)
	if err != nil {
		responses.HandleError(c, err, "failed to reorder media")
		return
	}

	c.JSON(http.StatusOK, responses.BuildMediaListResponse(assets, nil))
}

// Delete godoc
// @Summary      Delete a media asset
// @Description  Removes the blob best-effort, then deletes the metadata row. Row deletion is the authoritative success signal.
// @Tags         media
// @Param        event_id  path  string  true  "Event ID"
// @Param        item_id   path  string  true  "Auction item ID"
// @Param        media_id  path  string  true  "Media ID"
// @Success      204       "no content"
// @Failure      404       {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/events/{event_id}/auction-items/{item_id}/media/{media_id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	eventID, itemID, ok := parseItemPath(c)
	if !ok {
		return
	}
	mediaID, err := uuid.Parse(c.Param("media_id"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"media_id must be a valid UUID", "6a0d8e3b-4f17-4c95-86a0-9b2c5f7d3e41")
		return
	}

	if err := h.service.Delete(c.Request.Context(), eventID, itemID, mediaID); err != nil {
		responses.HandleError(c, err, "failed to delete media")
		return
	}

	c.Status(http.StatusNoContent)
}

// ScanResult godoc
// @Summary      Report a scan verdict
// @Description  Scanner callback settling an uploaded asset into scanned or quarantined. Duplicate callbacks with the same verdict are accepted.
// @Tags         internal
// @Accept       json
// @Produce      json
// @Param        media_id  path      string                     true  "Media ID"
// @Param        request   body      requests.ScanResultRequest true  "Scan verdict"
// @Success      200       {object}  responses.MediaAssetResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Failure      409       {object}  responses.ErrorResponse
// @Router       /v1/internal/media/{media_id}/scan-result [post]
func (h *MediaHandler) ScanResult(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("media_id"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"media_id must be a valid UUID", "1b7e4a9d-5c30-4f68-a1b7-8e2f6d0c4a59")
		return
	}

	var req requests.ScanResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			err.Error(), "f3c8d1a5-7b62-4e04-9f3c-0d6a2b8e5c17")
		return
	}

	asset, err := h.service.CompleteScan(c.Request.Context(), mediaID, *req.Passed, req.Details)
	if err != nil {
		responses.HandleError(c, err, "failed to record scan result")
		return
	}

	c.JSON(http.StatusOK, responses.BuildMediaAssetResponse(asset, ""))
}
