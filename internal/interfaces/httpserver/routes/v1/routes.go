package v1

import (
	"github.com/gin-gonic/gin"

	"augeo-server/services/admin-api/internal/infrastructure/auth"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	auth     *auth.Validator
}

func NewRoutes(provider *handlers.Provider, authValidator *auth.Validator) *Routes {
	return &Routes{handlers: provider, auth: authValidator}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	// Item media lifecycle. Listing is public for published items; the
	// handler rejects drafts for unauthenticated callers.
	media := group.Group("/events/:event_id/auction-items/:item_id/media")
	media.GET("", r.auth.OptionalMiddleware(), r.handlers.Media.List)
	media.POST("/upload-url", r.auth.Middleware(), r.handlers.Media.RequestUploadURL)
	media.POST("/confirm", r.auth.Middleware(), r.handlers.Media.ConfirmUpload)
	media.PATCH("/reorder", r.auth.Middleware(), r.handlers.Media.Reorder)
	media.DELETE("/:media_id", r.auth.Middleware(), r.handlers.Media.Delete)

	// Scanner callback, reachable only on the internal network.
	group.POST("/internal/media/:media_id/scan-result", r.handlers.Media.ScanResult)

	admin := group.Group("/admin", r.auth.Middleware())
	admin.GET("/npos/applications", r.handlers.Admin.ListApplications)
	admin.POST("/npos/:npo_id/review", r.handlers.Admin.Review)

	npos := group.Group("/npos/:npo_id/invitations", r.auth.Middleware())
	npos.POST("", r.handlers.Invitation.Create)
	npos.GET("", r.handlers.Invitation.List)
	npos.DELETE("/:invitation_id", r.handlers.Invitation.Revoke)

	// Token-bearing acceptance link works without a session.
	group.POST("/invitations/accept", r.handlers.Invitation.Accept)
}
