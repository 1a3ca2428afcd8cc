package responses

import (
	"time"

	"augeo-server/services/admin-api/internal/domain/npo"
)

// ApplicationResponse is the external view of one NPO application.
type ApplicationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Status       string    `json:"status"`
	ReviewNotes  string    `json:"review_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BuildApplicationResponse creates response from domain object
func BuildApplicationResponse(app *npo.Application) *ApplicationResponse {
	return &ApplicationResponse{
		ID:           app.ID.String(),
		Name:         app.Name,
		ContactEmail: app.ContactEmail,
		Status:       app.Status,
		ReviewNotes:  app.ReviewNotes,
		CreatedAt:    app.CreatedAt,
		UpdatedAt:    app.UpdatedAt,
	}
}

// ApplicationListResponse wraps a paginated pending-application listing.
type ApplicationListResponse struct {
	Items  []ApplicationResponse `json:"items"`
	Total  int64                 `json:"total"`
	Offset int                   `json:"offset"`
	Limit  int                   `json:"limit"`
}

// BuildApplicationListResponse creates the paginated listing
func BuildApplicationListResponse(apps []npo.Application, total int64, offset, limit int) *ApplicationListResponse {
	items := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, *BuildApplicationResponse(&apps[i]))
	}
	return &ApplicationListResponse{Items: items, Total: total, Offset: offset, Limit: limit}
}
