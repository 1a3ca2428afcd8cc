package responses

import (
	"time"

	"augeo-server/services/admin-api/internal/domain/invitation"
)

// InvitationResponse is the external view of one team invitation.
type InvitationResponse struct {
	ID          string    `json:"id"`
	NPOID       string    `json:"npo_id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	InvitedByID string    `json:"invited_by_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// BuildInvitationResponse creates response from domain object
func BuildInvitationResponse(inv *invitation.Invitation) *InvitationResponse {
	return &InvitationResponse{
		ID:          inv.ID.String(),
		NPOID:       inv.NPOID.String(),
		Email:       inv.Email,
		Role:        inv.Role,
		Status:      inv.Status,
		Message:     inv.Message,
		InvitedByID: inv.InvitedByID.String(),
		ExpiresAt:   inv.ExpiresAt,
		CreatedAt:   inv.CreatedAt,
	}
}

// InvitationListResponse wraps an NPO's invitations, newest first.
type InvitationListResponse struct {
	Items []InvitationResponse `json:"items"`
	Total int                  `json:"total"`
}

// BuildInvitationListResponse creates the listing response
func BuildInvitationListResponse(invs []invitation.Invitation) *InvitationListResponse {
	items := make([]InvitationResponse, 0, len(invs))
	for i := range invs {
		items = append(items, *BuildInvitationResponse(&invs[i]))
	}
	return &InvitationListResponse{Items: items, Total: len(items)}
}
