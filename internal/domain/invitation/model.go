package invitation

import (
	"time"

	"github.com/google/uuid"
)

// Invitation statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRevoked  = "revoked"
	StatusExpired  = "expired"
)

// Member roles an invitation can offer.
const (
	RoleAdmin   = "admin"
	RoleCoAdmin = "co_admin"
	RoleStaff   = "staff"
)

// Invitation is the domain view of one pending team invitation.
type Invitation struct {
	ID          uuid.UUID `json:"id"`
	NPOID       uuid.UUID `json:"npo_id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	InvitedByID uuid.UUID `json:"invited_by_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is the minimal account view the invitation flow needs.
type User struct {
	ID       uuid.UUID
	Email    string
	FullName string
}

// ValidRole reports whether the role is one an invitation may offer.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCoAdmin, RoleStaff:
		return true
	default:
		return false
	}
}
