package npo

import (
	"time"

	"github.com/google/uuid"
)

// Application review statuses.
const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// Review decisions accepted from the admin surface.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Application is the domain view of an NPO awaiting (or past) review.
type Application struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Status       string    `json:"status"`
	ReviewNotes  string    `json:"review_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
