package requests

// CreateInvitationRequest invites an email address into an NPO team.
type CreateInvitationRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required"`
	Message     string `json:"message"`
	InvitedByID string `json:"invited_by_id" binding:"required"`
}

// AcceptInvitationRequest redeems a signed invitation token.
type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}
