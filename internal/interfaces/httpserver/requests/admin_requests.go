package requests

// ReviewRequest carries the SuperAdmin decision over a pending application.
type ReviewRequest struct {
	Decision string `json:"decision" binding:"required"`
	Notes    string `json:"notes"`
}
