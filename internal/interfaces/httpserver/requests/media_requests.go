package requests

import (
	"augeo-server/services/admin-api/internal/domain/media"
)

// UploadURLRequest asks for a write-scoped grant before any bytes move.
type UploadURLRequest struct {
	FileName  string `json:"file_name" binding:"required"`
	MimeType  string `json:"mime_type" binding:"required"`
	FileSize  int64  `json:"file_size" binding:"required"`
	MediaType string `json:"media_type" binding:"required"`
}

// ToDomain converts request to domain model
func (r *UploadURLRequest) ToDomain() media.UploadRequest {
	return media.UploadRequest{
		FileName:  r.FileName,
		MimeType:  r.MimeType,
		FileSize:  r.FileSize,
		MediaType: r.MediaType,
	}
}

// ConfirmUploadRequest identifies the pending asset whose bytes are in place.
type ConfirmUploadRequest struct {
	MediaID string `json:"media_id" binding:"required"`
}

// ScanResultRequest is the scanner callback payload.
type ScanResultRequest struct {
	Passed  *bool  `json:"passed" binding:"required"`
	Details string `json:"details"`
}

// ReorderRequest carries the full sibling id list in its new order.
type ReorderRequest struct {
	MediaIDs []string `json:"media_ids" binding:"required,min=1"`
}
