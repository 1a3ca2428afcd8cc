package media

import (
	"time"

	"github.com/google/uuid"
)

// MediaType enumerates the supported media kinds. The kind is fixed at
// creation and decides which MIME types are accepted.
const (
	TypeImage = "image"
	TypeVideo = "video"
	TypeFlyer = "flyer"
)

// Lifecycle statuses. A row is created pending before any bytes exist,
// becomes uploaded on explicit confirmation, and settles into scanned or
// quarantined when the scan callback arrives. Quarantined rows can only be
// deleted.
const (
	StatusPending     = "pending"
	StatusUploaded    = "uploaded"
	StatusScanned     = "scanned"
	StatusQuarantined = "quarantined"
)

// Asset is the domain view of one uploaded file's metadata.
type Asset struct {
	ID            uuid.UUID `json:"id"`
	AuctionItemID uuid.UUID `json:"auction_item_id"`
	MediaType     string    `json:"media_type"`
	FileName      string    `json:"file_name"`
	MimeType      string    `json:"mime_type"`
	FileSize      int64     `json:"file_size"`
	BlobName      string    `json:"blob_name"`
	Status        string    `json:"status"`
	DisplayOrder  int       `json:"display_order"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UploadRequest carries the validated input for requesting an upload grant.
type UploadRequest struct {
	FileName  string
	MimeType  string
	FileSize  int64
	MediaType string
}

// UploadGrant is returned to the caller so it can PUT the bytes directly to
// blob storage.
type UploadGrant struct {
	AssetID   uuid.UUID `json:"asset_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuctionItem is the slice of the parent entity this domain needs.
type AuctionItem struct {
	ID      uuid.UUID
	EventID uuid.UUID
	NPOID   uuid.UUID
	Status  string
}

// IsDraft reports whether the item is still restricted to its NPO's staff.
func (i AuctionItem) IsDraft() bool {
	return i.Status == "draft"
}

// ScanJob is published for asynchronous content scanning after a confirmed
// upload.
type ScanJob struct {
	AssetID  uuid.UUID `json:"asset_id"`
	BlobName string    `json:"blob_name"`
}

// ThumbnailJob is published for image post-processing.
type ThumbnailJob struct {
	AssetID   uuid.UUID `json:"asset_id"`
	BlobName  string    `json:"blob_name"`
	Thumbnail string    `json:"thumbnail_path"`
}
