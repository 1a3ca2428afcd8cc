package responses

import (
	"time"

	"github.com/google/uuid"

	"augeo-server/services/admin-api/internal/domain/media"
)

// UploadGrantResponse carries a write-scoped upload URL for the new asset.
type UploadGrantResponse struct {
	AssetID   string    `json:"asset_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BuildUploadGrantResponse creates response from domain object
func BuildUploadGrantResponse(grant *media.UploadGrant) *UploadGrantResponse {
	return &UploadGrantResponse{
		AssetID:   grant.AssetID.String(),
		UploadURL: grant.UploadURL,
		ExpiresAt: grant.ExpiresAt,
	}
}

// MediaAssetResponse is the external view of one media metadata record.
type MediaAssetResponse struct {
	ID            string    `json:"id"`
	AuctionItemID string    `json:"auction_item_id"`
	MediaType     string    `json:"media_type"`
	FileName      string    `json:"file_name"`
	MimeType      string    `json:"mime_type"`
	FileSize      int64     `json:"file_size"`
	Status        string    `json:"status"`
	DisplayOrder  int       `json:"display_order"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	ReadURL       string    `json:"read_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BuildMediaAssetResponse creates response from domain object
func BuildMediaAssetResponse(asset *media.Asset, readURL string) *MediaAssetResponse {
	return &MediaAssetResponse{
		ID:            asset.ID.String(),
		AuctionItemID: asset.AuctionItemID.String(),
		MediaType:     asset.MediaType,
		FileName:      asset.FileName,
		MimeType:      asset.MimeType,
		FileSize:      asset.FileSize,
		Status:        asset.Status,
		DisplayOrder:  asset.DisplayOrder,
		ThumbnailPath: asset.ThumbnailPath,
		ReadURL:       readURL,
		CreatedAt:     asset.CreatedAt,
		UpdatedAt:     asset.UpdatedAt,
	}
}

// MediaListResponse wraps an ordered sibling listing.
type MediaListResponse struct {
	Items []MediaAssetResponse `json:"items"`
	Total int                  `json:"total"`
}

// BuildMediaListResponse creates the ordered listing with optional read URLs
func BuildMediaListResponse(assets []media.Asset, readURLs map[uuid.UUID]string) *MediaListResponse {
	items := make([]MediaAssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, *BuildMediaAssetResponse(&assets[i], readURLs[assets[i].ID]))
	}
	return &MediaListResponse{Items: items, Total: len(items)}
}
