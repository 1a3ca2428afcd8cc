package entities

import (
	"time"

	"github.com/google/uuid"
)

// AuctionItemMedia represents the persisted metadata for one uploaded asset.
// The bytes themselves live in blob storage under BlobName.
type AuctionItemMedia struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuctionItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	MediaType     string    `gorm:"type:varchar(16);not null"`
	FileName      string    `gorm:"type:varchar(255);not null"`
	MimeType      string    `gorm:"type:varchar(64);not null"`
	FileSize      int64     `gorm:"not null"`
	BlobName      string    `gorm:"type:varchar(512);uniqueIndex;not null"`
	Status        string    `gorm:"type:varchar(16);not null"`
	DisplayOrder  int       `gorm:"not null;default:0"`
	ThumbnailPath string    `gorm:"type:varchar(512)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (AuctionItemMedia) TableName() string {
	return "auction_item_media"
}
