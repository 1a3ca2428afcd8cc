package entities

import (
	"time"

	"github.com/google/uuid"
)

// AuctionItem is the parent entity owning a set of media assets.
type AuctionItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index"`
	NPOID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Status    string    `gorm:"type:varchar(16);not null;default:'draft'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AuctionItem) TableName() string {
	return "auction_items"
}
