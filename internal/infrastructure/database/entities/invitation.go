package entities

import (
	"time"

	"github.com/google/uuid"
)

// Invitation represents a pending team invitation for an NPO.
type Invitation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	NPOID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Email       string    `gorm:"type:varchar(255);not null;index"`
	Role        string    `gorm:"type:varchar(32);not null"`
	Status      string    `gorm:"type:varchar(16);not null;default:'pending'"`
	Message     string    `gorm:"type:text"`
	InvitedByID uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Invitation) TableName() string {
	return "invitations"
}
