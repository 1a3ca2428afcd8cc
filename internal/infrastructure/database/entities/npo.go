package entities

import (
	"time"

	"github.com/google/uuid"
)

// NPO represents a nonprofit organization and its application state.
type NPO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	ContactEmail string    `gorm:"type:varchar(255);not null"`
	Status       string    `gorm:"type:varchar(32);not null;default:'pending_approval';index"`
	ReviewNotes  string    `gorm:"type:text"`
	CreatedByID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (NPO) TableName() string {
	return "npos"
}

// NPOMember links a user to an NPO with a role.
type NPOMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	NPOID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(32);not null"`
	Status    string    `gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (NPOMember) TableName() string {
	return "npo_members"
}
