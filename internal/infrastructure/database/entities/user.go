package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is the minimal account record the admin backend needs for
// invitations and notifications. Full account management lives elsewhere.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
