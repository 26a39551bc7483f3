package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an uploader account. Only authenticated uploaders may call
// the mutating RPC methods.
type User struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"size:50;not null;default:'uploader'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
