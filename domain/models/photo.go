package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo is an append-only fact about an ingested photograph. The ID is
// issued by Cloudflare Images when the binary is uploaded; the SHA-256
// content hash is the natural key and rejects duplicate ingests.
type Photo struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid"`
	Filename      string    `gorm:"size:255;not null"`
	SHA256        string    `gorm:"size:64;uniqueIndex;not null"`
	Timestamp     time.Time `gorm:"not null"`
	CoordinatesID *uint     `gorm:"index"`

	CreatedAt time.Time

	// Relations
	Coordinates *Coordinates `gorm:"foreignKey:CoordinatesID;constraint:OnDelete:SET NULL"`
}

func (Photo) TableName() string {
	return "photos"
}
