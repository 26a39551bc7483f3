package models

import (
	"time"

	"gorm.io/datatypes"
)

// RawMetadata is the audit trail of the exact payload submitted at
// ingestion time, linked to its photo by content hash.
type RawMetadata struct {
	ID          uint           `gorm:"primaryKey"`
	Metadata    datatypes.JSON `gorm:"not null"`
	PhotoSHA256 string         `gorm:"size:64;not null;index"`

	CreatedAt time.Time

	// Relations
	Photo Photo `gorm:"foreignKey:PhotoSHA256;references:SHA256;constraint:OnDelete:CASCADE"`
}

func (RawMetadata) TableName() string {
	return "raw_metadata"
}
