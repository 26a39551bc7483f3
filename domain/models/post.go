package models

import "time"

// Post records that a photo was published on a platform. The composite
// unique index is the dedup ledger: a photo goes out to a given
// platform at most once.
type Post struct {
	ID          uint   `gorm:"primaryKey"`
	PhotoSHA256 string `gorm:"size:64;not null;uniqueIndex:idx_posts_photo_platform"`
	PlatformID  uint   `gorm:"not null;uniqueIndex:idx_posts_photo_platform"`

	CreatedAt time.Time

	// Relations
	Photo    Photo    `gorm:"foreignKey:PhotoSHA256;references:SHA256;constraint:OnDelete:CASCADE"`
	Platform Platform `gorm:"foreignKey:PlatformID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}
