package models

import "fmt"

// Coordinates is a deduplicated geographic point plus altitude. One
// Coordinates row groups every photo taken at exactly that spot; the
// composite unique index is the only guard against concurrent ingests
// creating the same point twice.
type Coordinates struct {
	ID         uint     `gorm:"primaryKey"`
	Latitude   float64  `gorm:"not null;uniqueIndex:idx_coordinates_position"`
	Longitude  float64  `gorm:"not null;uniqueIndex:idx_coordinates_position"`
	Altitude   float64  `gorm:"not null;uniqueIndex:idx_coordinates_position"`
	LocationID uint     `gorm:"not null;index"`
	Location   Location `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
}

func (Coordinates) TableName() string {
	return "coordinates"
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%v,%v,%v in %s", c.Latitude, c.Longitude, c.Altitude, c.Location)
}
