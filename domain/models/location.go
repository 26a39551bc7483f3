package models

// Location is a named place (city, country) with the UTC offset, in
// minutes, that was in effect where and when its photos were taken.
// Locations are shared reference data: created on first sighting of a
// new (city, country) pair during ingestion and never mutated.
type Location struct {
	ID       uint   `gorm:"primaryKey"`
	City     string `gorm:"not null;uniqueIndex:idx_locations_city_country"`
	Country  string `gorm:"not null;uniqueIndex:idx_locations_city_country"`
	TZOffset int    `gorm:"not null"` // minutes east of UTC
}

func (Location) TableName() string {
	return "locations"
}

func (l Location) String() string {
	if l.City != "" && l.Country != "" {
		return l.City + ", " + l.Country
	}
	if l.Country != "" {
		return l.Country
	}
	return "an undisclosed location"
}
