package models

// Platform is a social platform photos get posted to. Rows are static
// reference data seeded at startup.
type Platform struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null;uniqueIndex"`
	ProfileURL string `gorm:"not null;uniqueIndex"`
}

func (Platform) TableName() string {
	return "platforms"
}

func (p Platform) String() string {
	return p.Name
}
