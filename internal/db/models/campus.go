package models

import "time"

// Campus represents a physical location belonging to a site, e.g. a church
// campus or a school building. Role assignments may be scoped down to a
// single campus.
type Campus struct {
	// ID is the unique identifier for the campus (UUID).
	ID string `gorm:"primaryKey;size:40"`
	// SiteID is the owning site.
	SiteID string `gorm:"size:40;not null;index"`
	// Name is the display name of the campus.
	Name string `gorm:"size:255;not null"`
	// CreatedAt is the timestamp when the campus was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the campus was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Campus model.
// This overrides GORM's default pluralized table naming.
func (Campus) TableName() string {
	return "campuses"
}
