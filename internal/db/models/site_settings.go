// Package models contains database model definitions.
package models

import "time"

// SiteSettings holds the settings payload for a single site.
// The payload is an opaque JSON document; the console edits it section by
// section (branding, finance, localization, ...) but the server stores it
// whole. Every write is snapshotted into a SettingsVersion row.
type SiteSettings struct {
	// SiteID is the owning site; one settings row per site.
	SiteID string `gorm:"primaryKey;size:40"`
	// Payload is the JSON settings document.
	Payload []byte `gorm:"type:blob"`
	// UpdatedAt is the timestamp of the last write (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the SiteSettings model.
func (SiteSettings) TableName() string {
	return "site_settings"
}
