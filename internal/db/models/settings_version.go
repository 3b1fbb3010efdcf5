package models

import "time"

// SettingsVersion is an immutable snapshot of a site's settings payload,
// written on every settings update. Versions power the settings history view
// and rollback: rolling back writes the old snapshot as a brand new version
// rather than rewriting history.
type SettingsVersion struct {
	// ID is the unique identifier for the version (UUID).
	ID string `gorm:"primaryKey;size:40"`
	// SiteID is the site this snapshot belongs to.
	SiteID string `gorm:"size:40;not null;index"`
	// Snapshot is the full JSON settings document at the time of the write.
	Snapshot []byte `gorm:"type:blob"`
	// UserID is the user who performed the write.
	UserID uint64
	// UserEmail is the email of that user, denormalized so history survives
	// user deletion.
	UserEmail string `gorm:"size:255"`
	// Reason is a free-form note describing why the settings changed.
	Reason string `gorm:"size:255"`
	// CreatedAt is the timestamp when the snapshot was taken (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the SettingsVersion model.
func (SettingsVersion) TableName() string {
	return "settings_versions"
}
