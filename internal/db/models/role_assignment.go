package models

import "time"

// RoleAssignment links a user to a role, optionally narrowed to a site and/or
// campus. A user may hold several assignments at once, each with its own
// scope, which is what lets one account be "Conference Manager for Site A"
// and "Hotel Manager for Site B" simultaneously.
// A user with zero assignments has no access at all (default-deny).
type RoleAssignment struct {
	// ID is the unique identifier for the assignment.
	ID uint `gorm:"primaryKey"`
	// UserID is the user receiving the role.
	UserID uint64 `gorm:"not null;uniqueIndex:idx_assignment_tuple"`
	// RoleID is the granted role.
	RoleID uint `gorm:"not null;uniqueIndex:idx_assignment_tuple"`
	// SiteID narrows the grant to a single site. Empty means unscoped.
	SiteID string `gorm:"size:40;uniqueIndex:idx_assignment_tuple"`
	// CampusID narrows the grant to a single campus. Empty means unscoped.
	CampusID string `gorm:"size:40;uniqueIndex:idx_assignment_tuple"`
	// CreatedAt is the timestamp when the assignment was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the RoleAssignment model.
// This overrides GORM's default pluralized table naming.
func (RoleAssignment) TableName() string {
	return "role_assignments"
}
