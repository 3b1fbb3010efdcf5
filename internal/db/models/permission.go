package models

import "time"

// Permission represents a specific permission in the authorization system.
// A permission is an (action, resource) pair, e.g. READ on "conference_portal".
// The resource "*" is the wildcard sentinel matching every resource, and the
// action MANAGE subsumes every other action on its resource.
// Permissions are reference data: provisioned at seed time and only changed
// through administrative role-permission editing.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Action is the action allowed on the resource (CREATE, READ, UPDATE,
	// DELETE, MANAGE, EXPORT or IMPORT).
	Action string `gorm:"size:20;not null;uniqueIndex:idx_action_resource"`
	// Resource is the resource this permission applies to
	// (e.g., "site", "user", "conference_portal") or the wildcard "*".
	Resource string `gorm:"size:100;not null;uniqueIndex:idx_action_resource"`
	// Description provides a human-readable explanation of what this permission grants.
	Description string `gorm:"size:255"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
// This overrides GORM's default pluralized table naming.
func (Permission) TableName() string {
	return "permissions"
}
