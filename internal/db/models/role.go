package models

import "time"

// Role represents a role in the role-based access control (RBAC) system.
// Roles are named bundles of permissions that are granted to users through
// role assignments. A role either belongs to a single site (a tenant-custom
// role) or is global and reusable across all sites.
type Role struct {
	// ID is the unique identifier for the role. Roles are always looked up
	// by ID, never by name, since two tenants may own same-named custom roles.
	ID uint `gorm:"primaryKey"`
	// Name is the display name of the role (e.g., "SUPER_ADMIN", "HOTEL_MANAGER").
	Name string `gorm:"size:100;not null;uniqueIndex:idx_role_name_site"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255"`
	// SiteID is the owning site for a tenant-custom role.
	// An empty value means the role is global and usable by every tenant.
	SiteID string `gorm:"size:40;uniqueIndex:idx_role_name_site"`
	// IsSystem indicates if this is a system role that cannot be deleted.
	IsSystem bool `gorm:"default:false"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}
