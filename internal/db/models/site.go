package models

import "time"

// SiteType identifies which vertical portal a site belongs to.
type SiteType string

const (
	// SiteTypeConference is a conference/event site.
	SiteTypeConference SiteType = "CONFERENCE"
	// SiteTypeHotel is a hotel site.
	SiteTypeHotel SiteType = "HOTEL"
	// SiteTypeChurch is a church site.
	SiteTypeChurch SiteType = "CHURCH"
	// SiteTypeSchool is a school site.
	SiteTypeSchool SiteType = "SCHOOL"
	// SiteTypeBank is a bank site.
	SiteTypeBank SiteType = "BANK"
	// SiteTypeHR is a human resources site.
	SiteTypeHR SiteType = "HR"
	// SiteTypeComms is a communications site.
	SiteTypeComms SiteType = "COMMS"
)

// Site represents a tenant in the ecosystem. Role scopes, settings and
// portal data are partitioned by site identity.
type Site struct {
	// ID is the unique identifier for the site (UUID).
	ID string `gorm:"primaryKey;size:40"`
	// Name is the display name of the site.
	Name string `gorm:"size:255;not null"`
	// Type is the vertical this site belongs to.
	Type SiteType `gorm:"type:varchar(20);not null"`
	// Campuses are the sub-tenant locations of this site.
	Campuses []Campus `gorm:"foreignKey:SiteID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the site was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the site was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Site model.
// This overrides GORM's default pluralized table naming.
func (Site) TableName() string {
	return "sites"
}
