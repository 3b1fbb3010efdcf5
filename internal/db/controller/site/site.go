// Package site provides CRUD operations for tenant sites and their campuses.
package site

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

var (
	// ErrSiteNotFound is returned when a site is not found.
	ErrSiteNotFound = errors.New("site not found")
	// ErrSiteNameEmpty is returned when creating/updating a site with an empty name.
	ErrSiteNameEmpty = errors.New("site name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// List retrieves all sites with their campuses.
func List(db *gorm.DB) ([]models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sites []models.Site
	if result := db.Preload("Campuses").Order("name").Find(&sites); result.Error != nil {
		return nil, result.Error
	}

	return sites, nil
}

// Get retrieves a site by its ID, campuses included.
func Get(db *gorm.DB, id string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var site models.Site
	result := db.Preload("Campuses").Where("id = ?", id).First(&site)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, result.Error
	}

	return &site, nil
}

// Create provisions a site with the given campuses.
func Create(db *gorm.DB, name string, siteType models.SiteType, campusNames []string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSiteNameEmpty
	}

	site := &models.Site{
		ID:   uuid.NewString(),
		Name: name,
		Type: siteType,
	}

	for _, campusName := range campusNames {
		site.Campuses = append(site.Campuses, models.Campus{
			ID:     uuid.NewString(),
			SiteID: site.ID,
			Name:   campusName,
		})
	}

	if result := db.Create(site); result.Error != nil {
		return nil, result.Error
	}

	return site, nil
}

// Update renames a site. The type is fixed at creation.
func Update(db *gorm.DB, id, name string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSiteNameEmpty
	}

	site, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	site.Name = name

	if result := db.Save(site); result.Error != nil {
		return nil, result.Error
	}

	return site, nil
}

// Delete removes a site, its campuses (CASCADE), its settings and its
// settings history. Role assignments scoped to the site are left in place:
// they become inert scopes, not dangling roles, and the admin screens list
// them for cleanup.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", id).Delete(&models.SettingsVersion{}).Error; err != nil {
			return err
		}

		if err := tx.Where("site_id = ?", id).Delete(&models.SiteSettings{}).Error; err != nil {
			return err
		}

		if err := tx.Where("site_id = ?", id).Delete(&models.Campus{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Site{}).Error
	})
}
