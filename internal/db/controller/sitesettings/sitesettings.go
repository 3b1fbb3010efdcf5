// Package sitesettings provides versioned storage for per-site settings.
// Every write snapshots the new payload into the settings_versions table;
// rollback replays an old snapshot as a fresh write, so history is
// append-only and never rewritten.
package sitesettings

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

const (
	siteIDQueryPattern = "site_id = ?"
)

var (
	// ErrSettingsNotFound is returned when a site has no settings row yet.
	ErrSettingsNotFound = errors.New("site settings not found")
	// ErrVersionNotFound is returned when a settings version is not found.
	ErrVersionNotFound = errors.New("settings version not found")
	// ErrSiteIDEmpty is returned when the site ID is empty.
	ErrSiteIDEmpty = errors.New("site id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves the current settings payload for a site.
func Get(db *gorm.DB, siteID string) (*models.SiteSettings, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if siteID == "" {
		return nil, ErrSiteIDEmpty
	}

	var settings models.SiteSettings
	result := db.Where(siteIDQueryPattern, siteID).First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, result.Error
	}

	return &settings, nil
}

// Set writes a site's settings payload and snapshots it into the version
// history, recording who wrote it and why.
func Set(db *gorm.DB, siteID string, payload []byte, actor models.User, reason string) (*models.SiteSettings, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if siteID == "" {
		return nil, ErrSiteIDEmpty
	}

	settings := &models.SiteSettings{
		SiteID:  siteID,
		Payload: payload,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(settings).Error; err != nil {
			return err
		}

		version := models.SettingsVersion{
			ID:        uuid.NewString(),
			SiteID:    siteID,
			Snapshot:  payload,
			UserID:    actor.ID,
			UserEmail: actor.Email,
			Reason:    reason,
		}

		return tx.Create(&version).Error
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// ListVersions retrieves a site's settings history, newest first.
func ListVersions(db *gorm.DB, siteID string) ([]models.SettingsVersion, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if siteID == "" {
		return nil, ErrSiteIDEmpty
	}

	var versions []models.SettingsVersion
	result := db.Where(siteIDQueryPattern, siteID).Order("created_at DESC").Find(&versions)
	if result.Error != nil {
		return nil, result.Error
	}

	return versions, nil
}

// Rollback restores the snapshot of the given version as the current
// payload. The restore itself is versioned, so rolling back never loses
// history.
func Rollback(db *gorm.DB, siteID, versionID string, actor models.User) (*models.SiteSettings, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if siteID == "" {
		return nil, ErrSiteIDEmpty
	}

	var version models.SettingsVersion
	result := db.Where("id = ? AND site_id = ?", versionID, siteID).First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, result.Error
	}

	reason := fmt.Sprintf("Rolled back to version from %s", version.CreatedAt.Format(time.RFC3339))

	return Set(db, siteID, version.Snapshot, actor, reason)
}
