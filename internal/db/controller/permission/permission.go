// Package permission provides read and provisioning operations for the
// permission catalog. The catalog is reference data: rows are created at
// seed time and through administrative tooling, never by end-user flows.
package permission

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

var (
	// ErrPermissionNotFound is returned when a permission is not found.
	ErrPermissionNotFound = errors.New("permission not found")
	// ErrPermissionExists is returned when creating a duplicate (action, resource) pair.
	ErrPermissionExists = errors.New("permission already exists")
	// ErrActionEmpty is returned when the action is empty.
	ErrActionEmpty = errors.New("permission action cannot be empty")
	// ErrResourceEmpty is returned when the resource is empty.
	ErrResourceEmpty = errors.New("permission resource cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// List retrieves the full permission catalog.
func List(db *gorm.DB) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission
	if result := db.Order("resource, action").Find(&permissions); result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}

// Get retrieves a permission by its ID.
func Get(db *gorm.DB, id uint) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permission models.Permission
	result := db.First(&permission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, result.Error
	}

	return &permission, nil
}

// Create adds a permission to the catalog.
func Create(db *gorm.DB, action, resource, description string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if action == "" {
		return nil, ErrActionEmpty
	}
	if resource == "" {
		return nil, ErrResourceEmpty
	}

	var existing models.Permission
	result := db.Where("action = ? AND resource = ?", action, resource).First(&existing)
	if result.Error == nil {
		return nil, ErrPermissionExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	permission := &models.Permission{
		Action:      action,
		Resource:    resource,
		Description: description,
	}

	if result = db.Create(permission); result.Error != nil {
		return nil, result.Error
	}

	return permission, nil
}
