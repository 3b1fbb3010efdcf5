// Package assignment provides CRUD operations for role assignments, the
// three-way link between a user, a role and an optional site/campus scope.
package assignment

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

var (
	// ErrAssignmentNotFound is returned when an assignment is not found.
	ErrAssignmentNotFound = errors.New("role assignment not found")
	// ErrAssignmentExists is returned when the exact (user, role, site, campus)
	// tuple is already assigned.
	ErrAssignmentExists = errors.New("role assignment already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// ListByUser retrieves all assignments held by a user. This is the
// hydration input: the result is already filtered the way BuildPrincipal
// expects.
func ListByUser(db *gorm.DB, userID uint64) ([]models.RoleAssignment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var assignments []models.RoleAssignment
	if result := db.Where("user_id = ?", userID).Find(&assignments); result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

// List retrieves every assignment, for the admin assignment screen.
func List(db *gorm.DB) ([]models.RoleAssignment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var assignments []models.RoleAssignment
	if result := db.Find(&assignments); result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

// Create grants a role to a user with an optional site/campus scope.
// The same tuple can only exist once.
func Create(db *gorm.DB, userID uint64, roleID uint, siteID, campusID string) (*models.RoleAssignment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.RoleAssignment
	result := db.Where("user_id = ? AND role_id = ? AND site_id = ? AND campus_id = ?",
		userID, roleID, siteID, campusID).First(&existing)
	if result.Error == nil {
		return nil, ErrAssignmentExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	assignment := &models.RoleAssignment{
		UserID:   userID,
		RoleID:   roleID,
		SiteID:   siteID,
		CampusID: campusID,
	}

	if result = db.Create(assignment); result.Error != nil {
		return nil, result.Error
	}

	return assignment, nil
}

// Delete revokes an assignment. The user's next principal rebuild no longer
// carries the role; snapshots hydrated earlier are unaffected until replaced.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.RoleAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}
