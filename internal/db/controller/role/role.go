// Package role provides CRUD operations for roles and their permission
// bundles. Roles are always addressed by ID: names are only unique within
// an owning site, and two tenants may own same-named custom roles.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

const (
	roleIDQueryPattern = "role_id = ?"
)

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when creating/updating a role with an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrRoleExists is returned when the owning site already has a role of that name.
	ErrRoleExists = errors.New("role already exists")
	// ErrSystemRole is returned when attempting to delete a system role.
	ErrSystemRole = errors.New("system roles cannot be deleted")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// List retrieves roles usable within the given site: the site's own custom
// roles plus every global role. An empty siteID lists global roles only;
// use ListAll for the unfiltered catalog.
func List(db *gorm.DB, siteID string) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role

	query := db.Order("name")
	if siteID == "" {
		query = query.Where("site_id = ''")
	} else {
		query = query.Where("site_id = '' OR site_id = ?", siteID)
	}

	if result := query.Find(&roles); result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// ListAll retrieves the full role catalog across all sites.
// Principal hydration uses this together with ListLinks.
func ListAll(db *gorm.DB) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	if result := db.Find(&roles); result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// Get retrieves a role by its ID.
func Get(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.First(&role, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// Create creates a role. An empty siteID makes the role global; otherwise
// it is a tenant-custom role owned by that site.
func Create(db *gorm.DB, name, description, siteID string, isSystem bool) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var existing models.Role
	result := db.Where("name = ? AND site_id = ?", name, siteID).First(&existing)
	if result.Error == nil {
		return nil, ErrRoleExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	role := &models.Role{
		Name:        name,
		Description: description,
		SiteID:      siteID,
		IsSystem:    isSystem,
	}

	if result = db.Create(role); result.Error != nil {
		return nil, result.Error
	}

	return role, nil
}

// Update changes a role's name and description. Ownership (SiteID) and the
// system flag are fixed at creation.
func Update(db *gorm.DB, id uint, name, description string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	role, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	role.Name = name
	role.Description = description

	if result := db.Save(role); result.Error != nil {
		return nil, result.Error
	}

	return role, nil
}

// Delete removes a role, its permission links and every assignment granting
// it. System roles are protected. Principals hydrated before the delete keep
// answering from their snapshot; the next rebuild drops the role.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	role, err := Get(db, id)
	if err != nil {
		return err
	}

	if role.IsSystem {
		return ErrSystemRole
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(roleIDQueryPattern, id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		if err := tx.Where(roleIDQueryPattern, id).Delete(&models.RoleAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Role{}, id).Error
	})
}

// SetPermissions replaces a role's permission bundle with the given
// permission IDs. The bundle is a set: duplicate IDs collapse to one link.
func SetPermissions(db *gorm.DB, id uint, permissionIDs []uint) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return err
	}

	seen := make(map[uint]bool, len(permissionIDs))

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(roleIDQueryPattern, id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		for _, permissionID := range permissionIDs {
			if seen[permissionID] {
				continue
			}
			seen[permissionID] = true

			link := models.RolePermission{RoleID: id, PermissionID: permissionID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ListLinks retrieves every role-permission link. Principal hydration reads
// the whole junction table so stale links can be skipped in memory instead
// of failing a join.
func ListLinks(db *gorm.DB) ([]models.RolePermission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var links []models.RolePermission
	if result := db.Find(&links); result.Error != nil {
		return nil, result.Error
	}

	return links, nil
}

// ListPermissions retrieves the resolved permission bundle of a role.
func ListPermissions(db *gorm.DB, id uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission

	result := db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", id).
		Find(&permissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}
