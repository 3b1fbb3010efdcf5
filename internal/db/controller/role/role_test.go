package role

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.RoleAssignment{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreateAndGet(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "HOTEL_MANAGER", "Manages hotel portals", "", false)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := Get(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "HOTEL_MANAGER", got.Name)
	assert.Empty(t, got.SiteID)

	_, err = Get(db, 999)
	require.ErrorIs(t, err, ErrRoleNotFound)

	_, err = Create(db, "", "", "", false)
	require.ErrorIs(t, err, ErrRoleNameEmpty)

	_, err = Create(nil, "X", "", "", false)
	require.ErrorIs(t, err, ErrDBNil)
}

// The same name is legal across owners but not within one owner.
func TestCreateSameNameAcrossSites(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "EDITOR", "", "site_a", false)
	require.NoError(t, err)

	_, err = Create(db, "EDITOR", "", "site_b", false)
	require.NoError(t, err)

	_, err = Create(db, "EDITOR", "", "site_a", false)
	require.ErrorIs(t, err, ErrRoleExists)
}

func TestListFiltersBySite(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "SUPER_ADMIN", "", "", true)
	require.NoError(t, err)
	_, err = Create(db, "EDITOR", "", "site_a", false)
	require.NoError(t, err)
	_, err = Create(db, "EDITOR", "", "site_b", false)
	require.NoError(t, err)

	// a site sees its own roles plus globals
	roles, err := List(db, "site_a")
	require.NoError(t, err)
	require.Len(t, roles, 2)

	// no site filter: globals only
	roles, err = List(db, "")
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "SUPER_ADMIN", roles[0].Name)

	all, err := ListAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSetPermissions(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "CONFERENCE_MANAGER", "", "", false)
	require.NoError(t, err)

	read := models.Permission{Action: "READ", Resource: "conference_portal"}
	update := models.Permission{Action: "UPDATE", Resource: "conference_portal"}
	require.NoError(t, db.Create(&read).Error)
	require.NoError(t, db.Create(&update).Error)

	// duplicates collapse: the bundle is a set
	err = SetPermissions(db, created.ID, []uint{read.ID, update.ID, read.ID})
	require.NoError(t, err)

	permissions, err := ListPermissions(db, created.ID)
	require.NoError(t, err)
	assert.Len(t, permissions, 2)

	// replacing shrinks the bundle
	err = SetPermissions(db, created.ID, []uint{read.ID})
	require.NoError(t, err)

	permissions, err = ListPermissions(db, created.ID)
	require.NoError(t, err)
	require.Len(t, permissions, 1)
	assert.Equal(t, "READ", permissions[0].Action)

	err = SetPermissions(db, 999, []uint{read.ID})
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	system, err := Create(db, "SUPER_ADMIN", "", "", true)
	require.NoError(t, err)
	custom, err := Create(db, "EDITOR", "", "site_a", false)
	require.NoError(t, err)

	perm := models.Permission{Action: "READ", Resource: "site"}
	require.NoError(t, db.Create(&perm).Error)
	require.NoError(t, SetPermissions(db, custom.ID, []uint{perm.ID}))
	require.NoError(t, db.Create(&models.RoleAssignment{UserID: 1, RoleID: custom.ID, SiteID: "site_a"}).Error)

	require.ErrorIs(t, Delete(db, system.ID), ErrSystemRole)

	require.NoError(t, Delete(db, custom.ID))

	_, err = Get(db, custom.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)

	links, err := ListLinks(db)
	require.NoError(t, err)
	assert.Empty(t, links)

	var assignments int64
	db.Model(&models.RoleAssignment{}).Count(&assignments)
	assert.Zero(t, assignments)
}
