package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/authz"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.RoleAssignment{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedRBAC(t *testing.T, db *gorm.DB) (models.User, models.Role) {
	t.Helper()

	user := models.User{Active: true, Email: "confmanager@fwm.org", Password: models.HashPassword("password")}
	require.NoError(t, db.Create(&user).Error)

	readConf := models.Permission{Action: "READ", Resource: "conference_portal"}
	require.NoError(t, db.Create(&readConf).Error)

	manager := models.Role{Name: "CONFERENCE_MANAGER"}
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: manager.ID, PermissionID: readConf.ID}).Error)

	require.NoError(t, db.Create(&models.RoleAssignment{
		UserID: user.ID,
		RoleID: manager.ID,
		SiteID: "site_conf_1",
	}).Error)

	return user, manager
}

func TestLoadPrincipal(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedRBAC(t, db)

	svc := NewService(db)

	principal, err := svc.LoadPrincipal(user.ID)
	require.NoError(t, err)
	require.Len(t, principal.Roles, 1)
	assert.Equal(t, "CONFERENCE_MANAGER", principal.Roles[0].RoleName)

	assert.True(t, authz.Can(principal, authz.ActionRead, authz.ResourceConferencePortal, authz.Scope{SiteID: "site_conf_1"}))
	assert.False(t, authz.Can(principal, authz.ActionRead, authz.ResourceConferencePortal, authz.Scope{SiteID: "site_hotel_1"}))
	assert.False(t, authz.Can(principal, authz.ActionUpdate, authz.ResourceConferencePortal, authz.Scope{SiteID: "site_conf_1"}))
}

func TestLoadPrincipalInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedRBAC(t, db)

	require.NoError(t, NewLocalProvider(db).DeactivateUser(user.ID))

	_, err := NewService(db).LoadPrincipal(user.ID)
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestLoadPrincipalUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewService(db).LoadPrincipal(4242)
	require.Error(t, err)
}

// Deleting a role between requests must not break principal loading; the
// stale assignment is dropped and reported through the hook.
func TestLoadPrincipalDanglingAssignment(t *testing.T) {
	db := setupTestDB(t)
	user, manager := seedRBAC(t, db)

	require.NoError(t, db.Where("role_id = ?", manager.ID).Delete(&models.RolePermission{}).Error)
	require.NoError(t, db.Delete(&models.Role{}, manager.ID).Error)

	svc := NewService(db)

	var stale []authz.StaleRef
	svc.SetStaleRefHook(func(ref authz.StaleRef) { stale = append(stale, ref) })

	principal, err := svc.LoadPrincipal(user.ID)
	require.NoError(t, err)
	assert.Empty(t, principal.Roles)

	require.Len(t, stale, 1)
	assert.Equal(t, authz.StaleRole, stale[0].Kind)

	assert.False(t, svc.Can(user.ID, authz.ActionRead, authz.ResourceConferencePortal, authz.Scope{SiteID: "site_conf_1"}))
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedRBAC(t, db)

	provider := NewLocalProvider(db)

	got, err := provider.Authenticate("confmanager@fwm.org", "password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = provider.Authenticate("confmanager@fwm.org", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = provider.Authenticate("nobody@fwm.org", "password")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, provider.DeactivateUser(user.ID))
	_, err = provider.Authenticate("confmanager@fwm.org", "password")
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}
