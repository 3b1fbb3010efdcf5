package sitesettings

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

	err = db.AutoMigrate(&models.SiteSettings{}, &models.SettingsVersion{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func actor() models.User {
	return models.User{ID: 5, Email: "sitemanager@fwm.org"}
}

func TestSetWritesVersion(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(db, "site_a")
	require.ErrorIs(t, err, ErrSettingsNotFound)

	settings, err := Set(db, "site_a", []byte(`{"branding":{"color":"#123456"}}`), actor(), "Initial branding")
	require.NoError(t, err)
	assert.Equal(t, "site_a", settings.SiteID)

	got, err := Get(db, "site_a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"branding":{"color":"#123456"}}`, string(got.Payload))

	versions, err := ListVersions(db, "site_a")
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "Initial branding", versions[0].Reason)
	assert.Equal(t, uint64(5), versions[0].UserID)
	assert.Equal(t, "sitemanager@fwm.org", versions[0].UserEmail)
}

func TestSetAccumulatesHistory(t *testing.T) {
	db := setupTestDB(t)

	_, err := Set(db, "site_a", []byte(`{"v":1}`), actor(), "first")
	require.NoError(t, err)
	_, err = Set(db, "site_a", []byte(`{"v":2}`), actor(), "second")
	require.NoError(t, err)

	// history is per site
	_, err = Set(db, "site_b", []byte(`{"v":1}`), actor(), "other tenant")
	require.NoError(t, err)

	versions, err := ListVersions(db, "site_a")
	require.NoError(t, err)
	assert.Len(t, versions, 2)

	got, err := Get(db, "site_a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got.Payload))
}

func TestRollback(t *testing.T) {
	db := setupTestDB(t)

	_, err := Set(db, "site_a", []byte(`{"v":1}`), actor(), "first")
	require.NoError(t, err)
	_, err = Set(db, "site_a", []byte(`{"v":2}`), actor(), "second")
	require.NoError(t, err)

	versions, err := ListVersions(db, "site_a")
	require.NoError(t, err)
	require.Len(t, versions, 2)

	var first models.SettingsVersion
	for _, v := range versions {
		if string(v.Snapshot) == `{"v":1}` {
			first = v
		}
	}
	require.NotEmpty(t, first.ID)

	_, err = Rollback(db, "site_a", first.ID, actor())
	require.NoError(t, err)

	got, err := Get(db, "site_a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(got.Payload))

	// the rollback itself is a new version; history never shrinks
	versions, err = ListVersions(db, "site_a")
	require.NoError(t, err)
	assert.Len(t, versions, 3)

	// versions belong to their site
	_, err = Rollback(db, "site_b", first.ID, actor())
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestEmptySiteID(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(db, "")
	require.ErrorIs(t, err, ErrSiteIDEmpty)

	_, err = Set(db, "", nil, actor(), "")
	require.ErrorIs(t, err, ErrSiteIDEmpty)

	_, err = ListVersions(db, "")
	require.ErrorIs(t, err, ErrSiteIDEmpty)
}
