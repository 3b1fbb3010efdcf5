package settings

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/auth"
	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
	"github.com/fwm-platform/ecosystem-console/internal/web/session"
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
		&models.Site{},
		&models.SiteSettings{},
		&models.SettingsVersion{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	session.Init(memory.New())

	cfg := &config.Config{
		Webserver: config.Webserver{
			Port:    8080,
			Session: config.Session{ExpiryTime: time.Hour},
		},
	}

	app := fiber.New()

	svc := Service{}
	require.NoError(t, svc.Init(app, cfg, db, auth.NewService(db)))

	return app, db
}

// createSiteEditor provisions a user holding settings read and update
// permissions scoped to the given site and returns a valid session cookie.
func createSiteEditor(t *testing.T, db *gorm.DB, siteID string) string {
	t.Helper()

	user := models.User{
		Email:    "editor@example.org",
		Password: models.HashPassword("password"),
		Active:   true,
	}
	require.NoError(t, db.Create(&user).Error)

	role := models.Role{Name: "SETTINGS_EDITOR"}
	require.NoError(t, db.Create(&role).Error)

	for _, action := range []string{"READ", "UPDATE"} {
		perm := models.Permission{Action: action, Resource: "settings"}
		require.NoError(t, db.Create(&perm).Error)
		require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)
	}

	require.NoError(t, db.Create(&models.RoleAssignment{
		UserID: user.ID,
		RoleID: role.ID,
		SiteID: siteID,
	}).Error)

	sessionID, err := session.GenerateSessionID()
	require.NoError(t, err)

	sessionData := session.Data{User: user}
	require.NoError(t, sessionData.Write(sessionID, time.Hour))

	return sessionID
}

func TestSettings_UpdateAndGet(t *testing.T) {
	app, db := setupTestApp(t)
	cookie := createSiteEditor(t, db, "site_conf_1")

	putReq := httptest.NewRequest(fiber.MethodPut, "/api/sites/site_conf_1/settings",
		strings.NewReader(`{"payload":{"branding":{"title":"Conference One"}},"reason":"initial setup"}`))
	putReq.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	putReq.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: cookie})

	putResp, err := app.Test(putReq, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, putResp.StatusCode)

	getReq := httptest.NewRequest(fiber.MethodGet, "/api/sites/site_conf_1/settings", http.NoBody)
	getReq.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: cookie})

	getResp, err := app.Test(getReq, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, getResp.StatusCode)

	body, err := io.ReadAll(getResp.Body)
	require.NoError(t, err)

	var parsed struct {
		Payload json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Contains(t, string(parsed.Payload), "Conference One")
}

func TestSettings_OtherSiteForbidden(t *testing.T) {
	app, db := setupTestApp(t)
	cookie := createSiteEditor(t, db, "site_conf_1")

	// same resource, different tenant
	req := httptest.NewRequest(fiber.MethodGet, "/api/sites/site_hotel_1/settings", http.NoBody)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: cookie})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSettings_NoSessionUnauthorized(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/sites/site_conf_1/settings", http.NoBody)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSettings_RollbackRequiresManage(t *testing.T) {
	app, db := setupTestApp(t)
	cookie := createSiteEditor(t, db, "site_conf_1")

	// the editor role carries READ and UPDATE only
	req := httptest.NewRequest(fiber.MethodPost,
		"/api/sites/site_conf_1/settings/versions/some-version/rollback", http.NoBody)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: cookie})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSettings_VersionHistoryAndRollback(t *testing.T) {
	app, db := setupTestApp(t)

	// super-admin bypasses every check incl. MANAGE on rollback
	user := models.User{
		Email:    "root@example.org",
		Password: models.HashPassword("password"),
		Active:   true,
	}
	require.NoError(t, db.Create(&user).Error)

	role := models.Role{Name: "SUPER_ADMIN"}
	require.NoError(t, db.Create(&role).Error)

	perm := models.Permission{Action: "MANAGE", Resource: "*"}
	require.NoError(t, db.Create(&perm).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)
	require.NoError(t, db.Create(&models.RoleAssignment{UserID: user.ID, RoleID: role.ID}).Error)

	sessionID, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{User: user}).Write(sessionID, time.Hour))

	put := func(payload string) {
		req := httptest.NewRequest(fiber.MethodPut, "/api/sites/site_conf_1/settings",
			strings.NewReader(payload))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: sessionID})

		resp, testErr := app.Test(req, -1)
		require.NoError(t, testErr)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	put(`{"payload":{"title":"first"},"reason":"v1"}`)
	put(`{"payload":{"title":"second"},"reason":"v2"}`)

	listReq := httptest.NewRequest(fiber.MethodGet, "/api/sites/site_conf_1/settings/versions", http.NoBody)
	listReq.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: sessionID})

	listResp, err := app.Test(listReq, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	body, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)

	var history struct {
		Versions []struct {
			ID     string `json:"id"`
			Reason string `json:"reason"`
		} `json:"versions"`
	}
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history.Versions, 2)
	// newest first
	assert.Equal(t, "v2", history.Versions[0].Reason)

	// roll back to the first snapshot
	oldVersion := history.Versions[1]

	rollbackReq := httptest.NewRequest(fiber.MethodPost,
		"/api/sites/site_conf_1/settings/versions/"+oldVersion.ID+"/rollback", http.NoBody)
	rollbackReq.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: sessionID})

	rollbackResp, err := app.Test(rollbackReq, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, rollbackResp.StatusCode)

	rollbackBody, err := io.ReadAll(rollbackResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(rollbackBody), "first")
}
