// Package settings provides handlers for the per-site settings document,
// its version history and rollback, plus JSON export/import.
package settings

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/auth"
	"github.com/fwm-platform/ecosystem-console/internal/authz"
	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/sitesettings"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
	"github.com/fwm-platform/ecosystem-console/internal/web/handler"
)

// Path is the base path for site settings, nested under the site routes.
const Path = handler.RootPath + "sites/:siteId/settings"

// Service provides operations on site settings.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

type updateRequest struct {
	Payload json.RawMessage `json:"payload"`
	Reason  string          `json:"reason"`
}

type versionView struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newVersionView(v *models.SettingsVersion) versionView {
	return versionView{
		ID:        v.ID,
		UserEmail: v.UserEmail,
		Reason:    v.Reason,
		CreatedAt: v.CreatedAt,
	}
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.db = db
	s.cfg = cfg

	// Every route here is tenant data, so every check carries the site
	// scope from the URL.
	app.Get(Path,
		auth.RequireSitePermission(authService, authz.ActionRead, authz.ResourceSettings),
		s.Get,
	)
	app.Put(Path,
		auth.RequireSitePermission(authService, authz.ActionUpdate, authz.ResourceSettings),
		s.Update,
	)
	app.Get(Path+"/export",
		auth.RequireSitePermission(authService, authz.ActionExport, authz.ResourceSettings),
		s.Export,
	)
	app.Post(Path+"/import",
		auth.RequireSitePermission(authService, authz.ActionImport, authz.ResourceSettings),
		s.Import,
	)
	app.Get(Path+"/versions",
		auth.RequireSitePermission(authService, authz.ActionRead, authz.ResourceSettings),
		s.ListVersions,
	)
	app.Post(Path+"/versions/:versionId/rollback",
		auth.RequireSitePermission(authService, authz.ActionManage, authz.ResourceSettings),
		s.Rollback,
	)

	return nil
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(auth.LocalsUser).(models.User)
	return user, ok
}

// Get returns the current settings document.
func (s *Service) Get(c *fiber.Ctx) error {
	settings, err := sitesettings.Get(s.db, c.Params("siteId"))
	if err != nil {
		if errors.Is(err, sitesettings.ErrSettingsNotFound) {
			// a site without settings has an empty document, not a 404
			return c.JSON(fiber.Map{"payload": json.RawMessage("{}")})
		}

		log.Error().Err(err).Str("site_id", c.Params("siteId")).Msg("failed to get site settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"payload":   json.RawMessage(settings.Payload),
		"updatedAt": settings.UpdatedAt,
	})
}

// Update writes a new settings document and snapshots the change.
func (s *Service) Update(c *fiber.Ctx) error {
	var req updateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !json.Valid(req.Payload) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Settings payload must be valid JSON"})
	}

	actor, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	reason := req.Reason
	if reason == "" {
		reason = "Settings updated"
	}

	settings, err := sitesettings.Set(s.db, c.Params("siteId"), req.Payload, actor, reason)
	if err != nil {
		log.Error().Err(err).Str("site_id", c.Params("siteId")).Msg("failed to update site settings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"payload":   json.RawMessage(settings.Payload),
		"updatedAt": settings.UpdatedAt,
	})
}

// Export downloads the settings document as a JSON attachment.
func (s *Service) Export(c *fiber.Ctx) error {
	settings, err := sitesettings.Get(s.db, c.Params("siteId"))
	if err != nil {
		if errors.Is(err, sitesettings.ErrSettingsNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site has no settings yet"})
		}

		log.Error().Err(err).Str("site_id", c.Params("siteId")).Msg("failed to export site settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="site-settings.json"`)

	return c.Send(settings.Payload)
}

// Import replaces the settings document with an uploaded one. The import is
// just a settings write, so it is versioned like any other.
func (s *Service) Import(c *fiber.Ctx) error {
	payload := c.Body()
	if !json.Valid(payload) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Import file must be valid JSON"})
	}

	actor, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	settings, err := sitesettings.Set(s.db, c.Params("siteId"), payload, actor, "Imported settings from file")
	if err != nil {
		log.Error().Err(err).Str("site_id", c.Params("siteId")).Msg("failed to import site settings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"payload":   json.RawMessage(settings.Payload),
		"updatedAt": settings.UpdatedAt,
	})
}

// ListVersions returns the settings history, newest first. Snapshots are
// not inlined; a client wanting the old payload rolls back instead.
func (s *Service) ListVersions(c *fiber.Ctx) error {
	versions, err := sitesettings.ListVersions(s.db, c.Params("siteId"))
	if err != nil {
		log.Error().Err(err).Str("site_id", c.Params("siteId")).Msg("failed to list settings versions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	views := make([]versionView, 0, len(versions))
	for i := range versions {
		views = append(views, newVersionView(&versions[i]))
	}

	return c.JSON(fiber.Map{"versions": views})
}

// Rollback replays an old snapshot as a brand new settings write.
func (s *Service) Rollback(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	settings, err := sitesettings.Rollback(s.db, c.Params("siteId"), c.Params("versionId"), actor)
	if err != nil {
		if errors.Is(err, sitesettings.ErrVersionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Settings version not found"})
		}

		log.Error().Err(err).
			Str("site_id", c.Params("siteId")).
			Str("version_id", c.Params("versionId")).
			Msg("failed to roll back site settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"payload":   json.RawMessage(settings.Payload),
		"updatedAt": settings.UpdatedAt,
	})
}
