// Package sites provides handlers for managing tenant sites and their
// campuses.
package sites

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/auth"
	"github.com/fwm-platform/ecosystem-console/internal/authz"
	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/site"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
	"github.com/fwm-platform/ecosystem-console/internal/web/handler"
)

// Path is the base path for site management.
const Path = handler.RootPath + "sites"

// Service provides CRUD operations for sites.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

type createRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=255"`
	Type     string   `json:"type" validate:"required,oneof=CONFERENCE HOTEL CHURCH SCHOOL BANK HR COMMS"`
	Campuses []string `json:"campuses"`
}

type updateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type campusView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type siteView struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Campuses []campusView `json:"campuses"`
}

func newSiteView(s *models.Site) siteView {
	view := siteView{
		ID:       s.ID,
		Name:     s.Name,
		Type:     string(s.Type),
		Campuses: make([]campusView, 0, len(s.Campuses)),
	}

	for _, campus := range s.Campuses {
		view.Campuses = append(view.Campuses, campusView{ID: campus.ID, Name: campus.Name})
	}

	return view
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	// Creating and deleting tenants is a global affordance; reading and
	// updating a single site is checked within that site's scope.
	app.Get(Path,
		auth.RequirePermission(authService, authz.ActionRead, authz.ResourceSite),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, authz.ActionCreate, authz.ResourceSite),
		s.Create,
	)
	app.Get(Path+"/:siteId",
		auth.RequireSitePermission(authService, authz.ActionRead, authz.ResourceSite),
		s.Get,
	)
	app.Put(Path+"/:siteId",
		auth.RequireSitePermission(authService, authz.ActionUpdate, authz.ResourceSite),
		s.Update,
	)
	app.Delete(Path+"/:siteId",
		auth.RequirePermission(authService, authz.ActionDelete, authz.ResourceSite),
		s.Delete,
	)

	return nil
}

// List returns every site with its campuses.
func (s *Service) List(c *fiber.Ctx) error {
	sites, err := site.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list sites")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	views := make([]siteView, 0, len(sites))
	for i := range sites {
		views = append(views, newSiteView(&sites[i]))
	}

	return c.JSON(fiber.Map{"sites": views})
}

// Get returns one site.
func (s *Service) Get(c *fiber.Ctx) error {
	found, err := site.Get(s.db, c.Params("siteId"))
	if err != nil {
		if errors.Is(err, site.ErrSiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
		}

		log.Error().Err(err).Str("site_id", c.Params("siteId")).Msg("failed to get site")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(newSiteView(found))
}

// Create provisions a new site with its initial campuses.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := site.Create(s.db, req.Name, models.SiteType(req.Type), req.Campuses)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create site")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(newSiteView(created))
}

// Update renames a site.
func (s *Service) Update(c *fiber.Ctx) error {
	var req updateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := site.Update(s.db, c.Params("siteId"), req.Name)
	if err != nil {
		if errors.Is(err, site.ErrSiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
		}

		log.Error().Err(err).Str("site_id", c.Params("siteId")).Msg("failed to update site")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(newSiteView(updated))
}

// Delete removes a site together with its campuses, settings and settings
// history.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := site.Delete(s.db, c.Params("siteId")); err != nil {
		if errors.Is(err, site.ErrSiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
		}

		log.Error().Err(err).Str("site_id", c.Params("siteId")).Msg("failed to delete site")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
