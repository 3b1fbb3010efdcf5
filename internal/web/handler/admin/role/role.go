// Package role provides handlers for managing roles and their permission
// bundles in the admin area.
package role

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/auth"
	"github.com/fwm-platform/ecosystem-console/internal/authz"
	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/permission"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/role"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
	"github.com/fwm-platform/ecosystem-console/internal/web/handler"
)

const (
	// Path is the base path for role management.
	Path = handler.RootPath + "admin/roles"

	// PermissionsPath lists the permission catalog.
	PermissionsPath = handler.RootPath + "admin/permissions"
)

// Service provides CRUD operations for roles.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

type roleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description"`
	SiteID      string `json:"siteId"`
}

type setPermissionsRequest struct {
	PermissionIDs []uint `json:"permissionIds" validate:"required"`
}

type roleView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SiteID      string `json:"siteId,omitempty"`
	IsSystem    bool   `json:"isSystem"`
}

type permissionView struct {
	ID          uint   `json:"id"`
	Action      string `json:"action"`
	Resource    string `json:"resource"`
	Description string `json:"description,omitempty"`
}

func newRoleView(r *models.Role) roleView {
	return roleView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		SiteID:      r.SiteID,
		IsSystem:    r.IsSystem,
	}
}

func newPermissionView(p *models.Permission) permissionView {
	return permissionView{
		ID:          p.ID,
		Action:      p.Action,
		Resource:    p.Resource,
		Description: p.Description,
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
	s.validator = validator.New()

	// Routes
	app.Get(PermissionsPath,
		auth.RequirePermission(authService, authz.ActionRead, authz.ResourceRole),
		s.ListPermissionCatalog,
	)
	app.Get(Path,
		auth.RequirePermission(authService, authz.ActionRead, authz.ResourceRole),
		s.List,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, authz.ActionRead, authz.ResourceRole),
		s.Get,
	)
	app.Post(Path,
		auth.RequirePermission(authService, authz.ActionCreate, authz.ResourceRole),
		s.Create,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, authz.ActionUpdate, authz.ResourceRole),
		s.Update,
	)
	app.Put(Path+"/:id/permissions",
		auth.RequirePermission(authService, authz.ActionManage, authz.ResourceRole),
		s.SetPermissions,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, authz.ActionDelete, authz.ResourceRole),
		s.Delete,
	)

	return nil
}

// ListPermissionCatalog returns every permission in the catalog.
func (s *Service) ListPermissionCatalog(c *fiber.Ctx) error {
	permissions, err := permission.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list permissions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	views := make([]permissionView, 0, len(permissions))
	for i := range permissions {
		views = append(views, newPermissionView(&permissions[i]))
	}

	return c.JSON(fiber.Map{"permissions": views})
}

// List returns roles. With ?siteId= the result is the site's own roles plus
// the global ones; without it, global roles only.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := role.List(s.db, c.Query("siteId"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list roles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	views := make([]roleView, 0, len(roles))
	for i := range roles {
		views = append(views, newRoleView(&roles[i]))
	}

	return c.JSON(fiber.Map{"roles": views})
}

// Get returns one role together with its permissions.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	r, err := role.Get(s.db, uint(id))
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
		}

		log.Error().Err(err).Uint64("role_id", id).Msg("failed to get role")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	permissions, err := role.ListPermissions(s.db, uint(id))
	if err != nil {
		log.Error().Err(err).Uint64("role_id", id).Msg("failed to list role permissions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	permissionViews := make([]permissionView, 0, len(permissions))
	for i := range permissions {
		permissionViews = append(permissionViews, newPermissionView(&permissions[i]))
	}

	return c.JSON(fiber.Map{
		"role":        newRoleView(r),
		"permissions": permissionViews,
	})
}

// Create creates a new role, global or site-scoped.
func (s *Service) Create(c *fiber.Ctx) error {
	var req roleRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	r, err := role.Create(s.db, req.Name, req.Description, req.SiteID, false)
	if err != nil {
		if errors.Is(err, role.ErrRoleExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Role name already in use"})
		}

		log.Error().Err(err).Str("name", req.Name).Msg("failed to create role")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(newRoleView(r))
}

// Update renames a role. The site binding is immutable after creation.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	var req roleRequest

	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err = s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	r, err := role.Update(s.db, uint(id), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, role.ErrRoleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
		case errors.Is(err, role.ErrRoleExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Role name already in use"})
		}

		log.Error().Err(err).Uint64("role_id", id).Msg("failed to update role")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(newRoleView(r))
}

// SetPermissions replaces the role's permission bundle. Callers holding
// affected sessions see the change on their next request, since principals
// are rebuilt per request.
func (s *Service) SetPermissions(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	var req setPermissionsRequest

	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err = role.SetPermissions(s.db, uint(id), req.PermissionIDs); err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
		}

		log.Error().Err(err).Uint64("role_id", id).Msg("failed to set role permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes a non-system role and its links and assignments.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	if err = role.Delete(s.db, uint(id)); err != nil {
		switch {
		case errors.Is(err, role.ErrRoleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
		case errors.Is(err, role.ErrSystemRole):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "System roles cannot be deleted"})
		}

		log.Error().Err(err).Uint64("role_id", id).Msg("failed to delete role")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
