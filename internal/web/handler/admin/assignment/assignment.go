// Package assignment provides handlers for granting and revoking role
// assignments in the admin area.
package assignment

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
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/assignment"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
	"github.com/fwm-platform/ecosystem-console/internal/web/handler"
)

// Path is the base path for assignment management.
const Path = handler.RootPath + "admin/assignments"

// Service provides operations for role assignments.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

type createRequest struct {
	UserID   uint64 `json:"userId" validate:"required"`
	RoleID   uint   `json:"roleId" validate:"required"`
	SiteID   string `json:"siteId"`
	CampusID string `json:"campusId"`
}

type assignmentView struct {
	ID       uint   `json:"id"`
	UserID   uint64 `json:"userId"`
	RoleID   uint   `json:"roleId"`
	SiteID   string `json:"siteId,omitempty"`
	CampusID string `json:"campusId,omitempty"`
}

func newAssignmentView(a *models.RoleAssignment) assignmentView {
	return assignmentView{
		ID:       a.ID,
		UserID:   a.UserID,
		RoleID:   a.RoleID,
		SiteID:   a.SiteID,
		CampusID: a.CampusID,
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

	// Granting a role is effectively a user management operation.
	app.Get(Path,
		auth.RequirePermission(authService, authz.ActionRead, authz.ResourceUser),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, authz.ActionManage, authz.ResourceUser),
		s.Create,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, authz.ActionManage, authz.ResourceUser),
		s.Delete,
	)

	return nil
}

// List returns assignments, optionally filtered by ?userId=.
func (s *Service) List(c *fiber.Ctx) error {
	var (
		assignments []models.RoleAssignment
		err         error
	)

	if userIDParam := c.Query("userId"); userIDParam != "" {
		userID, parseErr := strconv.ParseUint(userIDParam, 10, 64)
		if parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
		}

		assignments, err = assignment.ListByUser(s.db, userID)
	} else {
		assignments, err = assignment.List(s.db)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to list assignments")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	views := make([]assignmentView, 0, len(assignments))
	for i := range assignments {
		views = append(views, newAssignmentView(&assignments[i]))
	}

	return c.JSON(fiber.Map{"assignments": views})
}

// Create grants a role to a user within the given scope. The change shows
// up in the user's principal on their next request.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := assignment.Create(s.db, req.UserID, req.RoleID, req.SiteID, req.CampusID)
	if err != nil {
		if errors.Is(err, assignment.ErrAssignmentExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Assignment already exists"})
		}

		log.Error().Err(err).
			Uint64("user_id", req.UserID).
			Uint("role_id", req.RoleID).
			Msg("failed to create assignment")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(newAssignmentView(created))
}

// Delete revokes an assignment.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}

	if err = assignment.Delete(s.db, uint(id)); err != nil {
		if errors.Is(err, assignment.ErrAssignmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
		}

		log.Error().Err(err).Uint64("assignment_id", id).Msg("failed to delete assignment")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
