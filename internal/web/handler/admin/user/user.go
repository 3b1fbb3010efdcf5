// Package user provides handlers for managing users (CRUD) in admin area.
package user

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
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
	"github.com/fwm-platform/ecosystem-console/internal/web/handler"
)

const (
	// Path is the base path for user management.
	Path = handler.RootPath + "admin/users"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25
)

// Service provides CRUD operations for users.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	provider  *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

type createRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type updateRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Active    *bool  `json:"active"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// userView is the JSON shape of a user record; the hash never leaves the server.
type userView struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Active    bool   `json:"active"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Active:    u.Active,
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
	s.provider = auth.NewLocalProvider(db)
	s.validator = validator.New()

	// Routes
	app.Get(Path,
		auth.RequirePermission(authService, authz.ActionRead, authz.ResourceUser),
		s.List,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, authz.ActionRead, authz.ResourceUser),
		s.Get,
	)
	app.Post(Path,
		auth.RequirePermission(authService, authz.ActionCreate, authz.ResourceUser),
		s.Create,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, authz.ActionUpdate, authz.ResourceUser),
		s.Update,
	)
	app.Post(Path+"/:id/reset-password",
		auth.RequirePermission(authService, authz.ActionManage, authz.ResourceUser),
		s.ResetPassword,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, authz.ActionDelete, authz.ResourceUser),
		s.Delete,
	)

	return nil
}

// List returns users with simple pagination and an optional active filter.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}

	var active *bool

	switch c.Query("active") {
	case "true":
		active = new(bool)
		*active = true
	case "false":
		active = new(bool)
	}

	users, totalCount, err := s.provider.ListUsers(active, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}

	return c.JSON(fiber.Map{
		"users":      views,
		"totalCount": totalCount,
		"page":       page,
		"pageSize":   pageSize,
	})
}

// Get returns a single user by ID.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := s.provider.GetUserByID(id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to get user")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(newUserView(user))
}

// Create creates a new user account.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := s.provider.CreateUser(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}

		log.Error().Err(err).Str("email", req.Email).Msg("failed to create user")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(newUserView(user))
}

// Update updates user identity fields and, when requested, the active flag.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req updateRequest

	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err = s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err = s.provider.UpdateUser(id, req.Email, req.FirstName, req.LastName); err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		case errors.Is(err, auth.ErrEmailExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to update user")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	if req.Active != nil {
		if *req.Active {
			err = s.provider.ActivateUser(id)
		} else {
			err = s.provider.DeactivateUser(id)
		}

		if err != nil {
			log.Error().Err(err).Uint64("user_id", id).Msg("failed to change user active flag")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
	}

	user, err := s.provider.GetUserByID(id)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", id).Msg("failed to reload user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(newUserView(user))
}

// ResetPassword sets a new password without requiring the old one.
func (s *Service) ResetPassword(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req resetPasswordRequest

	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err = s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err = s.provider.ResetPassword(id, req.Password); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to reset password")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes a user account.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err = s.provider.DeleteUser(id); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to delete user")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
