// Package login provides the login and session-restore endpoints.
package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/auth"
	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/web/handler"
	"github.com/fwm-platform/ecosystem-console/internal/web/session"
)

const (
	// Path is the login endpoint path.
	Path = handler.RootPath + "login"
	// MePath is the session-restore endpoint path.
	MePath = handler.RootPath + "me"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	provider    *auth.LocalProvider
	authService *auth.Service
	validator   *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)
	s.authService = authService
	s.validator = validator.New()

	app.Post(Path, s.Post)
	app.Get(MePath, s.Me)

	return nil
}

// Post handles the login request: verify credentials, create the session
// cookie and return the freshly hydrated principal.
func (s *Service) Post(c *fiber.Ctx) error {
	var req loginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	user, err := s.provider.Authenticate(req.Email, req.Password)
	if err != nil {
		// same answer for unknown user, bad password and disabled account
		log.Warn().Err(err).Str("email", req.Email).Msg("login failed")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	// the session carries the raw user identity only; the hydrated
	// principal is rebuilt on every request
	userSession := &session.Data{User: *user}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    sessionID,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
	})

	principal, err := s.authService.LoadPrincipal(user.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to load principal after login")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(handler.NewPrincipalView(principal))
}

// Me handles session restore: a valid session cookie returns the freshly
// hydrated principal, anything else 401 so the client redirects to login
// instead of rendering a disabled shell.
func (s *Service) Me(c *fiber.Ctx) error {
	sessionID := c.Cookies(auth.SessionCookie)
	if sessionID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil || sessionData.User.ID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	principal, err := s.authService.LoadPrincipal(sessionData.User.ID)
	if err != nil {
		// user deleted or deactivated since the cookie was issued
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	return c.JSON(handler.NewPrincipalView(principal))
}
