// Package nav serves the per-user navigation tree for the console shell.
package nav

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/auth"
	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/site"
	"github.com/fwm-platform/ecosystem-console/internal/web/handler"
	"github.com/fwm-platform/ecosystem-console/internal/web/navigation"
)

// Path is the navigation endpoint path.
const Path = handler.RootPath + "navigation"

// Service serves the navigation tree.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path,
		auth.RequireAuthenticated(authService),
		s.Get,
	)

	return nil
}

// Get returns the navigation tree for the authenticated principal. Entries
// are computed with the same checks that guard the routes behind them, so
// the shell never links to a page the user would be forbidden from.
func (s *Service) Get(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)

	sites, err := site.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list sites for navigation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(navigation.ForPrincipal(principal, sites))
}
