// Package daemon bootstraps the console: database, session store, seed data
// and the web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage"
	"github.com/gofiber/storage/memory/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/db/dsn"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
	"github.com/fwm-platform/ecosystem-console/internal/web"
	"github.com/fwm-platform/ecosystem-console/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// WaitShutdown blocks until the web service has shut down gracefully.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db := openDB(cfg)

	seed(cfg, db)

	// Initialize fiber session store on the same backend as the data
	session.Init(newSessionStorage(cfg))

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}

// Seed opens the database and provisions the initial catalog, roles, demo
// sites and demo users without starting the web service.
func Seed(cfg *config.Config) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return
	}

	seed(cfg, openDB(cfg))
}

func openDB(cfg *config.Config) *gorm.DB {
	var dbDriver gorm.Dialector

	switch cfg.DB.Driver {
	case config.DBDriverPostgres:
		dbDriver = gormpostgres.Open(dsn.Create(cfg))
	case config.DBDriverSQLite:
		dbDriver = sqlite.Open(dsn.Create(cfg))
	default:
		dbDriver = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.RoleAssignment{},
		&models.Site{},
		&models.Campus{},
		&models.SiteSettings{},
		&models.SettingsVersion{},
	); err != nil {
		panic("failed to migrate database")
	}

	return db
}

func newSessionStorage(cfg *config.Config) storage.Storage {
	switch cfg.DB.Driver {
	case config.DBDriverMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	case config.DBDriverPostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	default:
		// sqlite setups keep sessions in memory; a restart just logs
		// everyone out
		return memory.New()
	}
}
