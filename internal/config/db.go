package config

// Supported database drivers.
const (
	// DBDriverSQLite uses an embedded SQLite file, for development and small setups.
	DBDriverSQLite = "sqlite"
	// DBDriverMySQL uses a MySQL/MariaDB server.
	DBDriverMySQL = "mysql"
	// DBDriverPostgres uses a PostgreSQL server.
	DBDriverPostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Driver   string // sqlite, mysql or postgres
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// Path is the database file location when Driver is sqlite.
	Path string
}
