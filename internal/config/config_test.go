package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(testConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.NotZero(t, cfg.Webserver.ShutDownTime)

	assert.Contains(t, []string{DBDriverSQLite, DBDriverMySQL, DBDriverPostgres}, cfg.DB.Driver)

	assert.NotEmpty(t, cfg.Log.AppName)
	assert.NotEmpty(t, cfg.Log.ServiceName)
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv("ECOSYSTEM_CONSOLE_CONFIG_JSON", `{"Title":"Overridden"}`)

	cfg, err := ReadConfig(testConfigPath(t))
	require.NoError(t, err)
	assert.Equal(t, "Overridden", cfg.Title)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
		DB:        DB{Driver: DBDriverSQLite},
	}
	require.NoError(t, validate(valid))

	noPort := valid
	noPort.Webserver.Port = 0
	require.ErrorIs(t, validate(noPort), ErrWebServerPortCanNotBeZero)

	noURL := valid
	noURL.Webserver.URL = ""
	require.ErrorIs(t, validate(noURL), ErrEmptyURL)

	badDriver := valid
	badDriver.DB.Driver = "oracle"
	require.ErrorIs(t, validate(badDriver), ErrUnknownDBDriver)
}

func TestDumpConfig(t *testing.T) {
	cfg, err := ReadConfig(testConfigPath(t))
	require.NoError(t, err)

	tomlOut, err := DumpConfig(cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlOut, "Title")

	jsonOut, err := DumpConfigJSON(cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, "\"Title\"")
}
