package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults loads the configuration without any CONTACTS_ variables. It expects the
// defaults to pass validation.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "mongo", cfg.Store.Backend)
	assert.Equal(t, "flash", cfg.Flash.Cookie)
	assert.Equal(t, ":3000", cfg.Server.Addr())
}

// TestLoadFromEnvironment sets variables for several sections and expects them to override
// the defaults.
func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONTACTS_SERVER_PORT", "8080")
	t.Setenv("CONTACTS_SERVER_READ_TIMEOUT", "3")
	t.Setenv("CONTACTS_SERVER_GIN_LOGGING", "OFF")
	t.Setenv("CONTACTS_STORE_BACKEND", "mysql")
	t.Setenv("CONTACTS_DATABASE_HOST", "db:3306")
	t.Setenv("CONTACTS_DATABASE_USER", "dirk")
	t.Setenv("CONTACTS_DATABASE_MAX_OPEN_CONNS", "20")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, "off", cfg.Server.GinLogging)
	assert.Equal(t, "mysql", cfg.Store.Backend)
	assert.Equal(t, "db:3306", cfg.Database.Host)
	assert.Equal(t, "dirk", cfg.Database.User)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "contacts", cfg.Database.Name)
}

// TestLoadInvalidBackend expects an unknown store backend to be rejected.
func TestLoadInvalidBackend(t *testing.T) {
	t.Setenv("CONTACTS_STORE_BACKEND", "postgres")
	_, err := Load()
	assert.Error(t, err)
}

// TestValidateMysqlNeedsCredentials expects the mysql backend to require a database user.
func TestValidateMysqlNeedsCredentials(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "mysql"
	assert.Error(t, cfg.Validate())
	cfg.Database.User = "dirk"
	assert.NoError(t, cfg.Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("CONTACTS_SERVER_PORT"))
	assert.Equal(t, "database.max_open_conns", envKey("CONTACTS_DATABASE_MAX_OPEN_CONNS"))
	assert.Equal(t, "flash.max_age", envKey("CONTACTS_FLASH_MAX_AGE"))
}
