package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[logs]
level = "debug"

[database]
host = "db"
port = 5433
user = "ct"
password = "p@ss"
dbname = "inspections"

[server]
http_port = 9090

[auth]
jwt_secret = "secret"

[events]
transport = "local"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 200, cfg.Events.BroadcastLimit)
	assert.Equal(t, 4, cfg.Events.BroadcastWorker)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("CT_DATABASE_HOST", "pg.internal")
	t.Setenv("CT_SERVER_HTTP_PORT", "8181")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
	assert.Equal(t, "inspections", cfg.Database.DBName)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "db"
dbname = "x"

[events]
transport = "amqp"
`))

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "auth.jwt_secret")
	assert.Contains(t, err.Error(), "amqp.url")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "ct", Password: "p@ss", DBName: "inspections", SSLMode: "disable"}
	assert.Equal(t, "postgres://ct:p%40ss@db:5432/inspections?sslmode=disable", d.DSN())
}
