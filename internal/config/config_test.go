package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  dsn: "file::memory:"
auth:
  jwt_secret: s3cret
  token_ttl: 1h
logger:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.DSN)
	assert.Equal(t, StorageDatabase, cfg.Storage.Backend)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	// Defaults fill the gaps.
	assert.Equal(t, 10.0, cfg.Backend.RateLimit)
	assert.Equal(t, 5, cfg.Backend.RateLimitBurst)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
auth:
  jwt_secret: from-file
`)
	t.Setenv("BAGBUILDER_AUTH_JWT_SECRET", "from-env")
	t.Setenv("BAGBUILDER_SERVER_PORT", "7000")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("BAGBUILDER_AUTH_JWT_SECRET", "env-only")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "bagbuilder.db", cfg.Database.DSN)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: Database{Driver: DriverSQLite, DSN: "x.db"},
		Storage:  Storage{Backend: StorageDatabase},
		Auth:     Auth{JWTSecret: "k"},
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid database backend", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "unsupported database driver"},
		{name: "missing dsn", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: "database.dsn"},
		{name: "remote without url", mutate: func(c *Config) { c.Storage.Backend = StorageRemote }, wantErr: "backend.base_url"},
		{
			name: "remote without key",
			mutate: func(c *Config) {
				c.Storage.Backend = StorageRemote
				c.Backend.BaseURL = "https://example.test"
			},
			wantErr: "backend.api_key",
		},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "s3" }, wantErr: "unsupported storage backend"},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "jwt_secret"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
