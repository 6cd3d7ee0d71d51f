package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "badger", cfg.Cache.Backend)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COURSEHUB_SERVER_PORT", "9090")
	t.Setenv("COURSEHUB_SERVER_READ_TIMEOUT", "5s")
	t.Setenv("COURSEHUB_AUTH_JWT_SECRET", "from-env")
	t.Setenv("COURSEHUB_SERVER_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "server:\n  port: 7070\n  environment: staging\ncache:\n  backend: memory\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "staging", cfg.Server.Environment)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	// Untouched keys keep their defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o644))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("COURSEHUB_SERVER_PORT", "9191")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	t.Run("production requires a jwt secret", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Server.Environment = "production"
		require.Error(t, cfg.Validate())

		cfg.Auth.JWTSecret = "secret"
		require.NoError(t, cfg.Validate())
	})

	t.Run("dynamodb requires a table name in production", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Server.Environment = "production"
		cfg.Auth.JWTSecret = "secret"
		cfg.Database.Driver = "dynamodb"
		cfg.Database.TableName = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("unknown drivers rejected", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Database.Driver = "postgres"
		require.Error(t, cfg.Validate())

		cfg = defaultConfig()
		cfg.Cache.Backend = "redis"
		require.Error(t, cfg.Validate())
	})
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envTransform("COURSEHUB_SERVER_READ_TIMEOUT"))
	assert.Equal(t, "auth.jwt_secret", envTransform("COURSEHUB_AUTH_JWT_SECRET"))
	assert.Equal(t, "rate_limit.requests", envTransform("COURSEHUB_RATE_LIMIT_REQUESTS"))
	// Unknown sections are ignored rather than polluting the tree
	assert.Equal(t, "", envTransform("COURSEHUB_HOME"))
	assert.Equal(t, "", envTransform("COURSEHUB_UNRELATED_KEY"))
}
