package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a Go 1.21-compatible equivalent of testing.T.Chdir.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPENWEATHER_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "data", cfg.Database.Dir)
	assert.Equal(t, "students.db", cfg.Database.File)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Empty(t, cfg.Weather.APIKey)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.Weather.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Weather.Timeout)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("OPENWEATHER_KEY", " secret ")
	t.Setenv("OPENWEATHER_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "secret", cfg.Weather.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
