package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 10*time.Second, cfg.DashboardAPITimeout)
	assert.Equal(t, 30*time.Minute, cfg.PageStateTTL)
	assert.Equal(t, GEO_COLOMBIA_RESOURCE, cfg.GeoResource)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", ENV_PROD)
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("DASHBOARD_API_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.DashboardAPITimeout)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoad_ProdNeedsSessionSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", ENV_PROD)
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()

	assert.Error(t, err)
}

func TestGetResourcePath(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/app")

	assert.Equal(t, filepath.Join("/srv/app", "resources", "dashboard", "edad.json"), GetResourcePath(DASHBOARD_FIXTURES_DIR, "edad.json"))
}
