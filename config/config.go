package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environments
const ENV_PROD = "prod"

// Session config
const SESSION_COOKIE_NAME = "covid_dashboard_session"
const SESSION_ID_KEY = "sid"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const DASHBOARD_FIXTURES_DIR = "dashboard"
const GEO_COLOMBIA_RESOURCE = "colombia.json"

const devSessionSecret = "dev-session-secret-change-me"

// Config holds runtime configuration read from the environment.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"dev"`
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`

	DashboardAPIBaseURL string        `envconfig:"DASHBOARD_API_BASE_URL" default:"http://localhost:8000"`
	DashboardAPIToken   string        `envconfig:"DASHBOARD_API_TOKEN"`
	DashboardAPITimeout time.Duration `envconfig:"DASHBOARD_API_TIMEOUT" default:"10s"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// PageStateTTL bounds how long a mounted page keeps its data when the
	// session goes away without navigating.
	PageStateTTL  time.Duration `envconfig:"PAGE_STATE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	SessionSecret string        `envconfig:"SESSION_SECRET" default:"dev-session-secret-change-me"`

	// GeoResource is the boundary GeoJSON under the resources directory.
	GeoResource string `envconfig:"GEO_RESOURCE"`
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[Config] ignoring .env: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.GeoResource == "" {
		cfg.GeoResource = GEO_COLOMBIA_RESOURCE
	}
	if cfg.IsProduction() && (cfg.SessionSecret == "" || cfg.SessionSecret == devSessionSecret) {
		return nil, errors.New("SESSION_SECRET must be set in prod")
	}
	return &cfg, nil
}

// IsProduction reports whether the real dashboard API should be used.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == ENV_PROD
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

// GetResourcePath resolves a file under the resources directory.
func GetResourcePath(resource_file ...string) string {
	parts := append([]string{BaseDir(), RESOURCES_PATH_PREFIX}, resource_file...)
	return filepath.Join(parts...)
}
