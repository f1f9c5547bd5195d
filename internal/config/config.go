// Package config loads and validates environment variables at startup.
// Invalid configuration is reported as an error so the process can fail fast.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"smorg/backend/internal/domain"
)

const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreRedis     = "redis"
	StoreSQLite    = "sqlite"
	StoreMemory    = "memory"
)

type Config struct {
	Environment       string
	ProjectID         string
	FirestoreDatabase string
	CORSOrigins       []string
	PublicRead        bool

	EventStore  string // firestore | postgres
	DatabaseURL string

	StateStore string // firestore | redis | sqlite | memory
	RedisURL   string
	SQLitePath string

	GeolocationTimeout time.Duration
	GeocoderBaseURL    string
	IPLookupBaseURL    string
	DefaultLocation    domain.UserLocation
	EnergyLevels       domain.LevelDomain

	PruneSchedule  string
	PruneRetention time.Duration
	ShareBaseURL   string
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	var errs []string
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	cfg := &Config{
		Environment:       getEnv("APP_ENV", "development"),
		ProjectID:         getEnv("GOOGLE_CLOUD_PROJECT", "local-project-id"),
		FirestoreDatabase: os.Getenv("FIRESTORE_DATABASE_ID"),
		CORSOrigins:       getEnvAsList("CORS_ALLOWED_ORIGIN", "*"),
		EventStore:        strings.ToLower(getEnv("EVENT_STORE", StoreFirestore)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		StateStore:        strings.ToLower(getEnv("STATE_STORE", StoreFirestore)),
		RedisURL:          os.Getenv("REDIS_URL"),
		SQLitePath:        getEnv("SQLITE_PATH", "data/state.db"),
		GeocoderBaseURL:   getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		IPLookupBaseURL:   getEnv("IP_LOOKUP_BASE_URL", "https://ipapi.co"),
		PruneSchedule:     getEnv("PRUNE_SCHEDULE", "@every 6h"),
		ShareBaseURL:      getEnv("SHARE_BASE_URL", "http://127.0.0.1:5000"),
	}

	if len(cfg.CORSOrigins) == 0 {
		fail("CORS_ALLOWED_ORIGIN must list at least one origin")
	}

	var err error
	if cfg.PublicRead, err = strconv.ParseBool(getEnv("PUBLIC_READ", "true")); err != nil {
		fail("PUBLIC_READ must be a boolean, got %q", os.Getenv("PUBLIC_READ"))
	}

	switch cfg.EventStore {
	case StoreFirestore:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			fail("DATABASE_URL is required when EVENT_STORE=postgres")
		}
	default:
		fail("EVENT_STORE must be firestore or postgres, got %q", cfg.EventStore)
	}

	switch cfg.StateStore {
	case StoreFirestore, StoreMemory:
	case StoreRedis:
		if cfg.RedisURL == "" {
			fail("REDIS_URL is required when STATE_STORE=redis")
		}
	case StoreSQLite:
		if cfg.SQLitePath == "" {
			fail("SQLITE_PATH is required when STATE_STORE=sqlite")
		}
	default:
		fail("STATE_STORE must be firestore, redis, sqlite or memory, got %q", cfg.StateStore)
	}

	if cfg.GeolocationTimeout, err = getEnvAsDuration("GEOLOCATION_TIMEOUT", 5*time.Second); err != nil || cfg.GeolocationTimeout <= 0 {
		fail("GEOLOCATION_TIMEOUT must be a positive duration, got %q", os.Getenv("GEOLOCATION_TIMEOUT"))
	}
	if cfg.PruneRetention, err = getEnvAsDuration("PRUNE_RETENTION", 24*time.Hour); err != nil || cfg.PruneRetention < 0 {
		fail("PRUNE_RETENTION must be a non-negative duration, got %q", os.Getenv("PRUNE_RETENTION"))
	}
	if _, err := cron.ParseStandard(cfg.PruneSchedule); err != nil {
		fail("PRUNE_SCHEDULE is not a valid cron spec: %v", err)
	}

	if cfg.EnergyLevels, err = domain.ParseLevelDomain(getEnv("ENERGY_LEVELS", "1,2,3,4,5")); err != nil {
		fail("ENERGY_LEVELS: %v", err)
	}

	cfg.DefaultLocation = domain.UserLocation{
		City:   getEnv("DEFAULT_CITY", "Seattle"),
		State:  getEnv("DEFAULT_STATE", "WA"),
		Status: domain.StatusDefault,
	}
	if cfg.DefaultLocation.Latitude, err = getEnvAsFloat("DEFAULT_LAT", 47.6062); err != nil || cfg.DefaultLocation.Latitude < -90 || cfg.DefaultLocation.Latitude > 90 {
		fail("DEFAULT_LAT must be a latitude, got %q", os.Getenv("DEFAULT_LAT"))
	}
	if cfg.DefaultLocation.Longitude, err = getEnvAsFloat("DEFAULT_LON", -122.3321); err != nil || cfg.DefaultLocation.Longitude < -180 || cfg.DefaultLocation.Longitude > 180 {
		fail("DEFAULT_LON must be a longitude, got %q", os.Getenv("DEFAULT_LON"))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// getEnvAsList splits a comma separated value, dropping empty entries.
func getEnvAsList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
