package config

import (
	"os"
	"strconv"
	"time"
)

// Config aggregates application settings read from the environment.
type Config struct {
	Addr          string
	DBPath        string
	MigrationsURL string
	UploadDir     string
	JWTSecret     string
	JWTTTL        time.Duration
	ClassifierURL string
	MaxUploadMB   int64
}

const (
	defaultAddr          = ":8088"
	defaultDBPath        = "./birdlens.db"
	defaultMigrationsURL = "file://pkg/db/migrations/sqlite"
	defaultUploadDir     = "uploads"
	defaultJWTSecret     = "birdlens-dev-secret"
	defaultJWTTTL        = 24 * time.Hour
	defaultMaxUploadMB   = 10
)

// Load reads configuration from environment variables, applying defaults.
func Load() Config {
	cfg := Config{
		Addr:          valueOrDefault("BIRDLENS_ADDR", defaultAddr),
		DBPath:        valueOrDefault("BIRDLENS_DB", defaultDBPath),
		MigrationsURL: valueOrDefault("BIRDLENS_MIGRATIONS", defaultMigrationsURL),
		UploadDir:     valueOrDefault("BIRDLENS_UPLOAD_DIR", defaultUploadDir),
		JWTSecret:     valueOrDefault("BIRDLENS_JWT_SECRET", defaultJWTSecret),
		JWTTTL:        parseDurationWithDefault("BIRDLENS_JWT_TTL", defaultJWTTTL),
		ClassifierURL: os.Getenv("BIRDLENS_CLASSIFIER_URL"),
		MaxUploadMB:   parseInt64WithDefault("BIRDLENS_MAX_UPLOAD_MB", defaultMaxUploadMB),
	}
	return cfg
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationWithDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseInt64WithDefault(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
