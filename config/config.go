// Package config loads the service configuration from the environment,
// with a .env file honored during development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting of the service.
type Config struct {
	ServerPort   string
	AuthKey      string
	Environment  string
	RowTol       float64
	RasterDPI    float64
	OCRLanguages string
	ImagePath    string
	CacheTTL     time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	ArchiveBucket  string
}

// Load reads the configuration. A missing .env file is not an error;
// deployed environments set real variables instead.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		AuthKey:      getEnv("AUTH_KEY", ""),
		Environment:  getEnv("ENVIRONMENT", "development"),
		RowTol:       getEnvFloat("ROW_TOL", 20),
		RasterDPI:    getEnvFloat("RASTER_DPI", 205),
		OCRLanguages: getEnv("OCR_LANGUAGES", "deu+eng"),
		ImagePath:    getEnv("IMAGE_PATH", os.TempDir()),
		CacheTTL:     time.Duration(getEnvInt("CACHE_TTL_MINUTES", 10)) * time.Minute,

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		ArchiveBucket:  getEnv("ARCHIVE_BUCKET", "substitution-plans"),
	}
}

// Production reports whether the service runs in its deployed
// environment.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		slog.Warn("invalid numeric setting, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid numeric setting, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean setting, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}
