package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP server
	HTTPHost       string        `env:"HTTP_HOST" default:"127.0.0.1"`
	HTTPPort       int           `env:"HTTP_PORT" default:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"5s"`

	// Database: a sqlite file path, or a postgres URL / DSN
	DatabaseURL string `env:"DATABASE_URL" default:"db.sqlite3"`

	// Poster storage
	PosterStorage string `env:"POSTER_STORAGE" default:"local"`
	UploadDir     string `env:"UPLOAD_DIR" default:"static/images"`
	UploadMaxSize string `env:"UPLOAD_MAX_SIZE" default:"10MB"`

	// MinIO, used when POSTER_STORAGE=minio
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" default:"posters"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" default:"false"`

	// Redis score cache, disabled when REDIS_URL is empty
	RedisURL      string        `env:"REDIS_URL"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" default:"15m"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"info"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:8080"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env is fine, system env vars still apply
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	// HTTP
	loadEnvString(&config.HTTPHost, "HTTP_HOST", "127.0.0.1")
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	// Database
	loadEnvString(&config.DatabaseURL, "DATABASE_URL", "db.sqlite3")

	// Posters
	loadEnvString(&config.PosterStorage, "POSTER_STORAGE", "local")
	loadEnvString(&config.UploadDir, "UPLOAD_DIR", "static/images")
	loadEnvString(&config.UploadMaxSize, "UPLOAD_MAX_SIZE", "10MB")

	// MinIO
	loadEnvString(&config.MinioEndpoint, "MINIO_ENDPOINT", "")
	loadEnvString(&config.MinioAccessKey, "MINIO_ACCESS_KEY", "")
	loadEnvString(&config.MinioSecretKey, "MINIO_SECRET_KEY", "")
	loadEnvString(&config.MinioBucket, "MINIO_BUCKET", "posters")
	if err := loadEnvBool(&config.MinioUseSSL, "MINIO_USE_SSL", false); err != nil {
		return nil, err
	}

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "")
	loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "")
	if err := loadEnvDuration(&config.CacheTTL, "CACHE_TTL", 15*time.Minute); err != nil {
		return nil, err
	}

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")
	loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:8080"})

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		// Trim whitespace from each element
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}
	if c.RequestTimeout <= 0 {
		errors = append(errors, "REQUEST_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errors = append(errors, "DATABASE_URL must not be empty")
	}

	switch c.PosterStorage {
	case "local":
		if strings.TrimSpace(c.UploadDir) == "" {
			errors = append(errors, "UPLOAD_DIR must not be empty")
		}
	case "minio":
		if c.MinioEndpoint == "" || c.MinioBucket == "" {
			errors = append(errors, "MINIO_ENDPOINT and MINIO_BUCKET are required when POSTER_STORAGE=minio")
		}
	default:
		errors = append(errors, "POSTER_STORAGE must be one of: local, minio")
	}

	if size, err := c.UploadMaxBytes(); err != nil || size <= 0 {
		errors = append(errors, "UPLOAD_MAX_SIZE must be a positive size such as 10MB")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// UploadMaxBytes parses UPLOAD_MAX_SIZE ("10MB", "512KiB", ...) into bytes.
func (c *Config) UploadMaxBytes() (int64, error) {
	return units.FromHumanSize(c.UploadMaxSize)
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Address is the host:port the HTTP server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
