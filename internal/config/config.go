// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Upload modes decide what the image intake endpoint hands back to the client.
const (
	UploadModeInline = "inline" // re-encode the upload as a self-contained data URI
	UploadModeDisk   = "disk"   // persist under ImageStoragePath and return a public URL
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Card / Export Configuration
	PlaceholderImageURL string  `mapstructure:"PLACEHOLDER_IMAGE_URL"`
	ExportPixelRatio    float64 `mapstructure:"EXPORT_PIXEL_RATIO"`

	// Image Upload Configuration
	UploadMode         string `mapstructure:"UPLOAD_MODE"`
	ImageStoragePath   string `mapstructure:"IMAGE_STORAGE_PATH"`
	ImagePublicBaseURL string `mapstructure:"IMAGE_PUBLIC_BASE_URL"`

	// Cron Jobs
	UploadCleanupJobSchedule string `mapstructure:"UPLOAD_CLEANUP_JOB_SCHEDULE"`
	UploadMaxAgeHours        int    `mapstructure:"UPLOAD_MAX_AGE_HOURS"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "krikins_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("PLACEHOLDER_IMAGE_URL", "https://images.unsplash.com/photo-1633332755192-727a05c4013d?w=400&auto=format&fit=crop&q=60")
	v.SetDefault("EXPORT_PIXEL_RATIO", 2.0)

	v.SetDefault("UPLOAD_MODE", UploadModeInline)
	v.SetDefault("IMAGE_STORAGE_PATH", "./images")
	v.SetDefault("IMAGE_PUBLIC_BASE_URL", "http://localhost:8080/images")

	v.SetDefault("UPLOAD_CLEANUP_JOB_SCHEDULE", "@daily")
	v.SetDefault("UPLOAD_MAX_AGE_HOURS", 24)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute

	// GORM DSN constructed from the individual DB_* params.
	cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)

	if cfg.UploadMode != UploadModeInline && cfg.UploadMode != UploadModeDisk {
		return nil, fmt.Errorf("invalid UPLOAD_MODE %q: must be %q or %q", cfg.UploadMode, UploadModeInline, UploadModeDisk)
	}
	if cfg.ExportPixelRatio <= 0 {
		return nil, fmt.Errorf("EXPORT_PIXEL_RATIO must be positive, got %f", cfg.ExportPixelRatio)
	}

	return &cfg, nil
}
