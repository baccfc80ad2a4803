package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// UploadConfig holds image upload configuration for the external image host
type UploadConfig struct {
	CloudName   string
	APIKey      string
	APISecret   string
	Folder      string
	MaxFileSize int64
	Timeout     time.Duration
	RetryCount  int
}

// PolicyConfig holds tenancy policy knobs that must be explicit rather than implied
type PolicyConfig struct {
	// CategoryDeletePolicy is either "block" (refuse to delete a category that
	// still has products) or "cascade" (delete the category's products with it).
	CategoryDeletePolicy string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Upload      UploadConfig
	Policy      PolicyConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		ServiceName: getEnv("SERVICE_NAME", "ewa-admin"),
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "ewa_admin"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "ewa_admin"),
		},
		Upload: UploadConfig{
			CloudName:   getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:      getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:   getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:      getEnv("CLOUDINARY_FOLDER", "ewa-fashion"),
			MaxFileSize: int64(getEnvAsInt("UPLOAD_MAX_FILE_SIZE", 5*1024*1024)),
			Timeout:     getEnvAsDuration("UPLOAD_TIMEOUT", 30*time.Second),
			RetryCount:  getEnvAsInt("UPLOAD_RETRY_COUNT", 2),
		},
		Policy: PolicyConfig{
			CategoryDeletePolicy: getEnv("CATEGORY_DELETE_POLICY", "block"),
		},
	}

	if config.Policy.CategoryDeletePolicy != "block" && config.Policy.CategoryDeletePolicy != "cascade" {
		return nil, fmt.Errorf("invalid CATEGORY_DELETE_POLICY %q: must be \"block\" or \"cascade\"", config.Policy.CategoryDeletePolicy)
	}

	return config, nil
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
