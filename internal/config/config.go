package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment  string
	Port         string
	LogLevel     string
	LogFormat    string
	MaxBodyBytes int64
	Database     DatabaseConfig
	RateLimit    RateLimitConfig
}

// RateLimitConfig holds rate limiting configuration for the local server
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 15*time.Minute)
	v.SetDefault("DB_QUERY_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_SLOW_QUERY_THRESHOLD", time.Second)
	v.SetDefault("DB_QUERY_LOGGING", false)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	config := &Config{
		Environment:  v.GetString("ENVIRONMENT"),
		Port:         v.GetString("PORT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFormat:    v.GetString("LOG_FORMAT"),
		MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),
		Database: DatabaseConfig{
			URL:                v.GetString("DATABASE_URL"),
			Driver:             v.GetString("DB_DRIVER"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime:    v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime:    v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
			QueryTimeout:       v.GetDuration("DB_QUERY_TIMEOUT"),
			SlowQueryThreshold: v.GetDuration("DB_SLOW_QUERY_THRESHOLD"),
			QueryLogging:       v.GetBool("DB_QUERY_LOGGING"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
