package config

import (
	"fmt"
	"time"

	"booking-status-api/internal/repositories"
)

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	URL                string        `mapstructure:"url"`
	Driver             string        `mapstructure:"driver"`
	MaxOpenConns       int           `mapstructure:"max_open_conns"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"conn_max_idle_time"`
	QueryTimeout       time.Duration `mapstructure:"query_timeout"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	QueryLogging       bool          `mapstructure:"query_logging"`
}

// IsConfigured reports whether a connection string was provided
func (c *DatabaseConfig) IsConfigured() bool {
	return c.URL != ""
}

// Validate validates the pool settings
func (c *DatabaseConfig) Validate() error {
	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max open connections must be at least 1")
	}

	if c.MaxIdleConns < 0 {
		return fmt.Errorf("max idle connections cannot be negative")
	}

	if c.QueryTimeout < 0 {
		return fmt.Errorf("query timeout cannot be negative")
	}

	return nil
}

// ToRepositoryConfig converts DatabaseConfig to repositories.Config. An empty
// Driver is left for the caller to detect from the URL.
func (c *DatabaseConfig) ToRepositoryConfig() *repositories.Config {
	repoConfig := repositories.DefaultConfig()

	repoConfig.Database.Driver = c.Driver
	repoConfig.Database.DSN = c.URL
	repoConfig.Pool.MaxOpenConns = c.MaxOpenConns
	repoConfig.Pool.MaxIdleConns = c.MaxIdleConns
	if c.MaxIdleConns > c.MaxOpenConns {
		repoConfig.Pool.MaxIdleConns = c.MaxOpenConns
	}
	repoConfig.Pool.ConnMaxLifetime = c.ConnMaxLifetime
	repoConfig.Pool.ConnMaxIdleTime = c.ConnMaxIdleTime
	repoConfig.Query.Timeout = c.QueryTimeout
	repoConfig.Query.SlowQueryThreshold = c.SlowQueryThreshold
	repoConfig.Query.EnableQueryLogging = c.QueryLogging

	return repoConfig
}
