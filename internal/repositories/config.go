package repositories

import (
	"errors"
	"time"
)

// Config represents repository configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig `json:"database" yaml:"database"`

	// Connection pool configuration
	Pool PoolConfig `json:"pool" yaml:"pool"`

	// Query configuration
	Query QueryConfig `json:"query" yaml:"query"`
}

// DatabaseConfig represents database-specific configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, sqlite)
	Driver string `json:"driver" yaml:"driver"`

	// DSN is the data source name / connection string
	DSN string `json:"dsn" yaml:"dsn"`

	// Table holding the booking status rows
	Table string `json:"table" yaml:"table"`

	// Busy timeout for SQLite (in milliseconds)
	BusyTimeout int `json:"busy_timeout" yaml:"busy_timeout"`
}

// PoolConfig represents connection pool configuration
type PoolConfig struct {
	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `json:"max_open_conns" yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns" yaml:"max_idle_conns"`

	// ConnMaxLifetime is the maximum lifetime of a connection
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`

	// ConnMaxIdleTime is the maximum idle time of a connection
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time"`
}

// QueryConfig represents query-specific configuration
type QueryConfig struct {
	// Timeout bounds a single repository call; zero means no bound
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// SlowQueryThreshold is the threshold for logging slow queries
	SlowQueryThreshold time.Duration `json:"slow_query_threshold" yaml:"slow_query_threshold"`

	// EnableQueryLogging enables query logging
	EnableQueryLogging bool `json:"enable_query_logging" yaml:"enable_query_logging"`

	// LogSlowQueries enables slow query logging
	LogSlowQueries bool `json:"log_slow_queries" yaml:"log_slow_queries"`
}

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultTable is the booking status table name
const DefaultTable = "booking_statuses"

// DefaultConfig returns a default repository configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      DriverPostgres,
			Table:       DefaultTable,
			BusyTimeout: 5000,
		},
		Pool: PoolConfig{
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: time.Minute * 15,
		},
		Query: QueryConfig{
			Timeout:            time.Second * 10,
			SlowQueryThreshold: time.Second,
			EnableQueryLogging: false,
			LogSlowQueries:     true,
		},
	}
}

// Validate validates the repository configuration
func (c *Config) Validate() error {
	if c.Database.Driver == "" {
		return errors.New("database driver is required")
	}

	if !c.IsSQLite() && !c.IsPostgreSQL() {
		return errors.New("unsupported database driver: " + c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return errors.New("database DSN is required")
	}

	if c.Pool.MaxOpenConns <= 0 {
		return errors.New("max open connections must be greater than 0")
	}

	if c.Pool.MaxIdleConns < 0 {
		return errors.New("max idle connections cannot be negative")
	}

	if c.Pool.MaxIdleConns > c.Pool.MaxOpenConns {
		return errors.New("max idle connections cannot exceed max open connections")
	}

	if c.Query.Timeout < 0 {
		return errors.New("query timeout cannot be negative")
	}

	return nil
}

// GetDSN returns the connection string
func (c *Config) GetDSN() string {
	return c.Database.DSN
}

// TableName returns the configured table, falling back to the default
func (c *Config) TableName() string {
	if c.Database.Table == "" {
		return DefaultTable
	}
	return c.Database.Table
}

// IsSQLite returns true if the database driver is SQLite
func (c *Config) IsSQLite() bool {
	return c.Database.Driver == DriverSQLite || c.Database.Driver == "sqlite3"
}

// IsPostgreSQL returns true if the database driver is PostgreSQL
func (c *Config) IsPostgreSQL() bool {
	return c.Database.Driver == DriverPostgres || c.Database.Driver == "postgresql"
}
