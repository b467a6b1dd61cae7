package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"booking-status-api/internal/repositories"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// ConnectionFactory creates and manages database connections
type ConnectionFactory struct {
	logger *logrus.Logger
}

// NewConnectionFactory creates a new connection factory
func NewConnectionFactory(logger *logrus.Logger) *ConnectionFactory {
	if logger == nil {
		logger = logrus.New()
	}
	return &ConnectionFactory{
		logger: logger,
	}
}

// CreateConnection opens a connection pool based on the configuration.
// No connection is dialed here; the first query acquires one, so a database
// outage surfaces per request instead of failing process start.
func (f *ConnectionFactory) CreateConnection(ctx context.Context, config *repositories.Config) (*sql.DB, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	switch {
	case config.IsSQLite():
		return f.createSQLiteConnection(ctx, config)
	case config.IsPostgreSQL():
		return f.createPostgreSQLConnection(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}
}

// createSQLiteConnection creates a SQLite connection pool
func (f *ConnectionFactory) createSQLiteConnection(ctx context.Context, config *repositories.Config) (*sql.DB, error) {
	dsn := f.buildSQLiteDSN(sqliteDSN(config.GetDSN()), config)

	f.logger.WithFields(logrus.Fields{
		"driver": "sqlite3",
		"dsn":    dsn,
	}).Info("Creating SQLite connection")

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	f.configureConnectionPool(db, config)
	return db, nil
}

// buildSQLiteDSN appends go-sqlite3 options unless the caller already set them
func (f *ConnectionFactory) buildSQLiteDSN(path string, config *repositories.Config) string {
	if config.Database.BusyTimeout <= 0 || strings.Contains(path, "_busy_timeout") {
		return path
	}

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", path, separator, config.Database.BusyTimeout)
}

// createPostgreSQLConnection creates a PostgreSQL connection pool through lib/pq
func (f *ConnectionFactory) createPostgreSQLConnection(ctx context.Context, config *repositories.Config) (*sql.DB, error) {
	f.logger.WithField("driver", "postgres").Info("Creating PostgreSQL connection")

	db, err := sql.Open("postgres", config.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	f.configureConnectionPool(db, config)
	return db, nil
}

// configureConnectionPool configures the database connection pool
func (f *ConnectionFactory) configureConnectionPool(db *sql.DB, config *repositories.Config) {
	db.SetMaxOpenConns(config.Pool.MaxOpenConns)
	db.SetMaxIdleConns(config.Pool.MaxIdleConns)
	db.SetConnMaxLifetime(config.Pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.Pool.ConnMaxIdleTime)

	f.logger.WithFields(logrus.Fields{
		"max_open_conns":     config.Pool.MaxOpenConns,
		"max_idle_conns":     config.Pool.MaxIdleConns,
		"conn_max_lifetime":  config.Pool.ConnMaxLifetime,
		"conn_max_idle_time": config.Pool.ConnMaxIdleTime,
	}).Debug("Configured connection pool")
}

// HealthChecker provides health checking capabilities for database connections
type HealthChecker struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *sql.DB, logger *logrus.Logger) *HealthChecker {
	if logger == nil {
		logger = logrus.New()
	}
	return &HealthChecker{
		db:     db,
		logger: logger,
	}
}

// CheckHealth pings the database and runs a trivial query
func (h *HealthChecker) CheckHealth(ctx context.Context) error {
	start := time.Now()
	defer func() {
		h.logger.WithField("duration", time.Since(start)).Debug("Health check completed")
	}()

	if err := h.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var result int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}

	return nil
}

// HealthStatus describes the outcome of a health check
type HealthStatus struct {
	Healthy      bool              `json:"healthy"`
	Message      string            `json:"message"`
	CheckedAt    time.Time         `json:"checked_at"`
	ResponseTime time.Duration     `json:"response_time"`
	Details      map[string]string `json:"details,omitempty"`
}

// GetHealthStatus returns detailed health status
func (h *HealthChecker) GetHealthStatus(ctx context.Context) *HealthStatus {
	start := time.Now()
	status := &HealthStatus{
		CheckedAt: start,
		Details:   make(map[string]string),
	}

	err := h.CheckHealth(ctx)
	status.ResponseTime = time.Since(start)

	if err != nil {
		status.Healthy = false
		status.Message = err.Error()
		return status
	}

	status.Healthy = true
	status.Message = "Database is healthy"

	stats := h.db.Stats()
	status.Details["open_connections"] = fmt.Sprintf("%d", stats.OpenConnections)
	status.Details["in_use"] = fmt.Sprintf("%d", stats.InUse)
	status.Details["idle"] = fmt.Sprintf("%d", stats.Idle)
	status.Details["wait_count"] = fmt.Sprintf("%d", stats.WaitCount)
	status.Details["wait_duration"] = stats.WaitDuration.String()

	return status
}
