package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"booking-status-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// Manager owns the process-wide connection pool
type Manager struct {
	mu          sync.RWMutex
	config      *repositories.Config
	logger      *logrus.Logger
	factory     *ConnectionFactory
	db          *sql.DB
	health      *HealthChecker
	isConnected bool
}

// NewManager creates a new database manager
func NewManager(config *repositories.Config, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}

	return &Manager{
		config:  config,
		logger:  logger,
		factory: NewConnectionFactory(logger),
	}
}

// Connect opens the connection pool
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isConnected {
		return fmt.Errorf("database already connected")
	}

	db, err := m.factory.CreateConnection(ctx, m.config)
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}

	m.db = db
	m.health = NewHealthChecker(db, m.logger)
	m.isConnected = true

	m.logger.WithField("driver", m.config.Database.Driver).Info("Database pool ready")
	return nil
}

// Disconnect closes the connection pool
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isConnected {
		return nil
	}

	err := m.db.Close()
	m.db = nil
	m.health = nil
	m.isConnected = false

	if err != nil {
		m.logger.WithError(err).Error("Error during database disconnection")
		return fmt.Errorf("failed to disconnect from database: %w", err)
	}

	m.logger.Info("Database disconnected successfully")
	return nil
}

// GetDB returns the connection pool, or nil when not connected
func (m *Manager) GetDB() *sql.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.isConnected {
		return nil
	}
	return m.db
}

// IsConnected returns true if the pool is open
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.isConnected
}

// Config returns the repository configuration the manager was built with
func (m *Manager) Config() *repositories.Config {
	return m.config
}

// CheckHealth performs a health check on the database connection
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	health := m.health
	m.mu.RUnlock()

	if health == nil {
		return repositories.ConnectionError(fmt.Errorf("database not connected"))
	}

	return health.CheckHealth(ctx)
}

// GetHealthStatus returns the current health status
func (m *Manager) GetHealthStatus(ctx context.Context) *HealthStatus {
	m.mu.RLock()
	health := m.health
	m.mu.RUnlock()

	if health == nil {
		return &HealthStatus{
			Healthy: false,
			Message: "Database not connected",
		}
	}

	return health.GetHealthStatus(ctx)
}

// GetStats returns connection pool statistics
func (m *Manager) GetStats() sql.DBStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.db == nil {
		return sql.DBStats{}
	}
	return m.db.Stats()
}

// LogStats logs current connection pool statistics
func (m *Manager) LogStats() {
	stats := m.GetStats()
	m.logger.WithFields(logrus.Fields{
		"open_connections":    stats.OpenConnections,
		"in_use":              stats.InUse,
		"idle":                stats.Idle,
		"wait_count":          stats.WaitCount,
		"wait_duration":       stats.WaitDuration,
		"max_idle_closed":     stats.MaxIdleClosed,
		"max_lifetime_closed": stats.MaxLifetimeClosed,
	}).Info("Connection pool statistics")
}
