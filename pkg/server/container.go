package server

import (
	"context"
	"fmt"

	"booking-status-api/internal/config"
	"booking-status-api/internal/database"
	"booking-status-api/internal/repositories"
	"booking-status-api/internal/repositories/sqlstore"
	"booking-status-api/internal/services"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *logrus.Logger
	StatusService services.StatusService

	// Internal dependencies
	db       *database.Manager
	store    repositories.HealthChecker
	setupErr error
}

// NewContainer creates a new dependency injection container. It always
// builds: without a DATABASE_URL the service reports services.ErrNotConfigured,
// and a connection string that cannot be used is reported by every call.
func NewContainer(cfg *config.Config) *Container {
	logger := config.NewLogger(cfg)

	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	if !cfg.Database.IsConfigured() {
		logger.Warn("DATABASE_URL not configured; booking status operations will fail")
		container.StatusService = services.NewStatusService(nil)
		return container
	}

	if err := container.connect(cfg); err != nil {
		logger.WithError(err).Error("Database unavailable; booking status operations will fail")
		container.setupErr = err
		container.StatusService = services.NewUnavailableStatusService(err)
	}
	return container
}

func (c *Container) connect(cfg *config.Config) error {
	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	repoConfig, err := repositoryConfig(cfg)
	if err != nil {
		return err
	}

	manager := database.NewManager(repoConfig, c.Logger)
	if err := manager.Connect(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := sqlstore.NewBookingStatusRepository(manager.GetDB(), repoConfig, c.Logger)

	c.db = manager
	c.store = repo
	c.StatusService = services.NewStatusService(repo)
	return nil
}

// repositoryConfig builds the repository configuration, inferring the driver
// from the connection string unless DB_DRIVER overrides it
func repositoryConfig(cfg *config.Config) (*repositories.Config, error) {
	repoConfig := cfg.Database.ToRepositoryConfig()
	if repoConfig.Database.Driver == "" {
		driver, err := database.DetectDriver(cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		repoConfig.Database.Driver = driver
	}
	return repoConfig, nil
}

// Health reports pool and booking status table health for the /health
// endpoint
func (c *Container) Health(ctx context.Context) *database.HealthStatus {
	if c.db == nil {
		err := c.setupErr
		if err == nil {
			err = services.ErrNotConfigured
		}
		return &database.HealthStatus{
			Healthy: false,
			Message: err.Error(),
		}
	}

	status := c.db.GetHealthStatus(ctx)
	if status.Healthy {
		if err := c.store.Health(ctx); err != nil {
			status.Healthy = false
			status.Message = err.Error()
		}
	}
	return status
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}

	c.db.LogStats()
	if err := c.db.Disconnect(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
