package lambda

import (
	"sync"

	"booking-status-api/internal/config"
	"booking-status-api/pkg/server"
)

// ConnectionManager keeps one service container, and with it one connection
// pool, alive across warm Lambda invocations
type ConnectionManager struct {
	mu        sync.Mutex
	container *server.Container
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = &ConnectionManager{}
	})
	return globalConnectionManager
}

// Initialize builds the container from cfg unless one is already held
func (cm *ConnectionManager) Initialize(cfg *config.Config) *server.Container {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		cm.container = server.NewContainer(cfg)
	}
	return cm.container
}

// GetContainer returns the held container, building one from the
// environment on first use
func (cm *ConnectionManager) GetContainer() (*server.Container, error) {
	cm.mu.Lock()
	container := cm.container
	cm.mu.Unlock()
	if container != nil {
		return container, nil
	}

	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		return nil, err
	}
	return cm.Initialize(cfg), nil
}

// Cleanup closes the container and its connection pool. The next
// GetContainer call builds a fresh one.
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}
