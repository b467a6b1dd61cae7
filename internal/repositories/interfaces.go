package repositories

import (
	"context"

	"booking-status-api/internal/models"
)

// BookingStatusRepository defines persistence operations for booking statuses
type BookingStatusRepository interface {
	// List returns every stored booking status
	List(ctx context.Context) ([]*models.BookingStatus, error)

	// Get returns the status stored for a booking key
	Get(ctx context.Context, bookingKey string) (*models.BookingStatus, error)

	// Upsert inserts the row or overwrites status and updated_at for an existing key
	Upsert(ctx context.Context, bookingKey, status string) error

	// Delete removes the row for a booking key; a missing key is not an error
	Delete(ctx context.Context, bookingKey string) error
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Transaction scopes one write statement to one pooled connection. The
// connection is released by whichever of Commit or Rollback runs first.
type Transaction interface {
	Commit() error
	Rollback() error
	// Context carries the transaction to repository code run inside it
	Context() context.Context
}

// TransactionManager runs write statements inside a transaction
type TransactionManager interface {
	// WithTransaction commits when fn returns nil and rolls back otherwise
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
