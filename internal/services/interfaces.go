package services

import (
	"context"

	"booking-status-api/internal/models"
)

// StatusService defines the booking status operations exposed by the handler
type StatusService interface {
	// Ready returns nil when a database backs the service, otherwise the
	// error every operation would fail with
	Ready() error

	// ListStatuses returns every booking key with its current status
	ListStatuses(ctx context.Context) (models.StatusMap, error)

	// SetStatus creates or overwrites the status of a booking key
	SetStatus(ctx context.Context, req *models.UpsertStatusRequest) error

	// DeleteStatus removes the status of a booking key; missing keys succeed
	DeleteStatus(ctx context.Context, req *models.DeleteStatusRequest) error
}
