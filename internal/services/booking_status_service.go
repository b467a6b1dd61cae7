package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"booking-status-api/internal/models"
	"booking-status-api/internal/repositories"
)

// statusService implements the StatusService interface
type statusService struct {
	statusRepo repositories.BookingStatusRepository
	setupErr   error
	validator  *validator.Validate
}

// NewStatusService creates a new status service. A nil repository means the
// database is not configured; every call then fails with ErrNotConfigured.
func NewStatusService(statusRepo repositories.BookingStatusRepository) StatusService {
	return &statusService{
		statusRepo: statusRepo,
		validator:  validator.New(),
	}
}

// NewUnavailableStatusService creates a service for a database that could
// not be set up. Every call fails with err.
func NewUnavailableStatusService(err error) StatusService {
	return &statusService{
		setupErr:  err,
		validator: validator.New(),
	}
}

// Ready reports the setup error, ErrNotConfigured without a repository, or nil
func (s *statusService) Ready() error {
	if s.setupErr != nil {
		return s.setupErr
	}
	if err := s.Ready(); err != nil {
		return err
	}
	return nil
}

// ListStatuses returns the booking key to status mapping
func (s *statusService) ListStatuses(ctx context.Context) (models.StatusMap, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}

	rows, err := s.statusRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking statuses: %w", err)
	}

	return models.NewStatusMap(rows), nil
}

// SetStatus validates the payload and upserts the status
func (s *statusService) SetStatus(ctx context.Context, req *models.UpsertStatusRequest) error {
	if err := s.Ready(); err != nil {
		return err
	}

	if req == nil {
		return &ValidationError{Message: MsgUpsertFieldsRequired}
	}
	if err := s.validator.Struct(req); err != nil {
		return &ValidationError{Message: MsgUpsertFieldsRequired, Err: err}
	}

	if err := s.statusRepo.Upsert(ctx, req.BookingKey, req.Status); err != nil {
		return fmt.Errorf("failed to save booking status: %w", err)
	}

	return nil
}

// DeleteStatus validates the payload and deletes the status
func (s *statusService) DeleteStatus(ctx context.Context, req *models.DeleteStatusRequest) error {
	if err := s.Ready(); err != nil {
		return err
	}

	if req == nil {
		return &ValidationError{Message: MsgDeleteKeyRequired}
	}
	if err := s.validator.Struct(req); err != nil {
		return &ValidationError{Message: MsgDeleteKeyRequired, Err: err}
	}

	if err := s.statusRepo.Delete(ctx, req.BookingKey); err != nil {
		return fmt.Errorf("failed to delete booking status: %w", err)
	}

	return nil
}
