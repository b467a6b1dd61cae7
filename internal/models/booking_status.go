package models

import (
	"time"
)

// BookingStatus represents a persisted booking status row
type BookingStatus struct {
	BookingKey string    `json:"booking_key" db:"booking_key" validate:"required"`
	Status     string    `json:"status" db:"status" validate:"required"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// StatusMap maps booking keys to their current status label
type StatusMap map[string]string

// UpsertStatusRequest is the POST payload
type UpsertStatusRequest struct {
	BookingKey string `json:"booking_key" validate:"required"`
	Status     string `json:"status" validate:"required"`
}

// DeleteStatusRequest is the DELETE payload
type DeleteStatusRequest struct {
	BookingKey string `json:"booking_key" validate:"required"`
}

// StatusesResponse is the GET response body
type StatusesResponse struct {
	Statuses StatusMap `json:"statuses"`
}

// SuccessResponse is returned by successful writes
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NewStatusMap builds the key/status mapping from persisted rows.
// Later rows win on duplicate keys, which the primary key rules out anyway.
func NewStatusMap(rows []*BookingStatus) StatusMap {
	statuses := make(StatusMap, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		statuses[row.BookingKey] = row.Status
	}
	return statuses
}
