package repositories

import (
	"context"
	"errors"
	"testing"
)

func TestRepositoryError_Message(t *testing.T) {
	cause := errors.New("no such table: booking_statuses")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"with key", NewRepositoryError("upsert", "booking_statuses", "room5", cause), `booking_statuses upsert "room5": no such table: booking_statuses`},
		{"without key", NewRepositoryError("list", "booking_statuses", "", cause), "booking_statuses list: no such table: booking_statuses"},
		{"connection", ConnectionError(context.DeadlineExceeded), "connect: database connection error: context deadline exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepositoryError_Predicates(t *testing.T) {
	cause := errors.New("driver: bad connection")

	if !IsNotFound(NotFoundError("booking_statuses", "k")) {
		t.Error("NotFoundError should satisfy IsNotFound")
	}
	if !IsConnection(ConnectionError(cause)) {
		t.Error("ConnectionError should satisfy IsConnection")
	}

	txErr := TransactionError("commit", cause)
	if !IsTransaction(txErr) {
		t.Error("TransactionError should satisfy IsTransaction")
	}
	if !errors.Is(txErr, cause) {
		t.Error("TransactionError should wrap its cause")
	}
	if IsNotFound(txErr) {
		t.Error("TransactionError should not satisfy IsNotFound")
	}
}
