package repositories

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by RepositoryError
var (
	ErrNotFound    = errors.New("booking status not found")
	ErrInvalidKey  = errors.New("booking key must not be empty")
	ErrTransaction = errors.New("transaction error")
	ErrConnection  = errors.New("database connection error")
	ErrTimeout     = errors.New("query timeout")
)

// RepositoryError carries the failing operation and booking key alongside the
// driver error. The driver message is kept in Error() since it is surfaced to
// clients on 500 responses.
type RepositoryError struct {
	Op    string // list, get, upsert, delete, begin, commit, connect
	Table string
	Key   string
	Err   error
}

func (e *RepositoryError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Table, e.Op, e.Key, e.Err)
	}
	if e.Table != "" {
		return fmt.Sprintf("%s %s: %v", e.Table, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError wraps err with the operation context
func NewRepositoryError(op, table, key string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Table: table, Key: key, Err: err}
}

// NotFoundError reports a missing booking key
func NotFoundError(table, key string) *RepositoryError {
	return NewRepositoryError("get", table, key, ErrNotFound)
}

// TransactionError reports a failed begin, commit or rollback
func TransactionError(op string, err error) *RepositoryError {
	return NewRepositoryError(op, "", "", fmt.Errorf("%w: %w", ErrTransaction, err))
}

// ConnectionError reports a failure to acquire or reach a connection
func ConnectionError(err error) *RepositoryError {
	return NewRepositoryError("connect", "", "", fmt.Errorf("%w: %w", ErrConnection, err))
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsTransaction(err error) bool { return errors.Is(err, ErrTransaction) }
func IsConnection(err error) bool  { return errors.Is(err, ErrConnection) }
