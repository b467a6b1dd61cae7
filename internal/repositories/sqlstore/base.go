package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"booking-status-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// executor is satisfied by *sql.Conn and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BaseRepository provides common functionality for SQL repositories
type BaseRepository[T any] struct {
	db      *sql.DB
	dialect Dialect
	table   string
	query   repositories.QueryConfig
	logger  *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository[T any](db *sql.DB, config *repositories.Config, logger *logrus.Logger) *BaseRepository[T] {
	if logger == nil {
		logger = logrus.New()
	}
	if config == nil {
		config = repositories.DefaultConfig()
	}
	return &BaseRepository[T]{
		db:      db,
		dialect: DialectFor(config),
		table:   config.TableName(),
		query:   config.Query,
		logger:  logger,
	}
}

// withTimeout bounds ctx by the configured query timeout
func (r *BaseRepository[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.query.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.query.Timeout)
}

// withConn acquires one pooled connection for the duration of fn
func (r *BaseRepository[T]) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return repositories.ConnectionError(err)
	}
	defer conn.Close()

	return fn(conn)
}

// logQuery logs a query with its execution time
func (r *BaseRepository[T]) logQuery(operation string, query string, args []any, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"dialect":   r.dialect.String(),
		"duration":  duration,
	}
	if r.query.EnableQueryLogging {
		fields["query"] = query
		fields["args"] = args
	}

	switch {
	case err != nil:
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	case r.query.LogSlowQueries && r.query.SlowQueryThreshold > 0 && duration > r.query.SlowQueryThreshold:
		r.logger.WithFields(fields).Warn("Slow query")
	default:
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// executeQuery executes a query and logs the result
func (r *BaseRepository[T]) executeQuery(ctx context.Context, q executor, operation, query string, args ...any) (*sql.Rows, error) {
	query = r.dialect.Rebind(query)

	start := time.Now()
	rows, err := q.QueryContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, r.wrapError(operation, "", err)
	}
	return rows, nil
}

// executeQueryRow executes a single-row query and logs the result
func (r *BaseRepository[T]) executeQueryRow(ctx context.Context, q executor, operation, query string, args ...any) *sql.Row {
	query = r.dialect.Rebind(query)

	start := time.Now()
	row := q.QueryRowContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), row.Err())

	return row
}

// executeExec executes a non-query statement and logs the result
func (r *BaseRepository[T]) executeExec(ctx context.Context, q executor, operation, query string, args ...any) (sql.Result, error) {
	query = r.dialect.Rebind(query)

	start := time.Now()
	result, err := q.ExecContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, r.wrapError(operation, "", err)
	}
	return result, nil
}

// wrapError attaches repository context, marking deadline overruns as timeouts
func (r *BaseRepository[T]) wrapError(operation, id string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = errors.Join(repositories.ErrTimeout, err)
	}
	return repositories.NewRepositoryError(operation, r.table, id, err)
}

// validateKey rejects an empty key; surrounding whitespace is significant
func (r *BaseRepository[T]) validateKey(key string) error {
	if key == "" {
		return repositories.NewRepositoryError("validate", r.table, key, repositories.ErrInvalidKey)
	}
	return nil
}
