package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"booking-status-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

type txContextKey struct{}

// SQLTransaction implements the Transaction interface on a pooled connection.
// The connection goes back to the pool on Commit or Rollback, whichever
// comes first.
type SQLTransaction struct {
	tx       *sql.Tx
	conn     *sql.Conn
	ctx      context.Context
	logger   *logrus.Logger
	released bool
}

// NewSQLTransaction creates a new transaction wrapper
func NewSQLTransaction(ctx context.Context, conn *sql.Conn, tx *sql.Tx, logger *logrus.Logger) *SQLTransaction {
	if logger == nil {
		logger = logrus.New()
	}
	t := &SQLTransaction{
		tx:     tx,
		conn:   conn,
		logger: logger,
	}
	t.ctx = context.WithValue(ctx, txContextKey{}, t)
	return t
}

// Commit commits the transaction
func (t *SQLTransaction) Commit() error {
	err := t.tx.Commit()
	t.release()
	if err != nil {
		t.logger.WithError(err).Error("Failed to commit transaction")
		return repositories.TransactionError("commit", err)
	}
	t.logger.Debug("Transaction committed successfully")
	return nil
}

// Rollback rolls back the transaction. Rolling back a finished transaction
// is a no-op.
func (t *SQLTransaction) Rollback() error {
	err := t.tx.Rollback()
	t.release()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.logger.WithError(err).Error("Failed to rollback transaction")
		return repositories.TransactionError("rollback", err)
	}
	return nil
}

// Context returns the transaction context
func (t *SQLTransaction) Context() context.Context {
	return t.ctx
}

// Tx returns the underlying transaction
func (t *SQLTransaction) Tx() *sql.Tx {
	return t.tx
}

func (t *SQLTransaction) release() {
	if t.released {
		return
	}
	t.released = true
	if err := t.conn.Close(); err != nil {
		t.logger.WithError(err).Warn("Failed to release connection")
	}
}

// TransactionFromContext returns the transaction started by WithTransaction
func TransactionFromContext(ctx context.Context) (*SQLTransaction, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*SQLTransaction)
	return tx, ok
}

// SQLTransactionManager implements the TransactionManager interface
type SQLTransactionManager struct {
	db     *sql.DB
	logger *logrus.Logger
}

var (
	_ repositories.Transaction        = (*SQLTransaction)(nil)
	_ repositories.TransactionManager = (*SQLTransactionManager)(nil)
)

// NewSQLTransactionManager creates a new transaction manager
func NewSQLTransactionManager(db *sql.DB, logger *logrus.Logger) *SQLTransactionManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLTransactionManager{
		db:     db,
		logger: logger,
	}
}

// begin acquires a connection from the pool and starts a transaction on it
func (tm *SQLTransactionManager) begin(ctx context.Context) (*SQLTransaction, error) {
	conn, err := tm.db.Conn(ctx)
	if err != nil {
		tm.logger.WithError(err).Error("Failed to acquire connection")
		return nil, repositories.ConnectionError(err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		conn.Close()
		tm.logger.WithError(err).Error("Failed to begin transaction")
		return nil, repositories.TransactionError("begin", err)
	}

	tm.logger.Debug("Transaction started successfully")
	return NewSQLTransaction(ctx, conn, tx, tm.logger), nil
}

// WithTransaction executes fn within a transaction, committing on success
// and rolling back on error or panic
func (tm *SQLTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := tm.begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx.Context()); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			tm.logger.WithError(rollbackErr).Error("Failed to rollback transaction after error")
		}
		return err
	}

	return tx.Commit()
}
