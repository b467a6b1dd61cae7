package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"booking-status-api/internal/models"
	"booking-status-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// BookingStatusRepository implements repositories.BookingStatusRepository over database/sql
type BookingStatusRepository struct {
	*BaseRepository[models.BookingStatus]
	txm *SQLTransactionManager
}

var (
	_ repositories.BookingStatusRepository = (*BookingStatusRepository)(nil)
	_ repositories.HealthChecker           = (*BookingStatusRepository)(nil)
)

// NewBookingStatusRepository creates a new booking status repository
func NewBookingStatusRepository(db *sql.DB, config *repositories.Config, logger *logrus.Logger) *BookingStatusRepository {
	base := NewBaseRepository[models.BookingStatus](db, config, logger)
	return &BookingStatusRepository{
		BaseRepository: base,
		txm:            NewSQLTransactionManager(db, base.logger),
	}
}

// List retrieves every booking status row
func (r *BookingStatusRepository) List(ctx context.Context) ([]*models.BookingStatus, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT booking_key, status, updated_at FROM %s", r.table)

	var statuses []*models.BookingStatus
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := r.executeQuery(ctx, conn, "list", query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			row, err := scanBookingStatus(rows)
			if err != nil {
				return r.wrapError("list", "", err)
			}
			statuses = append(statuses, row)
		}

		if err := rows.Err(); err != nil {
			return r.wrapError("list", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return statuses, nil
}

// Get retrieves the status stored for a booking key
func (r *BookingStatusRepository) Get(ctx context.Context, bookingKey string) (*models.BookingStatus, error) {
	if err := r.validateKey(bookingKey); err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT booking_key, status, updated_at FROM %s WHERE booking_key = ?", r.table)

	var status *models.BookingStatus
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		row := r.executeQueryRow(ctx, conn, "get", query, bookingKey)

		var err error
		status, err = scanBookingStatus(row)
		if errors.Is(err, sql.ErrNoRows) {
			return repositories.NotFoundError(r.table, bookingKey)
		}
		if err != nil {
			return r.wrapError("get", bookingKey, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// Upsert inserts a row or overwrites status and updated_at for an existing key.
// Concurrent writers for one key converge on the last committed write through
// the ON CONFLICT clause.
func (r *BookingStatusRepository) Upsert(ctx context.Context, bookingKey, status string) error {
	if err := r.validateKey(bookingKey); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (booking_key, status, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (booking_key) DO UPDATE
		SET status = EXCLUDED.status, updated_at = CURRENT_TIMESTAMP`, r.table)

	return r.txm.WithTransaction(ctx, func(ctx context.Context) error {
		tx, _ := TransactionFromContext(ctx)
		_, err := r.executeExec(ctx, tx.Tx(), "upsert", query, bookingKey, status)
		return err
	})
}

// Delete removes the row for a booking key. Deleting a missing key succeeds.
func (r *BookingStatusRepository) Delete(ctx context.Context, bookingKey string) error {
	if err := r.validateKey(bookingKey); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("DELETE FROM %s WHERE booking_key = ?", r.table)

	return r.txm.WithTransaction(ctx, func(ctx context.Context) error {
		tx, _ := TransactionFromContext(ctx)
		result, err := r.executeExec(ctx, tx.Tx(), "delete", query, bookingKey)
		if err != nil {
			return err
		}

		if affected, err := result.RowsAffected(); err == nil {
			r.logger.WithFields(logrus.Fields{
				"booking_key":   bookingKey,
				"rows_affected": affected,
			}).Debug("Booking status deleted")
		}
		return nil
	})
}

// Health checks that a pooled connection can reach the database and that the
// booking status table can be queried
func (r *BookingStatusRepository) Health(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT booking_key FROM %s LIMIT 1", r.table)

	return r.withConn(ctx, func(conn *sql.Conn) error {
		if err := conn.PingContext(ctx); err != nil {
			return repositories.ConnectionError(err)
		}

		rows, err := r.executeQuery(ctx, conn, "health", query)
		if err != nil {
			return err
		}
		return rows.Close()
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBookingStatus reads one row; NULL status or timestamp columns come back
// as zero values
func scanBookingStatus(row rowScanner) (*models.BookingStatus, error) {
	var (
		status    sql.NullString
		updatedAt sql.NullTime
		result    models.BookingStatus
	)

	if err := row.Scan(&result.BookingKey, &status, &updatedAt); err != nil {
		return nil, err
	}

	result.Status = status.String
	result.UpdatedAt = updatedAt.Time
	return &result, nil
}
