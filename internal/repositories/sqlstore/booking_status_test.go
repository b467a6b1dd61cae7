package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"booking-status-api/internal/repositories"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

const createBookingStatuses = `
	CREATE TABLE booking_statuses (
		booking_key TEXT PRIMARY KEY,
		status TEXT,
		updated_at TIMESTAMP
	)`

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	tempDir, err := os.MkdirTemp("", "sqlstore_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tempDir, "test.db")
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if _, err := db.Exec(createBookingStatuses); err != nil {
		t.Fatalf("Failed to create booking_statuses table: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tempDir)
	}

	return db, cleanup
}

func newTestRepository(db *sql.DB) *BookingStatusRepository {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	config := repositories.DefaultConfig()
	config.Database.Driver = repositories.DriverSQLite
	return NewBookingStatusRepository(db, config, logger)
}

func TestBookingStatusRepository_UpsertAndList(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := newTestRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "room5-2024-01-01", "confirmed"); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	if err := repo.Upsert(ctx, "room6-2024-01-01", "pending"); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	statuses, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(statuses) != 2 {
		t.Fatalf("List() returned %d rows, want 2", len(statuses))
	}

	got := map[string]string{}
	for _, s := range statuses {
		got[s.BookingKey] = s.Status
		if s.UpdatedAt.IsZero() {
			t.Errorf("UpdatedAt not set for %s", s.BookingKey)
		}
	}

	if got["room5-2024-01-01"] != "confirmed" || got["room6-2024-01-01"] != "pending" {
		t.Errorf("List() = %v", got)
	}
}

func TestBookingStatusRepository_UpsertOverwrites(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := newTestRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "room5", "pending"); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	// Backdate the row so the refreshed timestamp is observable
	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := db.Exec("UPDATE booking_statuses SET updated_at = ? WHERE booking_key = ?", past, "room5"); err != nil {
		t.Fatalf("Failed to backdate row: %v", err)
	}

	if err := repo.Upsert(ctx, "room5", "confirmed"); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	status, err := repo.Get(ctx, "room5")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if status.Status != "confirmed" {
		t.Errorf("Status = %s, want confirmed", status.Status)
	}
	if !status.UpdatedAt.After(past) {
		t.Errorf("UpdatedAt = %v, want refreshed after %v", status.UpdatedAt, past)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM booking_statuses").Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Row count = %d, want 1", count)
	}
}

func TestBookingStatusRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := newTestRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "keep", "confirmed"); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	if err := repo.Upsert(ctx, "drop", "confirmed"); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	if err := repo.Delete(ctx, "drop"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	_, err := repo.Get(ctx, "drop")
	if !repositories.IsNotFound(err) {
		t.Errorf("Get() after Delete() error = %v, want not found", err)
	}

	// Deleting a missing key is idempotent
	if err := repo.Delete(ctx, "does-not-exist"); err != nil {
		t.Errorf("Delete() of missing key failed: %v", err)
	}

	if _, err := repo.Get(ctx, "keep"); err != nil {
		t.Errorf("Get() of untouched key failed: %v", err)
	}
}

func TestBookingStatusRepository_EmptyKey(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := newTestRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "", "x"); !errors.Is(err, repositories.ErrInvalidKey) {
		t.Errorf("Upsert() with empty key error = %v, want ErrInvalidKey", err)
	}
	if err := repo.Delete(ctx, ""); !errors.Is(err, repositories.ErrInvalidKey) {
		t.Errorf("Delete() with empty key error = %v, want ErrInvalidKey", err)
	}
}

func TestBookingStatusRepository_NullColumns(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := db.Exec("INSERT INTO booking_statuses (booking_key) VALUES ('bare')"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	statuses, err := newTestRepository(db).List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(statuses) != 1 || statuses[0].Status != "" || !statuses[0].UpdatedAt.IsZero() {
		t.Errorf("List() = %+v, want one row with zero status and timestamp", statuses)
	}
}

func TestBookingStatusRepository_MissingTable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := db.Exec("DROP TABLE booking_statuses"); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}

	repo := newTestRepository(db)
	ctx := context.Background()

	_, err := repo.List(ctx)
	var repoErr *repositories.RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("List() error = %v, want *RepositoryError", err)
	}
	if repoErr.Op != "list" {
		t.Errorf("Op = %s, want list", repoErr.Op)
	}

	if err := repo.Upsert(ctx, "k", "v"); err == nil {
		t.Error("Upsert() should fail without the table")
	}

	// Failed writes must hand their connection back to the pool
	if got := db.Stats().InUse; got != 0 {
		t.Errorf("Connections in use = %d, want 0", got)
	}
}

func TestBookingStatusRepository_ConcurrentUpserts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := newTestRepository(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, status := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			if err := repo.Upsert(ctx, "shared", status); err != nil {
				t.Errorf("Upsert(%s) failed: %v", status, err)
			}
		}(status)
	}
	wg.Wait()

	statuses, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(statuses) != 1 {
		t.Errorf("List() returned %d rows, want 1", len(statuses))
	}
	if got := db.Stats().InUse; got != 0 {
		t.Errorf("Connections in use = %d, want 0", got)
	}
}

func TestBookingStatusRepository_Health(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := newTestRepository(db)
	if err := repo.Health(context.Background()); err != nil {
		t.Errorf("Health() failed: %v", err)
	}

	if _, err := db.Exec("ALTER TABLE booking_statuses RENAME TO archived"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	err := repo.Health(context.Background())
	var repoErr *repositories.RepositoryError
	if !errors.As(err, &repoErr) || repoErr.Op != "health" {
		t.Errorf("Health() without table = %v, want health repository error", err)
	}

	db.Close()
	if err := repo.Health(context.Background()); !repositories.IsConnection(err) {
		t.Errorf("Health() on closed pool = %v, want connection error", err)
	}
}
