package database

import (
	"fmt"
	"strings"

	"booking-status-api/internal/repositories"
)

// DetectDriver infers the database driver from a connection string.
// postgres:// and postgresql:// URLs as well as key=value DSNs map to
// PostgreSQL; sqlite://, file: and bare .db paths map to SQLite.
func DetectDriver(dsn string) (string, error) {
	trimmed := strings.TrimSpace(dsn)
	lower := strings.ToLower(trimmed)

	switch {
	case trimmed == "":
		return "", fmt.Errorf("empty connection string")
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return repositories.DriverPostgres, nil
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "sqlite3://"),
		strings.HasPrefix(lower, "file:"), lower == ":memory:",
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return repositories.DriverSQLite, nil
	case isKeyValueDSN(trimmed):
		return repositories.DriverPostgres, nil
	default:
		return "", fmt.Errorf("cannot infer database driver from connection string")
	}
}

// isKeyValueDSN reports whether every field of dsn has the key=value shape
// lib/pq accepts, e.g. "user=app password=secret dbname=bookings"
func isKeyValueDSN(dsn string) bool {
	fields := strings.Fields(dsn)
	if len(fields) == 0 {
		return false
	}
	for _, field := range fields {
		if key, _, ok := strings.Cut(field, "="); !ok || key == "" || strings.Contains(key, "/") {
			return false
		}
	}
	return true
}

// sqliteDSN strips the sqlite:// scheme, leaving a path or file: URI that
// go-sqlite3 understands.
func sqliteDSN(dsn string) string {
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		if len(dsn) >= len(prefix) && strings.EqualFold(dsn[:len(prefix)], prefix) {
			return dsn[len(prefix):]
		}
	}
	return dsn
}
