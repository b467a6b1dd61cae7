package sqlstore

import (
	"strconv"
	"strings"

	"booking-status-api/internal/repositories"
)

// Dialect captures the placeholder style of a SQL backend
type Dialect int

const (
	// DialectSQLite uses ? placeholders
	DialectSQLite Dialect = iota
	// DialectPostgres uses $1, $2, ... placeholders
	DialectPostgres
)

// DialectFor returns the dialect for a repository configuration
func DialectFor(config *repositories.Config) Dialect {
	if config != nil && config.IsPostgreSQL() {
		return DialectPostgres
	}
	return DialectSQLite
}

// String returns the dialect name
func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// Rebind rewrites ? placeholders into the dialect's form. Question marks
// inside single-quoted literals are left untouched.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
