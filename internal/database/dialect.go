package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// Name returns the dialect name as used in configuration and the
	// migrations directory layout (sqlite, postgres, mysql)
	Name() string

	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN builds the data source name from the configured path or URL
	DSN(source string) string

	// RewriteQuery converts placeholder syntax if needed (e.g. ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsTableSQL returns the SQL to create the migrations tracking table
	MigrationsTableSQL() string

	// IsUniqueViolation reports whether err is a unique constraint violation.
	// The game record anti-replay guarantee depends on recognizing these.
	IsUniqueViolation(err error) bool
}

// placeholderPattern matches ? placeholders for numbered rewriting
var placeholderPattern = regexp.MustCompile(`\?`)

// rewritePlaceholdersNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersNumbered(query string) string {
	n := 0
	return placeholderPattern.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}
