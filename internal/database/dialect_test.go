package database

import (
	"testing"
)

func TestSQLiteDialect(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("RewriteQuery leaves placeholders alone", func(t *testing.T) {
		query := "SELECT * FROM users WHERE id = ? AND email = ?"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() = %v, want unchanged", got)
		}
	})
}

func TestPostgresDialect(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("RewriteQuery numbers placeholders", func(t *testing.T) {
		tests := []struct {
			name     string
			query    string
			expected string
		}{
			{
				name:     "no placeholders",
				query:    "SELECT COUNT(*) FROM users",
				expected: "SELECT COUNT(*) FROM users",
			},
			{
				name:     "single placeholder",
				query:    "SELECT id FROM users WHERE email = ?",
				expected: "SELECT id FROM users WHERE email = $1",
			},
			{
				name:     "multiple placeholders",
				query:    "INSERT INTO game_records (user_id, play_date, score) VALUES (?, ?, ?)",
				expected: "INSERT INTO game_records (user_id, play_date, score) VALUES ($1, $2, $3)",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := dialect.RewriteQuery(tt.query); got != tt.expected {
					t.Errorf("RewriteQuery() = %v, want %v", got, tt.expected)
				}
			})
		}
	})
}

func TestMySQLDialect(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("DSN appends driver params", func(t *testing.T) {
		tests := []struct {
			name     string
			source   string
			expected string
		}{
			{
				name:     "bare dsn",
				source:   "user:pass@tcp(localhost:3306)/boundle",
				expected: "user:pass@tcp(localhost:3306)/boundle?parseTime=true&multiStatements=true",
			},
			{
				name:     "existing params",
				source:   "user:pass@tcp(localhost:3306)/boundle?charset=utf8mb4",
				expected: "user:pass@tcp(localhost:3306)/boundle?charset=utf8mb4&parseTime=true&multiStatements=true",
			},
			{
				name:     "parseTime already set",
				source:   "user:pass@tcp(localhost:3306)/boundle?parseTime=false",
				expected: "user:pass@tcp(localhost:3306)/boundle?parseTime=false&multiStatements=true",
			},
			{
				name:     "everything already set",
				source:   "user:pass@tcp(localhost:3306)/boundle?parseTime=true&multiStatements=true",
				expected: "user:pass@tcp(localhost:3306)/boundle?parseTime=true&multiStatements=true",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := dialect.DSN(tt.source); got != tt.expected {
					t.Errorf("DSN() = %v, want %v", got, tt.expected)
				}
			})
		}
	})
}
