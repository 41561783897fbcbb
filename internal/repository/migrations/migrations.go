// Package migrations holds the SQL schema shared by the SQLite and PostgreSQL stores.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

// Dialects accepted by Up.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// Up applies all pending migrations to db.
func Up(db *sql.DB, dialect string) error {
	goose.SetBaseFS(files)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
