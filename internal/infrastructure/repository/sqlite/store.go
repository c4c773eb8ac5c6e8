package sqlite

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	// modernc registers driver name "sqlite". The migrate sqlite driver pins
	// the same package, so this must stay the only sqlite driver linked in.
	_ "modernc.org/sqlite"
)

// Open connects to the embedded analytical store. The driver is pure Go, so
// the pipeline stays a single static binary.
func Open(path string) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("sqlite", path,
		otelsql.WithDBName(filepath.Base(path)),
	)
	if err != nil {
		return nil, fmt.Errorf("open analytical store %s: %w", path, err)
	}

	// One writer at a time; stage boundaries are the only barriers needed.
	db.SetMaxOpenConns(1)

	return db, nil
}

// Migrate brings the store schema up to date from the SQL files in dir.
// An already-current schema is not an error: reruns must be idempotent.
func Migrate(db *sqlx.DB, dir string) error {
	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("wrap store for migration: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(dir), "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
