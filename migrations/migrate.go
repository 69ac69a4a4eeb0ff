// Package migrations embeds the goose schemas of the three databases used by
// the system: the device replica, the hub store and the cloud document store.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed local/*.sql hub/*.sql remote/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package state.
var mu sync.Mutex

// MigrateLocal applies the device replica schema (sqlite).
func MigrateLocal(db *sql.DB) error {
	return migrate(db, "sqlite3", "local")
}

// MigrateHub applies the hub store schema (sqlite).
func MigrateHub(db *sql.DB) error {
	return migrate(db, "sqlite3", "hub")
}

// MigrateRemote applies the cloud document store schema (postgres).
func MigrateRemote(db *sql.DB) error {
	return migrate(db, "pgx", "remote")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
