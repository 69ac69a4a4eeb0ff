package store

import (
	"database/sql"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/migrations"
)

// DB wraps a *sql.DB together with the error classifier of its driver.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) MigrateLocal() error {
	return migrations.MigrateLocal(db.DB)
}

func (db *DB) MigrateHub() error {
	return migrations.MigrateHub(db.DB)
}

func (db *DB) MigrateRemote() error {
	return migrations.MigrateRemote(db.DB)
}
