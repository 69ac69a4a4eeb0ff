// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateRemote_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// без ожиданий sqlmock отклоняет любой запрос goose
	err = MigrateRemote(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	err := MigrateLocal(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrateLocal_CreatesTables(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, MigrateLocal(db))
	// повторный запуск ничего не ломает
	require.NoError(t, MigrateLocal(db))

	for _, table := range []string{"patients", "treatments", "implant_assessments", "sync_ledger"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrateHub_CreatesTable(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, MigrateHub(db))

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='hub_records'`).Scan(&name)
	require.NoError(t, err)
}
