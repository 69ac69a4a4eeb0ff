// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mission-sync/models"
)

const (
	ledgerTable = "sync_ledger"

	// ledgerChunkSize bounds the rows of a single ledger upsert so the
	// statement stays well below sqlite's host parameter limit.
	ledgerChunkSize = 200
)

var sqliteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var recordColumns = []string{"id", "owner_patient_id", "payload", "created_at", "updated_at", "deleted"}

func tableFor(kind models.EntityKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return kind.TableName(), nil
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func buildSelectRecordsQuery(kind models.EntityKind, filter models.RecordFilter) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	query := sqliteBuilder.Select(recordColumns...).From(table)
	if !filter.IncludeDeleted {
		query = query.Where(sq.Eq{"deleted": false})
	}
	if len(filter.IDs) > 0 {
		query = query.Where(sq.Eq{"id": filter.IDs})
	}
	if filter.UpdatedAfter != nil {
		query = query.Where(sq.Gt{"updated_at": millis(*filter.UpdatedAfter)})
	}

	return query.OrderBy("created_at", "id").ToSql()
}

func buildFindRecordQuery(kind models.EntityKind, id string) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return sqliteBuilder.Select(recordColumns...).From(table).Where(sq.Eq{"id": id}).ToSql()
}

func buildExistsQuery(kind models.EntityKind, id string) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return sqliteBuilder.Select("1").From(table).Where(sq.Eq{"id": id}).Limit(1).ToSql()
}

func buildCountQuery(kind models.EntityKind) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return sqliteBuilder.Select("COUNT(*)").From(table).Where(sq.Eq{"deleted": false}).ToSql()
}

func buildInsertRecordQuery(rec models.Record) (string, []any, error) {
	table, err := tableFor(rec.Kind)
	if err != nil {
		return "", nil, err
	}

	return sqliteBuilder.Insert(table).
		Columns(recordColumns...).
		Values(rec.ID, rec.OwnerPatientID, rec.Payload, millis(rec.CreatedAt), millis(rec.UpdatedAt), rec.Deleted).
		ToSql()
}

func buildUpdateRecordQuery(rec models.Record) (string, []any, error) {
	table, err := tableFor(rec.Kind)
	if err != nil {
		return "", nil, err
	}

	return sqliteBuilder.Update(table).
		Set("owner_patient_id", rec.OwnerPatientID).
		Set("payload", rec.Payload).
		Set("updated_at", millis(rec.UpdatedAt)).
		Set("deleted", rec.Deleted).
		Where(sq.Eq{"id": rec.ID}).
		ToSql()
}

func buildMarkDeletedQuery(kind models.EntityKind, id string, at time.Time) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return sqliteBuilder.Update(table).
		Set("deleted", true).
		Set("updated_at", millis(at)).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildUnsyncedQuery selects live records of kind that have no ledger entry
// for target, or whose updated_at moved past the ledger entry. The last
// column tells the two cases apart.
func buildUnsyncedQuery(target string, kind models.EntityKind) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return sqliteBuilder.
		Select(
			"t.id", "t.owner_patient_id", "t.payload", "t.created_at", "t.updated_at", "t.deleted",
			"l.record_id IS NOT NULL",
		).
		From(table+" AS t").
		LeftJoin(ledgerTable+" AS l ON l.target = ? AND l.record_id = t.id", target).
		Where(sq.Eq{"t.deleted": false}).
		Where(sq.Or{
			sq.Eq{"l.record_id": nil},
			sq.Expr("t.updated_at > l.record_updated_at"),
		}).
		OrderBy("t.created_at", "t.id").
		ToSql()
}

func buildMarkSyncedQuery(target string, recs []models.Record, at time.Time) (string, []any, error) {
	query := sqliteBuilder.Insert(ledgerTable).
		Columns("target", "record_id", "kind", "record_updated_at", "synced_at")
	for _, rec := range recs {
		query = query.Values(target, rec.ID, string(rec.Kind), millis(rec.UpdatedAt), millis(at))
	}

	return query.Suffix(
		"ON CONFLICT (target, record_id) DO UPDATE SET " +
			"kind = excluded.kind, " +
			"record_updated_at = excluded.record_updated_at, " +
			"synced_at = excluded.synced_at",
	).ToSql()
}
