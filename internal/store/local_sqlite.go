package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/models"
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type localStore struct {
	db  *DB
	now func() time.Time
}

// NewLocalStore builds the device replica on top of a migrated sqlite DB.
func NewLocalStore(db *DB) LocalStore {
	return &localStore{db: db, now: time.Now}
}

func (l *localStore) Write(ctx context.Context, fn func(tx LocalTx) error) error {
	log := logger.FromContext(ctx)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "localStore.Write").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(&localTx{q: tx, now: l.now}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "localStore.Write").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (l *localStore) Query(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error) {
	query, args, err := buildSelectRecordsQuery(kind, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryRecords(ctx, l.db, kind, query, args)
}

func (l *localStore) Find(ctx context.Context, kind models.EntityKind, id string) (models.Record, error) {
	return findRecord(ctx, l.db, kind, id)
}

func (l *localStore) Count(ctx context.Context, kind models.EntityKind) (int, error) {
	query, args, err := buildCountQuery(kind)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = l.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.Count").
			Str("kind", string(kind)).
			Msg("failed to count records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (l *localStore) Unsynced(ctx context.Context, target string, kind models.EntityKind) ([]models.PendingRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUnsyncedQuery(target, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localStore.Unsynced").
			Str("target", target).
			Str("kind", string(kind)).
			Msg("failed to query unsynced records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var pending []models.PendingRecord
	for rows.Next() {
		var (
			p                    models.PendingRecord
			createdAt, updatedAt int64
		)
		if err = rows.Scan(&p.ID, &p.OwnerPatientID, &p.Payload, &createdAt, &updatedAt, &p.Deleted, &p.PreviouslySynced); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		p.Kind = kind
		p.CreatedAt = fromMillis(createdAt)
		p.UpdatedAt = fromMillis(updatedAt)
		pending = append(pending, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return pending, nil
}

func (l *localStore) Close() error {
	return l.db.Close()
}

type localTx struct {
	q   querier
	now func() time.Time
}

// stamp returns the current time at the millisecond precision the tables
// store.
func (t *localTx) stamp() time.Time {
	return t.now().UTC().Truncate(time.Millisecond)
}

func (t *localTx) Create(ctx context.Context, rec models.Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = t.stamp()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}

	query, args, err := buildInsertRecordQuery(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.q.ExecContext(ctx, query, args...); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s/%s", ErrRecordAlreadyExists, rec.Kind, rec.ID)
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "localTx.Create").
			Str("kind", string(rec.Kind)).
			Str("id", rec.ID).
			Msg("failed to insert record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (t *localTx) Update(ctx context.Context, kind models.EntityKind, id string, mutate func(rec *models.Record)) (models.Record, error) {
	rec, err := findRecord(ctx, t.q, kind, id)
	if err != nil {
		return models.Record{}, err
	}

	mutate(&rec)
	rec.ID, rec.Kind = id, kind
	rec.UpdatedAt = t.stamp()

	query, args, err := buildUpdateRecordQuery(rec)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTx.Update").
			Str("kind", string(kind)).
			Str("id", id).
			Msg("failed to update record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return rec, nil
}

func (t *localTx) MarkAsDeleted(ctx context.Context, kind models.EntityKind, id string) error {
	query, args, err := buildMarkDeletedQuery(kind, id, t.stamp())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, kind, id)
	}

	return nil
}

func (t *localTx) Find(ctx context.Context, kind models.EntityKind, id string) (models.Record, error) {
	return findRecord(ctx, t.q, kind, id)
}

func (t *localTx) Exists(ctx context.Context, kind models.EntityKind, id string) (bool, error) {
	query, args, err := buildExistsQuery(kind, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = t.q.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

func (t *localTx) MarkSynced(ctx context.Context, target string, recs []models.Record, at time.Time) error {
	for start := 0; start < len(recs); start += ledgerChunkSize {
		end := min(start+ledgerChunkSize, len(recs))

		query, args, err := buildMarkSyncedQuery(target, recs[start:end], at)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = t.q.ExecContext(ctx, query, args...); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "localTx.MarkSynced").
				Str("target", target).
				Int("count", end-start).
				Msg("failed to update sync ledger")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func findRecord(ctx context.Context, q querier, kind models.EntityKind, id string) (models.Record, error) {
	query, args, err := buildFindRecordQuery(kind, id)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	recs, err := queryRecords(ctx, q, kind, query, args)
	if err != nil {
		return models.Record{}, err
	}
	if len(recs) == 0 {
		return models.Record{}, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, kind, id)
	}

	return recs[0], nil
}

func queryRecords(ctx context.Context, q querier, kind models.EntityKind, query string, args []any) ([]models.Record, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queryRecords").
			Str("kind", string(kind)).
			Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var recs []models.Record
	for rows.Next() {
		var (
			rec                  models.Record
			createdAt, updatedAt int64
		)
		if err = rows.Scan(&rec.ID, &rec.OwnerPatientID, &rec.Payload, &createdAt, &updatedAt, &rec.Deleted); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rec.Kind = kind
		rec.CreatedAt = fromMillis(createdAt)
		rec.UpdatedAt = fromMillis(updatedAt)
		recs = append(recs, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return recs, nil
}
