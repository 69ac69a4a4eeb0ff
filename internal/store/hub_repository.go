package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/models"
)

const (
	hubRecordsTable = "hub_records"
	hubClockTable   = "hub_clock"
)

var hubRecordColumns = []string{"id", "kind", "owner_patient_id", "payload", "created_at", "updated_at"}

type hubRepository struct {
	db *DB
}

// NewHubRepository builds the hub store on top of a migrated sqlite DB.
func NewHubRepository(db *DB) HubRepository {
	return &hubRepository{db: db}
}

// Save keeps the newest version of every record. A record pushed again
// without changes is left untouched, so its received_at does not move and
// pulls do not return it a second time.
//
// The received_at stamp is taken from the hub clock inside the write
// transaction, so stamps grow in commit order. It is never below now and
// always above the previous stamp. The stamp is returned.
func (h *hubRepository) Save(ctx context.Context, recs []models.Record, now time.Time) (int, time.Time, error) {
	log := logger.FromContext(ctx)

	if len(recs) == 0 {
		return 0, now, nil
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "hubRepository.Save").Msg("failed to begin transaction")
		return 0, time.Time{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	receivedAt, err := advanceHubClock(ctx, tx, now)
	if err != nil {
		log.Err(err).Str("func", "hubRepository.Save").Msg("failed to advance hub clock")
		return 0, time.Time{}, err
	}

	stored := 0
	for _, rec := range recs {
		query, args, err := buildHubUpsertQuery(rec, receivedAt)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "hubRepository.Save").
				Str("id", rec.ID).
				Str("kind", string(rec.Kind)).
				Msg("failed to upsert hub record")
			return 0, time.Time{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			stored++
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "hubRepository.Save").Msg("failed to commit transaction")
		return 0, time.Time{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return stored, receivedAt, nil
}

// ReceivedAfter returns the records stamped after since together with the
// hub clock they were read at. Clock and rows come from one read
// transaction, so the returned cursor never runs ahead of a stamp that is
// still uncommitted.
func (h *hubRepository) ReceivedAfter(ctx context.Context, since time.Time) ([]models.Record, time.Time, error) {
	log := logger.FromContext(ctx)

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "hubRepository.ReceivedAfter").Msg("failed to begin transaction")
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var clock int64
	if err = tx.QueryRowContext(ctx, "SELECT stamp FROM "+hubClockTable+" WHERE id = 1").Scan(&clock); err != nil {
		log.Err(err).Str("func", "hubRepository.ReceivedAfter").Msg("failed to read hub clock")
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := sqliteBuilder.Select(hubRecordColumns...).
		From(hubRecordsTable).
		Where(sq.And{
			sq.Gt{"received_at": millis(since)},
			sq.LtOrEq{"received_at": clock},
		}).
		OrderBy("received_at", "id").
		ToSql()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "hubRepository.ReceivedAfter").
			Time("since", since).
			Msg("failed to query hub records")
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recs := make([]models.Record, 0)
	for rows.Next() {
		var (
			rec                  models.Record
			kind                 string
			createdAt, updatedAt int64
		)
		if err = rows.Scan(&rec.ID, &kind, &rec.OwnerPatientID, &rec.Payload, &createdAt, &updatedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rec.Kind = models.EntityKind(kind)
		rec.CreatedAt = fromMillis(createdAt)
		rec.UpdatedAt = fromMillis(updatedAt)
		recs = append(recs, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return recs, fromMillis(clock), nil
}

func (h *hubRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+hubRecordsTable).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (h *hubRepository) Close() error {
	return h.db.Close()
}

// advanceHubClock bumps the hub clock to max(clock+1, now). The UPDATE takes
// the write lock, so concurrent saves are stamped in the order they commit.
func advanceHubClock(ctx context.Context, tx *sql.Tx, now time.Time) (time.Time, error) {
	query, args, err := sqliteBuilder.Update(hubClockTable).
		Set("stamp", sq.Expr("MAX(stamp + 1, ?)", millis(now))).
		Where(sq.Eq{"id": 1}).
		Suffix("RETURNING stamp").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stamp int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&stamp); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return fromMillis(stamp), nil
}

func buildHubUpsertQuery(rec models.Record, receivedAt time.Time) (string, []any, error) {
	if _, err := tableFor(rec.Kind); err != nil {
		return "", nil, err
	}

	return sqliteBuilder.Insert(hubRecordsTable).
		Columns(append(hubRecordColumns, "received_at")...).
		Values(rec.ID, string(rec.Kind), rec.OwnerPatientID, rec.Payload,
			millis(rec.CreatedAt), millis(rec.UpdatedAt), millis(receivedAt)).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"kind = excluded.kind, " +
			"owner_patient_id = excluded.owner_patient_id, " +
			"payload = excluded.payload, " +
			"updated_at = excluded.updated_at, " +
			"received_at = excluded.received_at " +
			"WHERE excluded.updated_at > " + hubRecordsTable + ".updated_at").
		ToSql()
}
