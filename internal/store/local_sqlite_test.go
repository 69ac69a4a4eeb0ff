package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/models"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func newTestSQLite(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnectSQLite(testContext(), filepath.Join(t.TempDir(), "data", "local.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestLocalStore returns a migrated local store whose clock is driven by
// the returned pointer.
func newTestLocalStore(t *testing.T) (*localStore, *time.Time) {
	t.Helper()
	db := newTestSQLite(t)
	require.NoError(t, db.MigrateLocal())

	clock := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	s := &localStore{db: db, now: func() time.Time { return clock }}
	return s, &clock
}

func createRecords(t *testing.T, s LocalStore, recs ...models.Record) {
	t.Helper()
	err := s.Write(testContext(), func(tx LocalTx) error {
		for _, rec := range recs {
			if err := tx.Create(testContext(), rec); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestLocalStore_CreateFindQuery(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := testContext()

	createRecords(t, s,
		models.Record{ID: "p1", Kind: models.KindPatient, Payload: `{"name":"A"}`},
		models.Record{ID: "h1", Kind: models.KindHygiene, OwnerPatientID: "p1", Payload: `{"plaque":1}`},
	)

	got, err := s.Find(ctx, models.KindHygiene, "h1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.OwnerPatientID)
	assert.Equal(t, `{"plaque":1}`, got.Payload)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	_, err = s.Find(ctx, models.KindPatient, "h1")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	patients, err := s.Query(ctx, models.KindPatient, models.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "p1", patients[0].ID)

	count, err := s.Count(ctx, models.KindHygiene)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLocalStore_CreateDuplicate(t *testing.T) {
	s, _ := newTestLocalStore(t)
	createRecords(t, s, models.Record{ID: "p1", Kind: models.KindPatient})

	err := s.Write(testContext(), func(tx LocalTx) error {
		return tx.Create(testContext(), models.Record{ID: "p1", Kind: models.KindPatient})
	})
	assert.ErrorIs(t, err, ErrRecordAlreadyExists)
}

func TestLocalStore_WriteRollsBackOnError(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := testContext()
	boom := errors.New("boom")

	err := s.Write(ctx, func(tx LocalTx) error {
		require.NoError(t, tx.Create(ctx, models.Record{ID: "p1", Kind: models.KindPatient}))
		require.NoError(t, tx.Create(ctx, models.Record{ID: "p2", Kind: models.KindPatient}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	count, err := s.Count(ctx, models.KindPatient)
	require.NoError(t, err)
	assert.Zero(t, count, "half of a unit of work must never be visible")
}

func TestLocalStore_UpdateAndSoftDelete(t *testing.T) {
	s, clock := newTestLocalStore(t)
	ctx := testContext()
	createRecords(t, s, models.Record{ID: "t1", Kind: models.KindTreatment, OwnerPatientID: "p1", Payload: "v1"})

	*clock = clock.Add(time.Hour)
	var updated models.Record
	err := s.Write(ctx, func(tx LocalTx) error {
		var err error
		updated, err = tx.Update(ctx, models.KindTreatment, "t1", func(rec *models.Record) {
			rec.Payload = "v2"
			rec.ID = "hijack"
		})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", updated.ID)
	assert.Equal(t, "v2", updated.Payload)
	assert.Equal(t, *clock, updated.UpdatedAt)

	require.NoError(t, s.Write(ctx, func(tx LocalTx) error {
		return tx.MarkAsDeleted(ctx, models.KindTreatment, "t1")
	}))

	live, err := s.Query(ctx, models.KindTreatment, models.RecordFilter{})
	require.NoError(t, err)
	assert.Empty(t, live)

	all, err := s.Query(ctx, models.KindTreatment, models.RecordFilter{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Deleted)

	require.NoError(t, s.Write(ctx, func(tx LocalTx) error {
		exists, err := tx.Exists(ctx, models.KindTreatment, "t1")
		assert.True(t, exists, "soft-deleted rows still exist")
		return err
	}))

	err = s.Write(ctx, func(tx LocalTx) error {
		return tx.MarkAsDeleted(ctx, models.KindTreatment, "missing")
	})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestLocalStore_UnsyncedFollowsLedger(t *testing.T) {
	s, clock := newTestLocalStore(t)
	ctx := testContext()
	createRecords(t, s,
		models.Record{ID: "d1", Kind: models.KindDentition, Payload: "a"},
		models.Record{ID: "d2", Kind: models.KindDentition, Payload: "b"},
	)

	pending, err := s.Unsynced(ctx, "cloud", models.KindDentition)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.False(t, pending[0].PreviouslySynced)

	// d1 reaches the cloud
	require.NoError(t, s.Write(ctx, func(tx LocalTx) error {
		return tx.MarkSynced(ctx, "cloud", []models.Record{pending[0].Record}, *clock)
	}))

	pending, err = s.Unsynced(ctx, "cloud", models.KindDentition)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "d2", pending[0].ID)

	// other targets keep their own ledger
	hubPending, err := s.Unsynced(ctx, "hub", models.KindDentition)
	require.NoError(t, err)
	assert.Len(t, hubPending, 2)

	// editing d1 after its sync makes it pending again
	*clock = clock.Add(time.Minute)
	require.NoError(t, s.Write(ctx, func(tx LocalTx) error {
		_, err := tx.Update(ctx, models.KindDentition, "d1", func(rec *models.Record) { rec.Payload = "a2" })
		return err
	}))

	pending, err = s.Unsynced(ctx, "cloud", models.KindDentition)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, p := range pending {
		if p.ID == "d1" {
			assert.True(t, p.PreviouslySynced)
			assert.Equal(t, "a2", p.Payload)
		} else {
			assert.False(t, p.PreviouslySynced)
		}
	}
}

func TestLocalStore_MarkSyncedChunks(t *testing.T) {
	s, clock := newTestLocalStore(t)
	ctx := testContext()

	fresh := make([]models.Record, ledgerChunkSize+5)
	for i := range fresh {
		fresh[i] = models.Record{ID: fmt.Sprintf("p-%03d", i), Kind: models.KindPatient}
	}
	createRecords(t, s, fresh...)

	recs, err := s.Query(ctx, models.KindPatient, models.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, recs, len(fresh))

	require.NoError(t, s.Write(ctx, func(tx LocalTx) error {
		return tx.MarkSynced(ctx, "cloud", recs, *clock)
	}))

	pending, err := s.Unsynced(ctx, "cloud", models.KindPatient)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLocalStore_UnknownKind(t *testing.T) {
	s, _ := newTestLocalStore(t)

	_, err := s.Query(testContext(), models.EntityKind("x_rays"), models.RecordFilter{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}
