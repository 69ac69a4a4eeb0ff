package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/mock"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/models"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// newTestLocal открывает мигрированную локальную базу во временном каталоге.
func newTestLocal(t *testing.T) store.LocalStore {
	t.Helper()
	db, err := store.NewConnectSQLite(testContext(), filepath.Join(t.TempDir(), "local.db"), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.MigrateLocal())

	local := store.NewLocalStore(db)
	t.Cleanup(func() { local.Close() })
	return local
}

func seed(t *testing.T, local store.LocalStore, recs ...models.Record) {
	t.Helper()
	err := local.Write(testContext(), func(tx store.LocalTx) error {
		for _, rec := range recs {
			if err := tx.Create(testContext(), rec); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func testRecord(kind models.EntityKind, id string) models.Record {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	rec := models.Record{
		ID:        id,
		Kind:      kind,
		Payload:   `{"note":"` + id + `"}`,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if kind != models.KindPatient {
		rec.OwnerPatientID = "p-1"
	}
	return rec
}

func ids(recs []models.Record) []string {
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.ID
	}
	return out
}

func TestLedgerStrategy_PendingUsesExistenceReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := testContext()
	local := newTestLocal(t)
	checker := mock.NewMockExistenceChecker(ctrl)
	strategy := NewLedgerStrategy(local, EngineCloud, checker)

	seed(t, local,
		testRecord(models.KindPatient, "p-1"),
		testRecord(models.KindTreatment, "t-1"),
		testRecord(models.KindHygiene, "a-1"),
		testRecord(models.KindDentition, "a-2"),
	)

	checker.EXPECT().Check(gomock.Any(), models.CollectionPatients, []string{"p-1"}).
		Return(models.ExistenceReport{Missing: []string{"p-1"}})
	// t-1 уже в облаке: попадает в журнал без повторной отправки
	checker.EXPECT().Check(gomock.Any(), models.CollectionTreatments, []string{"t-1"}).
		Return(models.ExistenceReport{Present: []string{"t-1"}})
	// оценки идут в порядке AllKinds: dentition раньше hygiene
	checker.EXPECT().Check(gomock.Any(), models.CollectionAssessments, []string{"a-2", "a-1"}).
		Return(models.ExistenceReport{Missing: []string{"a-1"}, Unknown: []string{"a-2"}})

	cs, err := strategy.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "a-1"}, ids(cs.All()))
	assert.Empty(t, cs.Existing)

	n, err := strategy.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "t-1 принят в журнал, a-2 отложен")

	require.NoError(t, strategy.Acknowledge(ctx, cs.All()))

	n, err = strategy.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLedgerStrategy_EditedRecordIsRepushedAsExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := testContext()
	local := newTestLocal(t)
	checker := mock.NewMockExistenceChecker(ctrl)
	strategy := NewLedgerStrategy(local, EngineCloud, checker)

	rec := testRecord(models.KindPatient, "p-1")
	seed(t, local, rec)
	require.NoError(t, strategy.Acknowledge(ctx, []models.Record{rec}))

	// ничего не изменилось: нечего отправлять, проверок нет
	cs, err := strategy.Pending(ctx)
	require.NoError(t, err)
	assert.Zero(t, cs.Len())

	err = local.Write(ctx, func(tx store.LocalTx) error {
		_, err := tx.Update(ctx, models.KindPatient, "p-1", func(r *models.Record) {
			r.Payload = `{"note":"edited"}`
		})
		return err
	})
	require.NoError(t, err)

	cs, err = strategy.Pending(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"p-1"}, ids(cs.All()))
	assert.True(t, cs.IsExisting("p-1"), "повторная отправка без syncedAt")
	assert.Equal(t, `{"note":"edited"}`, cs.All()[0].Payload)
}

func TestLedgerStrategy_LedgerIsPerTarget(t *testing.T) {
	ctx := testContext()
	local := newTestLocal(t)
	cloud := NewLedgerStrategy(local, EngineCloud, nil)
	hub := NewLedgerStrategy(local, EngineHub, nil)

	rec := testRecord(models.KindPatient, "p-1")
	seed(t, local, rec)
	require.NoError(t, cloud.Acknowledge(ctx, []models.Record{rec}))

	n, err := cloud.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	cs, err := hub.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, ids(cs.All()), "без checker отправляется всё из журнала")
}

func TestSnapshotStrategy(t *testing.T) {
	ctx := testContext()
	local := newTestLocal(t)
	strategy := NewSnapshotStrategy(local)

	seed(t, local,
		testRecord(models.KindPatient, "p-1"),
		testRecord(models.KindImplant, "a-1"),
		testRecord(models.KindTreatment, "t-1"),
	)
	err := local.Write(ctx, func(tx store.LocalTx) error {
		return tx.MarkAsDeleted(ctx, models.KindTreatment, "t-1")
	})
	require.NoError(t, err)

	cs, err := strategy.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "a-1"}, ids(cs.All()))

	// снапшот отправляется целиком каждый цикл
	require.NoError(t, strategy.Acknowledge(ctx, cs.All()))
	n, err := strategy.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
