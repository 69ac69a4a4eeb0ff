package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/models"
)

func newTestHubRepository(t *testing.T) HubRepository {
	t.Helper()
	repo, err := NewHubStorage(testContext(), filepath.Join(t.TempDir(), "hub.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func hubRecord(id string, kind models.EntityKind, updated time.Time, payload string) models.Record {
	return models.Record{
		ID:        id,
		Kind:      kind,
		Payload:   payload,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func TestHubRepository_SaveAndReceivedAfter(t *testing.T) {
	repo := newTestHubRepository(t)
	ctx := testContext()
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	// Arrange: первое устройство отправляет пациента и осмотр
	stored, stamp, err := repo.Save(ctx, []models.Record{
		hubRecord("p1", models.KindPatient, base, `{"name":"A"}`),
		hubRecord("a1", models.KindFillings, base, `{"teeth":[11]}`),
	}, base)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
	assert.Equal(t, base, stamp)

	// Act
	recs, cursor, err := repo.ReceivedAfter(ctx, base.Add(-time.Second))

	// Assert
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a1", recs[0].ID)
	assert.Equal(t, models.KindFillings, recs[0].Kind)
	assert.Equal(t, base, recs[0].UpdatedAt)
	assert.Equal(t, stamp, cursor)

	// the cursor is exclusive
	recs, cursor, err = repo.ReceivedAfter(ctx, cursor)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, stamp, cursor)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHubRepository_SaveKeepsNewest(t *testing.T) {
	repo := newTestHubRepository(t)
	ctx := testContext()
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	firstPush := base

	_, _, err := repo.Save(ctx, []models.Record{hubRecord("t1", models.KindTreatment, base, "v1")}, firstPush)
	require.NoError(t, err)

	t.Run("unchanged snapshot does not move received_at", func(t *testing.T) {
		stored, _, err := repo.Save(ctx, []models.Record{hubRecord("t1", models.KindTreatment, base, "v1")}, firstPush.Add(time.Minute))
		require.NoError(t, err)
		assert.Zero(t, stored)

		recs, _, err := repo.ReceivedAfter(ctx, firstPush)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("older version is ignored", func(t *testing.T) {
		stored, _, err := repo.Save(ctx, []models.Record{hubRecord("t1", models.KindTreatment, base.Add(-time.Hour), "v0")}, firstPush.Add(2*time.Minute))
		require.NoError(t, err)
		assert.Zero(t, stored)
	})

	t.Run("newer version replaces and is pulled again", func(t *testing.T) {
		stored, _, err := repo.Save(ctx, []models.Record{hubRecord("t1", models.KindTreatment, base.Add(time.Hour), "v2")}, firstPush.Add(3*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 1, stored)

		recs, _, err := repo.ReceivedAfter(ctx, firstPush)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "v2", recs[0].Payload)
	})

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHubRepository_SaveRejectsUnknownKind(t *testing.T) {
	repo := newTestHubRepository(t)
	ctx := testContext()
	now := time.Now()

	_, _, err := repo.Save(ctx, []models.Record{
		hubRecord("p1", models.KindPatient, now, ""),
		hubRecord("x1", models.EntityKind("x_rays"), now, ""),
	}, now)

	assert.ErrorIs(t, err, ErrUnknownKind)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "the whole push is rejected")
}

func TestHubRepository_SaveEmpty(t *testing.T) {
	repo := newTestHubRepository(t)

	stored, _, err := repo.Save(testContext(), nil, time.Now())

	require.NoError(t, err)
	assert.Zero(t, stored)
}

func TestHubRepository_ClockFollowsCommitOrder(t *testing.T) {
	repo := newTestHubRepository(t)
	ctx := testContext()
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	// пустой хаб отдаёт нулевой курсор
	recs, cursor, err := repo.ReceivedAfter(ctx, time.UnixMilli(0))
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, int64(0), cursor.UnixMilli())

	_, first, err := repo.Save(ctx, []models.Record{hubRecord("p1", models.KindPatient, base, "")}, base)
	require.NoError(t, err)

	// часы приложения ушли назад, штамп всё равно растёт
	_, second, err := repo.Save(ctx, []models.Record{hubRecord("p2", models.KindPatient, base, "")}, base.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, first.Add(time.Millisecond), second)

	// записанное после курсора приходит в следующем pull
	recs, cursor, err = repo.ReceivedAfter(ctx, first)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "p2", recs[0].ID)
	assert.Equal(t, second, cursor)
}
