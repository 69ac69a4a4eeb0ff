package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-mission-sync/internal/mock"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/models"
)

func TestIsLocked(t *testing.T) {
	syncedAt := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name   string
		now    time.Time
		locked bool
	}{
		{name: "same day", now: time.Date(2024, 1, 15, 23, 59, 30, 0, time.UTC), locked: false},
		{name: "right after midnight", now: time.Date(2024, 1, 16, 0, 0, 1, 0, time.UTC), locked: true},
		{name: "exactly midnight", now: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), locked: true},
		{name: "end of next day", now: time.Date(2024, 1, 16, 23, 59, 59, 0, time.UTC), locked: true},
		{name: "a month later", now: time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC), locked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.locked, IsLocked(syncedAt, tt.now, time.UTC))
		})
	}
}

func TestIsLocked_UsesDeviceTimeZone(t *testing.T) {
	// 22:30 UTC: уже 01:30 следующего дня по UTC+3
	loc := time.FixedZone("UTC+3", 3*60*60)
	syncedAt := time.Date(2024, 1, 15, 22, 30, 0, 0, time.UTC)

	assert.False(t, IsLocked(syncedAt, time.Date(2024, 1, 16, 20, 59, 59, 0, time.UTC), loc))
	assert.True(t, IsLocked(syncedAt, time.Date(2024, 1, 16, 21, 0, 0, 0, time.UTC), loc))

	reason := LockReason(syncedAt, loc)
	assert.Contains(t, reason, "2024-01-16 01:30")
	assert.Contains(t, reason, "2024-01-17 00:00")
}

// newTestDeletion собирает сервис удаления поверх настоящей локальной базы.
func newTestDeletion(t *testing.T, ctrl *gomock.Controller, now time.Time) (
	*deletionService,
	store.LocalStore,
	*mock.MockRemoteDocumentStore,
	*mock.MockSessionService,
) {
	t.Helper()
	local := newTestLocal(t)
	remote := mock.NewMockRemoteDocumentStore(ctrl)
	session := mock.NewMockSessionService(ctrl)

	svc := NewDeletionService(local, remote, session, time.UTC).(*deletionService)
	svc.now = func() time.Time { return now }
	return svc, local, remote, session
}

func syncedDoc(id string, syncedAt time.Time) models.Document {
	return syncedDocOf(testRecord(models.KindPatient, id), syncedAt)
}

func syncedDocOf(rec models.Record, syncedAt time.Time) models.Document {
	fields := models.RecordToDocument(rec, "user-1")
	fields[models.FieldSyncedAt] = syncedAt
	return models.Document{Ref: models.DocumentRefFor(rec), Fields: fields}
}

func TestDeletionService_CheckDeletable(t *testing.T) {
	syncedAt := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)
	ref := models.DocumentRef{Collection: models.CollectionPatients, ID: "p-1"}

	tests := []struct {
		name      string
		now       time.Time
		doc       models.Document
		found     bool
		deletable bool
		locked    bool
	}{
		{
			name:      "not synced yet",
			now:       syncedAt,
			deletable: true,
		},
		{
			name:      "synced today",
			now:       time.Date(2024, 1, 15, 23, 59, 30, 0, time.UTC),
			doc:       syncedDoc("p-1", syncedAt),
			found:     true,
			deletable: true,
		},
		{
			name:   "synced yesterday",
			now:    time.Date(2024, 1, 16, 0, 0, 1, 0, time.UTC),
			doc:    syncedDoc("p-1", syncedAt),
			found:  true,
			locked: true,
		},
		{
			name:  "cloud copy without timestamps",
			now:   syncedAt,
			doc:   models.Document{Ref: ref, Fields: map[string]any{models.FieldID: "p-1"}},
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _, remote, session := newTestDeletion(t, ctrl, tt.now)
			session.EXPECT().Authenticated().Return(true)
			remote.EXPECT().Get(gomock.Any(), ref).Return(tt.doc, tt.found, nil)

			got, err := svc.CheckDeletable(testContext(), models.KindPatient, "p-1")
			require.NoError(t, err)
			assert.Equal(t, tt.deletable, got.Deletable)
			assert.Equal(t, tt.locked, got.Locked)
			if !tt.deletable {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestDeletionService_FailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := testContext()
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	// нет сессии: в облако не ходим
	svc, local, remote, session := newTestDeletion(t, ctrl, now)
	seed(t, local, testRecord(models.KindPatient, "p-1"))
	session.EXPECT().Authenticated().Return(false)

	res, err := svc.Delete(ctx, models.KindPatient, "p-1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Reason)

	// облако недоступно
	session.EXPECT().Authenticated().Return(true)
	remote.EXPECT().Get(gomock.Any(), gomock.Any()).Return(models.Document{}, false, assert.AnError)

	check, err := svc.CheckDeletable(ctx, models.KindPatient, "p-1")
	require.NoError(t, err)
	assert.False(t, check.Deletable)
	assert.False(t, check.Locked)

	// облако не настроено
	noCloud := NewDeletionService(local, nil, session, time.UTC)
	check, err = noCloud.CheckDeletable(ctx, models.KindPatient, "p-1")
	require.NoError(t, err)
	assert.False(t, check.Deletable)

	// запись осталась на месте
	got, err := local.Find(ctx, models.KindPatient, "p-1")
	require.NoError(t, err)
	assert.False(t, got.Deleted)
}

func TestDeletionService_RefusesOtherAssessmentKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := testContext()
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	svc, local, remote, session := newTestDeletion(t, ctrl, now)
	seed(t, local, testRecord(models.KindFillings, "a-1"))

	// в облаке под этим id лежит оценка гигиены
	ref := models.DocumentRef{Collection: models.CollectionAssessments, ID: "a-1"}
	session.EXPECT().Authenticated().Return(true)
	remote.EXPECT().Get(gomock.Any(), ref).Return(syncedDocOf(testRecord(models.KindHygiene, "a-1"), now), true, nil)

	res, err := svc.Delete(ctx, models.KindFillings, "a-1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, res.Locked)
	assert.Contains(t, res.Reason, "hygiene")

	got, err := local.Find(ctx, models.KindFillings, "a-1")
	require.NoError(t, err)
	assert.False(t, got.Deleted)
}

func TestDeletionService_InvalidRef(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestDeletion(t, ctrl, time.Now())
	_, err := svc.CheckDeletable(testContext(), models.EntityKind("xray"), "x-1")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	res, err := svc.Delete(testContext(), models.KindPatient, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.False(t, res.Success)
}

func TestDeletionService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := testContext()
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	svc, local, remote, session := newTestDeletion(t, ctrl, now)
	seed(t, local, testRecord(models.KindPatient, "p-1"))

	ref := models.DocumentRef{Collection: models.CollectionPatients, ID: "p-1"}
	session.EXPECT().Authenticated().Return(true)
	remote.EXPECT().Get(gomock.Any(), ref).Return(syncedDoc("p-1", now.Add(-time.Hour)), true, nil)
	remote.EXPECT().Delete(gomock.Any(), ref).Return(nil)

	res, err := svc.Delete(ctx, models.KindPatient, "p-1")
	require.NoError(t, err)
	assert.Equal(t, models.DeleteResult{Success: true, DeletedFrom: models.DeletedFrom{Cloud: true, Local: true}}, res)

	got, err := local.Find(ctx, models.KindPatient, "p-1")
	require.NoError(t, err)
	assert.True(t, got.Deleted, "локально удаление мягкое")
}

func TestDeletionService_PartialDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := testContext()
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	svc, local, remote, session := newTestDeletion(t, ctrl, now)
	seed(t, local, testRecord(models.KindHygiene, "a-1"))

	ref := models.DocumentRef{Collection: models.CollectionAssessments, ID: "a-1"}
	session.EXPECT().Authenticated().Return(true)
	remote.EXPECT().Get(gomock.Any(), ref).Return(models.Document{}, false, nil)
	remote.EXPECT().Delete(gomock.Any(), ref).Return(assert.AnError)

	res, err := svc.Delete(ctx, models.KindHygiene, "a-1")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.DeletedFrom{Cloud: false, Local: true}, res.DeletedFrom)
	assert.Contains(t, res.Error, "cloud delete")
}

func TestDeletionService_BothSidesFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// локальной записи нет, облако тоже падает
	svc, _, remote, session := newTestDeletion(t, ctrl, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	session.EXPECT().Authenticated().Return(true)
	remote.EXPECT().Get(gomock.Any(), gomock.Any()).Return(models.Document{}, false, nil)
	remote.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(assert.AnError)

	res, err := svc.Delete(testContext(), models.KindTreatment, "t-404")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "local delete")
}

func TestDeletionService_DeleteBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := testContext()
	now := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	svc, local, remote, session := newTestDeletion(t, ctrl, now)
	seed(t, local, testRecord(models.KindPatient, "p-1"), testRecord(models.KindPatient, "p-2"))

	session.EXPECT().Authenticated().Return(true).Times(2)
	remote.EXPECT().Get(gomock.Any(), models.DocumentRef{Collection: models.CollectionPatients, ID: "p-1"}).
		Return(models.Document{}, false, nil)
	remote.EXPECT().Delete(gomock.Any(), models.DocumentRef{Collection: models.CollectionPatients, ID: "p-1"}).
		Return(nil)
	// p-2 синхронизирован вчера: заблокирован
	remote.EXPECT().Get(gomock.Any(), models.DocumentRef{Collection: models.CollectionPatients, ID: "p-2"}).
		Return(syncedDoc("p-2", time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)), true, nil)

	got := svc.DeleteBatch(ctx, []models.RecordRef{
		{Kind: models.KindPatient, ID: "p-1"},
		{Kind: models.KindPatient, ID: "p-2"},
		{Kind: models.KindPatient, ID: ""},
	})

	assert.Equal(t, []string{"p-1"}, got.Successful)
	require.Len(t, got.Failed, 2)
	assert.Equal(t, "p-2", got.Failed[0].ID)
	assert.Contains(t, got.Failed[0].Reason, "could only be deleted until 2024-01-16 00:00")
	assert.Empty(t, got.Failed[1].ID)
	assert.NotEmpty(t, got.Failed[1].Reason)

	empty := svc.DeleteBatch(ctx, nil)
	assert.NotNil(t, empty.Successful)
	assert.NotNil(t, empty.Failed)
}
