package store

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/models"
)

const (
	selectDocumentsSQL = `SELECT id, fields, created_at, updated_at FROM documents WHERE collection = $1`
	insertDocumentSQL  = `INSERT INTO documents (collection,id,fields) VALUES ($1,$2,$3::jsonb`
	deleteDocumentSQL  = `DELETE FROM documents WHERE collection = $1 AND id = $2`
)

var documentRowColumns = []string{"id", "fields", "created_at", "updated_at"}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL оборачивает *sql.DB из sqlmock в DB хранилища.
func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func newTestRemoteStore(t *testing.T) (RemoteDocumentStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	store := NewRemoteDocumentStore(newDBFromSQL(db), WithRetryConfig(RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}))
	return store, mock
}

func TestRemoteDocumentStore_Get(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	ref := models.DocumentRef{Collection: models.CollectionPatients, ID: "p1"}

	t.Run("found", func(t *testing.T) {
		store, mock := newTestRemoteStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectDocumentsSQL + ` AND id = $2`)).
			WithArgs(ref.Collection, ref.ID).
			WillReturnRows(sqlmock.NewRows(documentRowColumns).
				AddRow("p1", []byte(`{"ownerId":"u1","syncedAt":"2024-01-15T10:00:00Z"}`), created, created))

		doc, found, err := store.Get(testContext(), ref)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, ref, doc.Ref)
		assert.Equal(t, "u1", doc.Fields[models.FieldOwnerID])
		assert.Equal(t, created, doc.CreateTime)
		syncedAt, ok := doc.SyncedAt()
		require.True(t, ok)
		assert.True(t, syncedAt.Equal(created))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		store, mock := newTestRemoteStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectDocumentsSQL)).
			WillReturnRows(sqlmock.NewRows(documentRowColumns))

		_, found, err := store.Get(testContext(), ref)

		require.NoError(t, err)
		assert.False(t, found)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("broken json", func(t *testing.T) {
		store, mock := newTestRemoteStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectDocumentsSQL)).
			WillReturnRows(sqlmock.NewRows(documentRowColumns).
				AddRow("p1", []byte(`{`), created, created))

		_, found, err := store.Get(testContext(), ref)

		assert.ErrorIs(t, err, ErrDecodingDocument)
		assert.False(t, found)
	})
}

func TestRemoteDocumentStore_GetMany(t *testing.T) {
	store, mock := newTestRemoteStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentsSQL + ` AND id IN ($2,$3,$4)`)).
		WithArgs(models.CollectionAssessments, "a1", "a2", "a3").
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow("a1", []byte(`{"assessmentType":"hygiene"}`), now, now).
			AddRow("a3", []byte(`{"assessmentType":"implant"}`), now, now))

	docs, err := store.GetMany(testContext(), models.CollectionAssessments, []string{"a1", "a2", "a3"})

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Contains(t, docs, "a1")
	assert.NotContains(t, docs, "a2")
	assert.Equal(t, "implant", docs["a3"].Fields[models.FieldAssessmentType])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoteDocumentStore_SetResolvesServerTimestamps(t *testing.T) {
	store, mock := newTestRemoteStore(t)
	ref := models.DocumentRef{Collection: models.CollectionTreatments, ID: "t1"}

	mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL+
		` || jsonb_build_object($4::text, to_jsonb(now())) || jsonb_build_object($5::text, to_jsonb(now())))`+
		` ON CONFLICT (collection, id) DO UPDATE SET fields = documents.fields || EXCLUDED.fields`)).
		WithArgs(ref.Collection, ref.ID, `{"ownerId":"u1"}`, models.FieldLastSyncedAt, models.FieldSyncedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Set(testContext(), ref, map[string]any{
		models.FieldOwnerID:      "u1",
		models.FieldSyncedAt:     models.ServerTimestamp,
		models.FieldLastSyncedAt: models.ServerTimestamp,
	}, models.SetOptions{Merge: true})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoteDocumentStore_SetRetries(t *testing.T) {
	ref := models.DocumentRef{Collection: models.CollectionPatients, ID: "p1"}

	t.Run("retryable failure is retried", func(t *testing.T) {
		store, mock := newTestRemoteStore(t)

		mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
		mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Set(testContext(), ref, map[string]any{"id": "p1"}, models.SetOptions{})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non retryable failure stops at once", func(t *testing.T) {
		store, mock := newTestRemoteStore(t)

		mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := store.Set(testContext(), ref, map[string]any{"id": "p1"}, models.SetOptions{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr))
		assert.Equal(t, pgerrcode.UniqueViolation, pgErr.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries run out", func(t *testing.T) {
		store, mock := newTestRemoteStore(t)

		for range 3 {
			mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
				WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})
		}

		err := store.Set(testContext(), ref, map[string]any{"id": "p1"}, models.SetOptions{})

		assert.ErrorIs(t, err, ErrExecutingStatement)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoteDocumentStore_Delete(t *testing.T) {
	store, mock := newTestRemoteStore(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteDocumentSQL)).
		WithArgs(models.CollectionAssessments, "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Delete(testContext(), models.DocumentRef{Collection: models.CollectionAssessments, ID: "a1"})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteBatch_Commit(t *testing.T) {
	refA := models.DocumentRef{Collection: models.CollectionPatients, ID: "p1"}
	refB := models.DocumentRef{Collection: models.CollectionPatients, ID: "p2"}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "all writes land in one transaction",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).WithArgs("patients", "p1", `{"id":"p1"}`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta(deleteDocumentSQL)).WithArgs("patients", "p2").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "failed write rolls back the batch",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation})
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "begin failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			wantErr: ErrBeginningTransaction,
		},
		{
			name: "commit failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta(deleteDocumentSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("commit lost"))
			},
			wantErr: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newTestRemoteStore(t)
			tt.setup(mock)

			batch := store.Batch().
				Set(refA, map[string]any{"id": "p1"}, models.SetOptions{Merge: true}).
				Delete(refB)
			require.Equal(t, 2, batch.Len())

			err := batch.Commit(testContext())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWriteBatch_Empty(t *testing.T) {
	store, mock := newTestRemoteStore(t)

	err := store.Batch().Commit(testContext())

	assert.ErrorIs(t, err, ErrEmptyBatch)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteBatch_UnencodableField(t *testing.T) {
	store, _ := newTestRemoteStore(t)

	err := store.Batch().
		Set(models.DocumentRef{Collection: "patients", ID: "p1"}, map[string]any{"bad": make(chan int)}, models.SetOptions{}).
		Commit(testContext())

	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
	assert.ErrorIs(t, err, ErrEncodingDocument)
}
