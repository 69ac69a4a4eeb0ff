package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mission-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalStore is the device replica: one table per entity kind plus the sync
// ledger. Every mutation goes through Write so that one logical unit of work
// commits or rolls back as a whole.
type LocalStore interface {
	// Write runs fn inside a single SQL transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	Write(ctx context.Context, fn func(tx LocalTx) error) error

	Query(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error)
	// Find returns ErrRecordNotFound when id is absent from the kind's table.
	Find(ctx context.Context, kind models.EntityKind, id string) (models.Record, error)
	// Count returns the number of live (not soft-deleted) records of kind.
	Count(ctx context.Context, kind models.EntityKind) (int, error)
	// Unsynced returns live records of kind that target has never received
	// or that were edited after their last push to target.
	Unsynced(ctx context.Context, target string, kind models.EntityKind) ([]models.PendingRecord, error)

	Close() error
}

// LocalTx is the mutation surface available inside [LocalStore.Write].
type LocalTx interface {
	Create(ctx context.Context, rec models.Record) error
	// Update loads the record, applies mutate and stores the result with a
	// fresh updatedAt.
	Update(ctx context.Context, kind models.EntityKind, id string, mutate func(rec *models.Record)) (models.Record, error)
	MarkAsDeleted(ctx context.Context, kind models.EntityKind, id string) error
	Find(ctx context.Context, kind models.EntityKind, id string) (models.Record, error)
	// Exists reports whether id is present in kind's table, soft-deleted
	// rows included.
	Exists(ctx context.Context, kind models.EntityKind, id string) (bool, error)
	// MarkSynced records in the ledger that target holds recs as of their
	// current updatedAt.
	MarkSynced(ctx context.Context, target string, recs []models.Record, at time.Time) error
}

// RemoteDocumentStore is the cloud document database addressed by
// (collection, id).
type RemoteDocumentStore interface {
	// Get returns found=false without error when the document is absent.
	Get(ctx context.Context, ref models.DocumentRef) (doc models.Document, found bool, err error)
	// GetMany returns the documents of collection whose ids are in ids,
	// keyed by id. Absent ids are simply missing from the map.
	GetMany(ctx context.Context, collection string, ids []string) (map[string]models.Document, error)
	Set(ctx context.Context, ref models.DocumentRef, fields map[string]any, opts models.SetOptions) error
	Delete(ctx context.Context, ref models.DocumentRef) error
	Batch() WriteBatch
	Close() error
}

// WriteBatch collects writes that are committed atomically.
type WriteBatch interface {
	Set(ref models.DocumentRef, fields map[string]any, opts models.SetOptions) WriteBatch
	Delete(ref models.DocumentRef) WriteBatch
	Len() int
	Commit(ctx context.Context) error
}

// HubRepository is the hub's own store of everything pushed to it.
type HubRepository interface {
	// Save upserts recs in one transaction and returns the number of rows
	// written. Every row that is new or carries a newer updatedAt is stamped
	// with the hub clock, advanced inside the transaction to at least now.
	// The stamp is returned and grows in commit order.
	Save(ctx context.Context, recs []models.Record, now time.Time) (int, time.Time, error)
	// ReceivedAfter returns the records stamped strictly after since and the
	// committed hub clock to use as the next cursor.
	ReceivedAfter(ctx context.Context, since time.Time) ([]models.Record, time.Time, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
