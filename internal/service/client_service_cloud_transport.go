package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/models"
)

// maxBatchWrites is the largest batch the cloud transport commits at once.
const maxBatchWrites = 500

type cloudTransport struct {
	remote    store.RemoteDocumentStore
	session   SessionService
	batchSize int
}

// NewCloudTransport writes change sets to the cloud document store with
// batched merge writes.
func NewCloudTransport(remote store.RemoteDocumentStore, session SessionService) Transport {
	return &cloudTransport{remote: remote, session: session, batchSize: maxBatchWrites}
}

func (t *cloudTransport) Name() string {
	return EngineCloud
}

func (t *cloudTransport) RequiresSession() bool {
	return true
}

// Available needs no network: the session decides.
func (t *cloudTransport) Available(context.Context) error {
	if t.remote == nil {
		return ErrCloudNotConfigured
	}
	if !t.session.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (t *cloudTransport) Push(ctx context.Context, cs models.ChangeSet) (models.PushReport, error) {
	ownerID, ok := t.session.OwnerID()
	if !ok {
		return models.PushReport{}, ErrNotAuthenticated
	}

	log := logger.FromContext(ctx)
	grouped := make(map[string][]models.Record)
	for _, rec := range cs.All() {
		coll := rec.Kind.RemoteCollection()
		grouped[coll] = append(grouped[coll], rec)
	}

	var report models.PushReport
	for _, coll := range remoteCollections {
		recs := grouped[coll]
		for start := 0; start < len(recs); start += t.batchSize {
			end := min(start+t.batchSize, len(recs))
			chunk := recs[start:end]

			batch := t.remote.Batch()
			for _, rec := range chunk {
				batch.Set(models.DocumentRefFor(rec), documentFields(rec, ownerID, cs.IsExisting(rec.ID)), models.SetOptions{Merge: true})
			}

			if err := batch.Commit(ctx); err != nil {
				log.Err(err).
					Str("func", "cloudTransport.Push").
					Str("collection", coll).
					Int("batch", len(chunk)).
					Msg("batch commit failed")
				report.AddFailure(coll, fmt.Errorf("push %s: %w", coll, err))
				break
			}
			report.Pushed = append(report.Pushed, chunk...)
		}
	}

	return report, nil
}

// documentFields stamps the sync timestamps on top of the record mapping.
// syncedAt is written only for documents the remote has never seen, so a
// re-push of an edited record never moves its deletion cutoff.
func documentFields(rec models.Record, ownerID string, existing bool) map[string]any {
	fields := models.RecordToDocument(rec, ownerID)
	fields[models.FieldLastSyncedAt] = models.ServerTimestamp
	if !existing {
		fields[models.FieldSyncedAt] = models.ServerTimestamp
	}
	return fields
}
