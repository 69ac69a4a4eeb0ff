package service

import (
	"context"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/models"
)

type existenceChecker struct {
	remote  store.RemoteDocumentStore
	session SessionService
}

// NewExistenceChecker builds the cloud dedup checker.
//
// Check resolves a whole collection with one GetMany instead of one Get per
// record; Exists keeps the single-record contract for callers that need it.
func NewExistenceChecker(remote store.RemoteDocumentStore, session SessionService) ExistenceChecker {
	return &existenceChecker{remote: remote, session: session}
}

func (c *existenceChecker) Exists(ctx context.Context, collection, id string) bool {
	if c.remote == nil || !c.session.Authenticated() {
		return true
	}

	_, found, err := c.remote.Get(ctx, models.DocumentRef{Collection: collection, ID: id})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "existenceChecker.Exists").
			Str("collection", collection).
			Str("id", id).
			Msg("existence check failed, assuming the document exists")
		return true
	}

	return found
}

func (c *existenceChecker) Check(ctx context.Context, collection string, ids []string) models.ExistenceReport {
	if len(ids) == 0 {
		return models.ExistenceReport{}
	}
	if c.remote == nil || !c.session.Authenticated() {
		return models.ExistenceReport{Unknown: append([]string(nil), ids...)}
	}

	docs, err := c.remote.GetMany(ctx, collection, ids)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "existenceChecker.Check").
			Str("collection", collection).
			Int("ids", len(ids)).
			Msg("batched existence check failed")
		return models.ExistenceReport{Unknown: append([]string(nil), ids...)}
	}

	var report models.ExistenceReport
	for _, id := range ids {
		if _, ok := docs[id]; ok {
			report.Present = append(report.Present, id)
		} else {
			report.Missing = append(report.Missing, id)
		}
	}
	return report
}
