package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/models"
)

var remoteCollections = []string{
	models.CollectionPatients,
	models.CollectionTreatments,
	models.CollectionAssessments,
}

type ledgerStrategy struct {
	local   store.LocalStore
	target  string
	checker ExistenceChecker
	now     func() time.Time
}

// NewLedgerStrategy selects only the records target has not received yet,
// using the local sync ledger as the "already synced" set.
//
// Records the ledger has never seen are confirmed with checker first: ids
// already present remotely are adopted into the ledger without a push, and
// ids whose check failed wait for the next cycle. A nil checker pushes
// everything the ledger reports.
func NewLedgerStrategy(local store.LocalStore, target string, checker ExistenceChecker) ChangeSetStrategy {
	return &ledgerStrategy{local: local, target: target, checker: checker, now: time.Now}
}

func (s *ledgerStrategy) Pending(ctx context.Context) (models.ChangeSet, error) {
	log := logger.FromContext(ctx)
	cs := models.NewChangeSet()
	fresh := make(map[string][]models.Record)

	for _, kind := range models.AllKinds() {
		pending, err := s.local.Unsynced(ctx, s.target, kind)
		if err != nil {
			return models.ChangeSet{}, fmt.Errorf("list unsynced %s: %w", kind, err)
		}
		for _, p := range pending {
			if p.PreviouslySynced {
				cs.Add(p.Record)
				cs.MarkExisting(p.ID)
				continue
			}
			coll := p.Kind.RemoteCollection()
			fresh[coll] = append(fresh[coll], p.Record)
		}
	}

	if s.checker == nil {
		for _, coll := range remoteCollections {
			for _, rec := range fresh[coll] {
				cs.Add(rec)
			}
		}
		return cs, nil
	}

	var adopted []models.Record
	for _, coll := range remoteCollections {
		recs := fresh[coll]
		if len(recs) == 0 {
			continue
		}

		ids := make([]string, len(recs))
		for i, rec := range recs {
			ids[i] = rec.ID
		}
		report := s.checker.Check(ctx, coll, ids)

		present := toSet(report.Present)
		missing := toSet(report.Missing)
		for _, rec := range recs {
			switch {
			case missing[rec.ID]:
				cs.Add(rec)
			case present[rec.ID]:
				adopted = append(adopted, rec)
			}
		}

		if len(report.Unknown) > 0 {
			log.Debug().
				Str("func", "ledgerStrategy.Pending").
				Str("collection", coll).
				Int("unknown", len(report.Unknown)).
				Msg("existence unknown, records deferred to the next cycle")
		}
	}

	if len(adopted) > 0 {
		if err := s.Acknowledge(ctx, adopted); err != nil {
			log.Warn().Err(err).
				Str("func", "ledgerStrategy.Pending").
				Int("adopted", len(adopted)).
				Msg("failed to adopt remotely present records into the ledger")
		}
	}

	return cs, nil
}

func (s *ledgerStrategy) Count(ctx context.Context) (int, error) {
	total := 0
	for _, kind := range models.AllKinds() {
		pending, err := s.local.Unsynced(ctx, s.target, kind)
		if err != nil {
			return 0, fmt.Errorf("count unsynced %s: %w", kind, err)
		}
		total += len(pending)
	}
	return total, nil
}

// Acknowledge writes the whole push into the ledger in one transaction.
func (s *ledgerStrategy) Acknowledge(ctx context.Context, pushed []models.Record) error {
	if len(pushed) == 0 {
		return nil
	}

	at := s.now()
	return s.local.Write(ctx, func(tx store.LocalTx) error {
		return tx.MarkSynced(ctx, s.target, pushed, at)
	})
}

type snapshotStrategy struct {
	local store.LocalStore
}

// NewSnapshotStrategy selects every live local record on each cycle. The
// hub protocol is whole-snapshot, so nothing is acknowledged.
func NewSnapshotStrategy(local store.LocalStore) ChangeSetStrategy {
	return &snapshotStrategy{local: local}
}

func (s *snapshotStrategy) Pending(ctx context.Context) (models.ChangeSet, error) {
	cs := models.NewChangeSet()
	for _, kind := range models.AllKinds() {
		recs, err := s.local.Query(ctx, kind, models.RecordFilter{})
		if err != nil {
			return models.ChangeSet{}, fmt.Errorf("snapshot %s: %w", kind, err)
		}
		for _, rec := range recs {
			cs.Add(rec)
		}
	}
	return cs, nil
}

func (s *snapshotStrategy) Count(ctx context.Context) (int, error) {
	total := 0
	for _, kind := range models.AllKinds() {
		n, err := s.local.Count(ctx, kind)
		if err != nil {
			return 0, fmt.Errorf("count %s: %w", kind, err)
		}
		total += n
	}
	return total, nil
}

func (s *snapshotStrategy) Acknowledge(context.Context, []models.Record) error {
	return nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
