package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/internal/validators"
	"github.com/MKhiriev/go-mission-sync/models"
)

const lockTimeLayout = "2006-01-02 15:04 MST"

// lockCutoff returns the first midnight after syncedAt in loc.
func lockCutoff(syncedAt time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	s := syncedAt.In(loc)
	return time.Date(s.Year(), s.Month(), s.Day()+1, 0, 0, 0, 0, loc)
}

// IsLocked reports whether a record synced at syncedAt can no longer be
// deleted at now. The lock starts at the first midnight after syncedAt in
// loc and never lifts.
func IsLocked(syncedAt, now time.Time, loc *time.Location) bool {
	return !now.Before(lockCutoff(syncedAt, loc))
}

// LockReason explains a lock to the user.
func LockReason(syncedAt time.Time, loc *time.Location) string {
	cutoff := lockCutoff(syncedAt, loc)
	return fmt.Sprintf("record was synced at %s and could only be deleted until %s",
		syncedAt.In(cutoff.Location()).Format(lockTimeLayout), cutoff.Format(lockTimeLayout))
}

type deletionService struct {
	local     store.LocalStore
	remote    store.RemoteDocumentStore
	session   SessionService
	validator validators.Validator
	loc       *time.Location
	now       func() time.Time
}

// NewDeletionService builds the deletion gate. remote may be nil when no
// cloud store is configured; every delete is then refused because the sync
// time cannot be verified.
func NewDeletionService(local store.LocalStore, remote store.RemoteDocumentStore, session SessionService, loc *time.Location) DeletionService {
	if loc == nil {
		loc = time.Local
	}
	return &deletionService{
		local:     local,
		remote:    remote,
		session:   session,
		validator: validators.NewRecordValidator(),
		loc:       loc,
		now:       time.Now,
	}
}

// CheckDeletable reads syncedAt fresh from the cloud. Anything that prevents
// the read refuses the delete.
func (s *deletionService) CheckDeletable(ctx context.Context, kind models.EntityKind, id string) (models.Deletability, error) {
	if err := s.validator.Validate(ctx, models.RecordRef{Kind: kind, ID: id}); err != nil {
		return models.Deletability{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if s.remote == nil {
		return models.Deletability{Reason: "cloud store is not configured, sync time cannot be verified"}, nil
	}
	if !s.session.Authenticated() {
		return models.Deletability{Reason: "sign in to verify when the record was synced"}, nil
	}

	ref := models.DocumentRef{Collection: kind.RemoteCollection(), ID: id}
	doc, found, err := s.remote.Get(ctx, ref)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "deletionService.CheckDeletable").
			Str("collection", ref.Collection).
			Str("id", id).
			Msg("sync time lookup failed, delete refused")
		return models.Deletability{Reason: "sync time could not be verified, try again when online"}, nil
	}
	if !found {
		return models.Deletability{Deletable: true}, nil
	}

	// assessments share one collection, the id alone does not pin the kind
	remoteRec, err := models.DocumentToRecord(doc)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "deletionService.CheckDeletable").
			Str("collection", ref.Collection).
			Str("id", id).
			Msg("cloud copy could not be mapped, delete refused")
		return models.Deletability{Reason: "cloud copy could not be read"}, nil
	}
	if remoteRec.Kind != kind {
		return models.Deletability{Reason: fmt.Sprintf("cloud copy of %s is a %s record, not %s", id, remoteRec.Kind, kind)}, nil
	}

	syncedAt, ok := doc.SyncedAt()
	if !ok {
		return models.Deletability{Reason: "cloud copy carries no sync time"}, nil
	}
	if IsLocked(syncedAt, s.now(), s.loc) {
		return models.Deletability{Locked: true, Reason: LockReason(syncedAt, s.loc)}, nil
	}

	return models.Deletability{Deletable: true}, nil
}

// Delete removes the record from the cloud and soft-deletes it locally. The
// two sides are attempted independently; the result is a success when at
// least one side succeeded.
func (s *deletionService) Delete(ctx context.Context, kind models.EntityKind, id string) (models.DeleteResult, error) {
	check, err := s.CheckDeletable(ctx, kind, id)
	if err != nil {
		return models.DeleteResult{Error: err.Error()}, err
	}
	if !check.Deletable {
		return models.DeleteResult{Locked: check.Locked, Reason: check.Reason}, nil
	}

	var (
		result models.DeleteResult
		errs   []error
	)

	ref := models.DocumentRef{Collection: kind.RemoteCollection(), ID: id}
	if err = s.remote.Delete(ctx, ref); err != nil {
		errs = append(errs, fmt.Errorf("cloud delete: %w", err))
	} else {
		result.DeletedFrom.Cloud = true
	}

	err = s.local.Write(ctx, func(tx store.LocalTx) error {
		return tx.MarkAsDeleted(ctx, kind, id)
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("local delete: %w", err))
	} else {
		result.DeletedFrom.Local = true
	}

	result.Success = result.DeletedFrom.Cloud || result.DeletedFrom.Local
	joined := errors.Join(errs...)
	if joined != nil {
		result.Error = joined.Error()
		logger.FromContext(ctx).Warn().Err(joined).
			Str("func", "deletionService.Delete").
			Str("kind", string(kind)).
			Str("id", id).
			Bool("cloud", result.DeletedFrom.Cloud).
			Bool("local", result.DeletedFrom.Local).
			Msg("delete did not reach every store")
	}

	if !result.Success {
		return result, joined
	}
	return result, nil
}

func (s *deletionService) DeleteBatch(ctx context.Context, refs []models.RecordRef) models.BatchDeleteResult {
	result := models.BatchDeleteResult{
		Successful: make([]string, 0, len(refs)),
		Failed:     make([]models.DeleteFailure, 0),
	}

	for _, ref := range refs {
		res, err := s.Delete(ctx, ref.Kind, ref.ID)
		if res.Success {
			result.Successful = append(result.Successful, ref.ID)
			continue
		}

		reason := res.Reason
		switch {
		case reason != "":
		case res.Error != "":
			reason = res.Error
		case err != nil:
			reason = err.Error()
		default:
			reason = "delete failed"
		}
		result.Failed = append(result.Failed, models.DeleteFailure{ID: ref.ID, Reason: reason})
	}

	return result
}
