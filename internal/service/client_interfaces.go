package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mission-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// Sync targets. Each one keeps its own rows in the local sync ledger.
const (
	EngineCloud = "cloud"
	EngineHub   = "hub"
)

// SyncEngine runs push (and optionally pull) cycles against one remote
// replica. At most one cycle is in flight per engine.
type SyncEngine interface {
	// Name returns the engine label ("cloud" or "hub").
	Name() string

	// Sync runs one cycle. A call made while another cycle is running
	// returns ErrSyncInProgress and changes nothing. Without a session the
	// cloud engine returns ErrNotAuthenticated before any network call; an
	// unreachable hub skips the cycle without error.
	Sync(ctx context.Context) (models.CycleResult, error)

	// ForceSync is the on-demand entry point used by the control API and
	// lifecycle events. It behaves exactly like Sync.
	ForceSync(ctx context.Context) (models.CycleResult, error)

	// Status returns the current status snapshot.
	Status() models.SyncStatus

	// Subscribe calls fn with the current snapshot right away and then on
	// every transition. The returned function removes the subscription and
	// may be called any number of times.
	Subscribe(fn func(models.SyncStatus)) (unsubscribe func())

	// PendingCount recomputes the number of records waiting for push without
	// touching the network.
	PendingCount(ctx context.Context) (int, error)
}

// Transport moves a change set to one remote replica.
type Transport interface {
	Name() string

	// Available reports whether a cycle may run now. It returns
	// ErrNotAuthenticated or ErrHubUnreachable to skip the cycle.
	Available(ctx context.Context) error

	// Push writes cs to the remote replica. Groups that fail are listed in
	// the report; the returned error is reserved for failures that stopped
	// the whole push.
	Push(ctx context.Context, cs models.ChangeSet) (models.PushReport, error)
}

// SessionTransport is implemented by transports whose Available checks a
// signed-in session. Only their engines report IsAuthenticated.
type SessionTransport interface {
	RequiresSession() bool
}

// Puller fetches records the remote replica received after a cursor.
type Puller interface {
	// Pull returns the records received after since and the next cursor.
	// Entries that could not be decoded are reported in skipped and never
	// drop the valid ones.
	Pull(ctx context.Context, since time.Time) (recs []models.Record, cursor time.Time, skipped []error, err error)
}

// ChangeSetStrategy decides which local records a cycle pushes.
type ChangeSetStrategy interface {
	// Pending selects the records for the next push.
	Pending(ctx context.Context) (models.ChangeSet, error)

	// Count returns how many records Pending would select, without any
	// remote call.
	Count(ctx context.Context) (int, error)

	// Acknowledge records that pushed reached the remote replica.
	Acknowledge(ctx context.Context, pushed []models.Record) error
}

// SessionService holds the identity the cloud engine acts as.
type SessionService interface {
	// SetToken replaces the current session. Expired or malformed tokens
	// are rejected and leave the session unchanged.
	SetToken(raw string) error
	Clear()
	Authenticated() bool
	// OwnerID returns the subject of a valid session.
	OwnerID() (string, bool)
	// OnChange registers fn to be called after every session change with
	// the new authentication state.
	OnChange(fn func(authenticated bool))
}

// ExistenceChecker answers whether records are already in the cloud.
type ExistenceChecker interface {
	// Exists fails soft: without a session, or when the lookup fails, it
	// answers true so that an ambiguous check never leads to a duplicate
	// write.
	Exists(ctx context.Context, collection, id string) bool

	// Check looks up many ids of one collection with a single round trip.
	Check(ctx context.Context, collection string, ids []string) models.ExistenceReport
}

// DeletionService gates deletes behind the midnight lock.
type DeletionService interface {
	CheckDeletable(ctx context.Context, kind models.EntityKind, id string) (models.Deletability, error)
	Delete(ctx context.Context, kind models.EntityKind, id string) (models.DeleteResult, error)
	DeleteBatch(ctx context.Context, refs []models.RecordRef) models.BatchDeleteResult
}

// RecordService is the local write path used by the UI.
type RecordService interface {
	Create(ctx context.Context, rec models.Record) (models.Record, error)
	Update(ctx context.Context, kind models.EntityKind, id, payload string) (models.Record, error)
	Get(ctx context.Context, kind models.EntityKind, id string) (models.Record, error)
	List(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error)
}

// HubDiscovery finds and remembers the active hub peer.
type HubDiscovery interface {
	// Discover probes every candidate and adopts the first responder.
	Discover(ctx context.Context) (string, error)
	// Active returns the adopted hub address, or "" when none is adopted.
	Active() string
	// Forget drops the adopted address so the next cycle discovers again.
	Forget()
}

// HubTransport is the LAN transport: it pushes snapshots to the adopted hub
// and pulls what other devices pushed there.
type HubTransport interface {
	Transport
	Puller

	// Rediscover runs discovery now, ignoring any cooldown.
	Rediscover(ctx context.Context) (string, error)
}

// SyncJob runs an engine periodically.
type SyncJob interface {
	// Start launches the background loop. A running loop is stopped first.
	Start(ctx context.Context, interval time.Duration)
	// Stop cancels the loop and waits for it to exit. Calling it on a
	// stopped job is a no-op.
	Stop()
	// Trigger requests an immediate cycle without blocking. Requests made
	// while one is already queued are coalesced.
	Trigger()
}
