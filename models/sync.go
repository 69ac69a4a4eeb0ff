package models

import "time"

// ChangeSet is the set of local records selected for one push.
type ChangeSet struct {
	// Records groups the selected records by kind.
	Records map[EntityKind][]Record

	// Existing holds ids already present in the remote replica. Those
	// records are re-pushed because they changed locally after their last
	// sync.
	Existing map[string]struct{}
}

// NewChangeSet returns an empty ChangeSet ready for use.
func NewChangeSet() ChangeSet {
	return ChangeSet{
		Records:  make(map[EntityKind][]Record),
		Existing: make(map[string]struct{}),
	}
}

// Add appends rec under its kind.
func (c *ChangeSet) Add(rec Record) {
	if c.Records == nil {
		c.Records = make(map[EntityKind][]Record)
	}
	c.Records[rec.Kind] = append(c.Records[rec.Kind], rec)
}

// MarkExisting flags id as already present remotely.
func (c *ChangeSet) MarkExisting(id string) {
	if c.Existing == nil {
		c.Existing = make(map[string]struct{})
	}
	c.Existing[id] = struct{}{}
}

// IsExisting reports whether id is already present remotely.
func (c ChangeSet) IsExisting(id string) bool {
	_, ok := c.Existing[id]
	return ok
}

// Len returns the total number of records across all kinds.
func (c ChangeSet) Len() int {
	n := 0
	for _, recs := range c.Records {
		n += len(recs)
	}
	return n
}

// All returns the records flattened in AllKinds order.
func (c ChangeSet) All() []Record {
	out := make([]Record, 0, c.Len())
	for _, kind := range AllKinds() {
		out = append(out, c.Records[kind]...)
	}
	return out
}

// PushReport describes the outcome of one push.
type PushReport struct {
	// Pushed lists the records whose batch committed.
	Pushed []Record

	// Failures maps a remote collection (or a kind for per-kind transports)
	// to the error that stopped it.
	Failures map[string]error
}

// AddFailure records err for group.
func (p *PushReport) AddFailure(group string, err error) {
	if p.Failures == nil {
		p.Failures = make(map[string]error)
	}
	p.Failures[group] = err
}

// SyncStatus is the observable state of one sync engine.
type SyncStatus struct {
	Engine          string     `json:"engine"`
	IsOnline        bool       `json:"is_online"`
	IsAuthenticated bool       `json:"is_authenticated"`
	IsSyncing       bool       `json:"is_syncing"`
	LastSyncTime    *time.Time `json:"last_sync_time"`
	PendingCount    int        `json:"pending_count"`
	LastError       *string    `json:"last_error"`
}

// CycleResult summarises one completed sync cycle.
type CycleResult struct {
	Pending int  `json:"pending"`
	Pushed  int  `json:"pushed"`
	Pulled  int  `json:"pulled"`
	Merged  int  `json:"merged"`
	Skipped bool `json:"skipped,omitempty"`
}

// ExistenceReport partitions ids by whether the remote replica holds them.
// Unknown ids could not be checked and must be treated as present.
type ExistenceReport struct {
	Present []string
	Missing []string
	Unknown []string
}
