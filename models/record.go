package models

import "time"

// Record is the shape shared by every syncable entity. Payload is an
// application-defined serialized blob; the sync layer copies it verbatim and
// never interprets it.
type Record struct {
	// ID is the globally unique identifier assigned on the device that
	// created the record.
	ID string `json:"id"`

	// Kind is the local table the record lives in.
	Kind EntityKind `json:"kind"`

	// OwnerPatientID links assessments and treatments to their patient.
	// Empty for patients.
	OwnerPatientID string `json:"patient_id,omitempty"`

	// Payload holds the serialized assessment answers, treatment details or
	// patient demographics.
	Payload string `json:"payload"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Deleted marks a soft-deleted local record.
	Deleted bool `json:"deleted,omitempty"`
}

// RecordRef addresses a single record in the local store.
type RecordRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

// Ref returns the address of r.
func (r Record) Ref() RecordRef {
	return RecordRef{Kind: r.Kind, ID: r.ID}
}

// RecordFilter narrows local store queries.
type RecordFilter struct {
	// IDs restricts the result to the given identifiers when non-empty.
	IDs []string

	// UpdatedAfter keeps only records modified strictly after the given time.
	UpdatedAfter *time.Time

	// IncludeDeleted also returns soft-deleted rows.
	IncludeDeleted bool
}

// PendingRecord is a local record selected for push together with its
// ledger state.
type PendingRecord struct {
	Record

	// PreviouslySynced is set when the record was pushed before and has been
	// edited locally since.
	PreviouslySynced bool
}
