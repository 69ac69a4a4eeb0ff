package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Document field names used in the cloud document store.
const (
	FieldID             = "id"
	FieldOwnerID        = "ownerId"
	FieldPatientID      = "patientId"
	FieldAssessmentType = "assessmentType"
	FieldData           = "data"
	FieldRawData        = "rawData"
	FieldDataParseError = "dataParseError"
	FieldCreatedAt      = "createdAt"
	FieldUpdatedAt      = "updatedAt"
	FieldSyncedAt       = "syncedAt"
	FieldLastSyncedAt   = "lastSyncedAt"
)

type serverTimestamp struct{}

// ServerTimestamp is a sentinel field value. The remote store replaces it
// with its own clock when the write is applied, so client clock skew never
// leaks into sync timestamps.
var ServerTimestamp = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// DocumentRef addresses one document in the remote store.
type DocumentRef struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

// Document is a snapshot of a remote document.
type Document struct {
	Ref        DocumentRef
	Fields     map[string]any
	CreateTime time.Time
	UpdateTime time.Time
}

// SetOptions controls how a Set write treats an existing document.
type SetOptions struct {
	// Merge keeps fields of an existing document that the write does not
	// mention. Without Merge the document is replaced.
	Merge bool
}

// DocumentRefFor returns the remote address of rec.
func DocumentRefFor(rec Record) DocumentRef {
	return DocumentRef{Collection: rec.Kind.RemoteCollection(), ID: rec.ID}
}

// RecordToDocument maps rec to the remote document schema.
//
// The payload is expanded into a structured "data" field when it is valid
// JSON. A payload that does not parse is kept verbatim under "rawData" with
// "dataParseError" set, so a malformed record is still replicated. The
// fields of the other form are written as null, so a merge write over an
// older version of the document leaves no stale payload behind.
func RecordToDocument(rec Record, ownerID string) map[string]any {
	fields := map[string]any{
		FieldID:        rec.ID,
		FieldCreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		FieldUpdatedAt: rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if ownerID != "" {
		fields[FieldOwnerID] = ownerID
	}
	if rec.OwnerPatientID != "" {
		fields[FieldPatientID] = rec.OwnerPatientID
	}
	if t := rec.Kind.AssessmentType(); t != "" {
		fields[FieldAssessmentType] = t
	}

	var data any
	if err := json.Unmarshal([]byte(rec.Payload), &data); err != nil {
		fields[FieldData] = nil
		fields[FieldRawData] = rec.Payload
		fields[FieldDataParseError] = true
	} else {
		fields[FieldData] = data
		fields[FieldRawData] = nil
		fields[FieldDataParseError] = false
	}

	return fields
}

// SyncedAt returns the authoritative "left the device" time of d: the
// syncedAt field, or createdAt for documents written before syncedAt existed.
func (d Document) SyncedAt() (time.Time, bool) {
	if t, err := fieldTime(d.Fields[FieldSyncedAt]); err == nil {
		return t, true
	}
	if t, err := fieldTime(d.Fields[FieldCreatedAt]); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func fieldTime(v any) (time.Time, error) {
	switch value := v.(type) {
	case time.Time:
		return value, nil
	case string:
		return time.Parse(time.RFC3339Nano, value)
	case float64:
		return time.UnixMilli(int64(value)), nil
	case int64:
		return time.UnixMilli(value), nil
	case nil:
		return time.Time{}, fmt.Errorf("field is not set")
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

// DocumentToRecord is the inverse of RecordToDocument. Assessment documents
// resolve their kind from the assessmentType discriminator. A document stored
// with the rawData fallback yields its raw payload unchanged; a null rawData
// is ignored.
func DocumentToRecord(d Document) (Record, error) {
	rec := Record{ID: d.Ref.ID}
	if id, ok := d.Fields[FieldID].(string); ok && id != "" {
		rec.ID = id
	}
	if rec.ID == "" {
		return Record{}, fmt.Errorf("document in %q has no id", d.Ref.Collection)
	}

	switch d.Ref.Collection {
	case CollectionPatients:
		rec.Kind = KindPatient
	case CollectionTreatments:
		rec.Kind = KindTreatment
	case CollectionAssessments:
		assessmentType, _ := d.Fields[FieldAssessmentType].(string)
		kind, ok := KindFromAssessmentType(assessmentType)
		if !ok {
			return Record{}, fmt.Errorf("document %s: unknown assessment type %q", rec.ID, assessmentType)
		}
		rec.Kind = kind
	default:
		return Record{}, fmt.Errorf("document %s: unknown collection %q", rec.ID, d.Ref.Collection)
	}

	rec.OwnerPatientID, _ = d.Fields[FieldPatientID].(string)

	raw, hasRaw := d.Fields[FieldRawData].(string)
	parseError, _ := d.Fields[FieldDataParseError].(bool)
	data, hasData := d.Fields[FieldData]
	switch {
	case hasRaw && parseError:
		rec.Payload = raw
	case hasData:
		payload, err := json.Marshal(data)
		if err != nil {
			return Record{}, fmt.Errorf("document %s: %w", rec.ID, err)
		}
		rec.Payload = string(payload)
	case hasRaw:
		// written before dataParseError existed
		rec.Payload = raw
	}

	var err error
	if rec.CreatedAt, err = fieldTime(d.Fields[FieldCreatedAt]); err != nil {
		return Record{}, fmt.Errorf("document %s: createdAt: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = fieldTime(d.Fields[FieldUpdatedAt]); err != nil {
		rec.UpdatedAt = rec.CreatedAt
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()

	return rec, nil
}
