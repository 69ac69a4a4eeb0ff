// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// WireRecord is the hub protocol representation of a Record. Timestamps are
// epoch milliseconds.
type WireRecord struct {
	ID             string `json:"id"`
	PatientID      string `json:"patientId,omitempty"`
	AssessmentType string `json:"assessmentType,omitempty"`
	Data           string `json:"data"`
	CreatedAt      int64  `json:"createdAt"`
	UpdatedAt      int64  `json:"updatedAt"`
}

// HubChanges carries the three wire arrays. Assessments from all six local
// tables travel in one array, tagged with assessmentType.
type HubChanges struct {
	Patients    []WireRecord `json:"patients"`
	Treatments  []WireRecord `json:"treatments"`
	Assessments []WireRecord `json:"assessments"`
}

// Len returns the number of records across all arrays.
func (c HubChanges) Len() int {
	return len(c.Patients) + len(c.Treatments) + len(c.Assessments)
}

// HubPushRequest is the body of POST /sync/push.
type HubPushRequest struct {
	Changes HubChanges `json:"changes"`
}

// HubPushResponse is the summary returned by POST /sync/push.
type HubPushResponse struct {
	Received  int   `json:"received"`
	Stored    int   `json:"stored"`
	Timestamp int64 `json:"timestamp"`
}

// HubPullResponse is the body of GET /sync/pull. Timestamp becomes the
// caller's next lastPulledAt cursor.
type HubPullResponse struct {
	HubChanges
	Timestamp int64 `json:"timestamp"`
}

// PingResponse is the body of GET /ping.
type PingResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    int64  `json:"time"`
}

// RecordToWire converts rec into its wire form.
func RecordToWire(rec Record) WireRecord {
	return WireRecord{
		ID:             rec.ID,
		PatientID:      rec.OwnerPatientID,
		AssessmentType: rec.Kind.AssessmentType(),
		Data:           rec.Payload,
		CreatedAt:      rec.CreatedAt.UnixMilli(),
		UpdatedAt:      rec.UpdatedAt.UnixMilli(),
	}
}

// WireToRecord converts w back into a Record of the given kind. For
// assessments the kind argument is ignored and resolved from the
// assessmentType discriminator.
func WireToRecord(kind EntityKind, w WireRecord) (Record, error) {
	if w.ID == "" {
		return Record{}, fmt.Errorf("wire record without id")
	}
	if kind.IsAssessment() || w.AssessmentType != "" {
		resolved, ok := KindFromAssessmentType(w.AssessmentType)
		if !ok {
			return Record{}, fmt.Errorf("record %s: unknown assessment type %q", w.ID, w.AssessmentType)
		}
		kind = resolved
	}

	return Record{
		ID:             w.ID,
		Kind:           kind,
		OwnerPatientID: w.PatientID,
		Payload:        w.Data,
		CreatedAt:      time.UnixMilli(w.CreatedAt).UTC(),
		UpdatedAt:      time.UnixMilli(w.UpdatedAt).UTC(),
	}, nil
}

// ChangesFromRecords groups recs into the three wire arrays.
func ChangesFromRecords(recs []Record) HubChanges {
	changes := HubChanges{
		Patients:    make([]WireRecord, 0),
		Treatments:  make([]WireRecord, 0),
		Assessments: make([]WireRecord, 0),
	}
	for _, rec := range recs {
		w := RecordToWire(rec)
		switch rec.Kind {
		case KindPatient:
			changes.Patients = append(changes.Patients, w)
		case KindTreatment:
			changes.Treatments = append(changes.Treatments, w)
		default:
			changes.Assessments = append(changes.Assessments, w)
		}
	}
	return changes
}

// RecordsFromChanges converts the three wire arrays back into records.
// Entries that cannot be converted are returned as errors alongside the
// records that could; one bad entry never drops the rest.
func RecordsFromChanges(changes HubChanges) ([]Record, []error) {
	recs := make([]Record, 0, changes.Len())
	var errs []error

	appendAll := func(kind EntityKind, wires []WireRecord) {
		for _, w := range wires {
			rec, err := WireToRecord(kind, w)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			recs = append(recs, rec)
		}
	}

	appendAll(KindPatient, changes.Patients)
	appendAll(KindTreatment, changes.Treatments)
	appendAll(KindDentition, changes.Assessments)

	return recs, errs
}
