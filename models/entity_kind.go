// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityKind identifies one of the local tables that take part in sync.
// The string value is the local table name.
type EntityKind string

const (
	KindPatient     EntityKind = "patients"
	KindTreatment   EntityKind = "treatments"
	KindDentition   EntityKind = "dentition_assessments"
	KindHygiene     EntityKind = "hygiene_assessments"
	KindExtractions EntityKind = "extractions_assessments"
	KindFillings    EntityKind = "fillings_assessments"
	KindDenture     EntityKind = "denture_assessments"
	KindImplant     EntityKind = "implant_assessments"
)

// Remote collection names. All six assessment kinds share one consolidated
// collection and are told apart by the assessmentType field.
const (
	CollectionPatients    = "patients"
	CollectionTreatments  = "treatments"
	CollectionAssessments = "assessments"
)

var allKinds = []EntityKind{
	KindPatient,
	KindTreatment,
	KindDentition,
	KindHygiene,
	KindExtractions,
	KindFillings,
	KindDenture,
	KindImplant,
}

var assessmentTypes = map[EntityKind]string{
	KindDentition:   "dentition",
	KindHygiene:     "hygiene",
	KindExtractions: "extractions",
	KindFillings:    "fillings",
	KindDenture:     "denture",
	KindImplant:     "implant",
}

// AllKinds returns every syncable kind in push order: patients first, so
// that a remote reader never sees an assessment before its patient.
func AllKinds() []EntityKind {
	kinds := make([]EntityKind, len(allKinds))
	copy(kinds, allKinds)
	return kinds
}

// ParseEntityKind converts a table name into an EntityKind.
func ParseEntityKind(s string) (EntityKind, bool) {
	k := EntityKind(s)
	return k, k.Valid()
}

// Valid reports whether k is one of the known kinds.
func (k EntityKind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// TableName returns the local table backing k.
func (k EntityKind) TableName() string {
	return string(k)
}

// IsAssessment reports whether k is one of the six assessment kinds.
func (k EntityKind) IsAssessment() bool {
	_, ok := assessmentTypes[k]
	return ok
}

// AssessmentType returns the wire discriminator for assessment kinds and an
// empty string otherwise.
func (k EntityKind) AssessmentType() string {
	return assessmentTypes[k]
}

// RemoteCollection returns the cloud collection that stores records of kind k.
func (k EntityKind) RemoteCollection() string {
	switch {
	case k == KindPatient:
		return CollectionPatients
	case k == KindTreatment:
		return CollectionTreatments
	default:
		return CollectionAssessments
	}
}

// KindFromAssessmentType resolves an assessmentType discriminator back to
// its local kind.
func KindFromAssessmentType(assessmentType string) (EntityKind, bool) {
	for kind, t := range assessmentTypes {
		if t == assessmentType {
			return kind, true
		}
	}
	return "", false
}
