package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID             = errors.New("invalid record id")
	ErrInvalidKind           = errors.New("invalid entity kind")
	ErrMissingPatientID      = errors.New("patient id is required")
	ErrUnexpectedPatientID   = errors.New("patients cannot reference a patient")
	ErrEmptyPayload          = errors.New("payload is required")
	ErrInvalidTimestamps     = errors.New("updatedAt precedes createdAt")
	ErrInvalidAssessmentType = errors.New("invalid assessment type")
	ErrEmptyRefs             = errors.New("record refs list cannot be empty")
)
