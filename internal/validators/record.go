package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mission-sync/models"
)

// Field names accepted by RecordValidator.
const (
	// FieldID targets the record identifier.
	FieldID = "id"

	// FieldKind targets the entity kind.
	FieldKind = "kind"

	// FieldPatientID requires a patient link on treatments and assessments
	// and forbids it on patients.
	FieldPatientID = "patient_id"

	// FieldPayload targets the opaque payload. Only emptiness is checked:
	// the content is never parsed.
	FieldPayload = "payload"

	// FieldTimestamps checks that updatedAt does not precede createdAt.
	FieldTimestamps = "timestamps"
)

// RecordValidator validates records, record refs and hub push requests.
type RecordValidator struct{}

// NewRecordValidator returns a RecordValidator as a Validator.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate supports models.Record, models.RecordRef, []models.RecordRef and
// models.HubPushRequest, by value or by pointer. Without fields every field
// of the type is validated.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(value, fields...)
	case *models.Record:
		return v.validateRecord(*value, fields...)

	case models.RecordRef:
		return v.validateRef(value)
	case *models.RecordRef:
		return v.validateRef(*value)
	case []models.RecordRef:
		return v.validateRefs(value)

	case models.HubPushRequest:
		return v.validatePushRequest(value)
	case *models.HubPushRequest:
		return v.validatePushRequest(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(rec models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldKind, FieldPatientID, FieldPayload, FieldTimestamps}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(rec.ID) == "" {
				return ErrInvalidID
			}
		case FieldKind:
			if !rec.Kind.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidKind, rec.Kind)
			}
		case FieldPatientID:
			if rec.Kind == models.KindPatient && rec.OwnerPatientID != "" {
				return ErrUnexpectedPatientID
			}
			if rec.Kind != models.KindPatient && strings.TrimSpace(rec.OwnerPatientID) == "" {
				return ErrMissingPatientID
			}
		case FieldPayload:
			if rec.Payload == "" {
				return ErrEmptyPayload
			}
		case FieldTimestamps:
			if !rec.CreatedAt.IsZero() && !rec.UpdatedAt.IsZero() && rec.UpdatedAt.Before(rec.CreatedAt) {
				return ErrInvalidTimestamps
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateRef(ref models.RecordRef) error {
	if !ref.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, ref.Kind)
	}
	if strings.TrimSpace(ref.ID) == "" {
		return ErrInvalidID
	}
	return nil
}

func (v *RecordValidator) validateRefs(refs []models.RecordRef) error {
	if len(refs) == 0 {
		return ErrEmptyRefs
	}
	for i, ref := range refs {
		if err := v.validateRef(ref); err != nil {
			return fmt.Errorf("ref %d: %w", i, err)
		}
	}
	return nil
}

// validatePushRequest checks what the hub needs to store a record: an id on
// every entry and a known discriminator on every assessment.
func (v *RecordValidator) validatePushRequest(req models.HubPushRequest) error {
	check := func(array string, wires []models.WireRecord, assessments bool) error {
		for i, w := range wires {
			if strings.TrimSpace(w.ID) == "" {
				return fmt.Errorf("%s[%d]: %w", array, i, ErrInvalidID)
			}
			if !assessments {
				continue
			}
			if _, ok := models.KindFromAssessmentType(w.AssessmentType); !ok {
				return fmt.Errorf("%s[%d]: %w: %q", array, i, ErrInvalidAssessmentType, w.AssessmentType)
			}
		}
		return nil
	}

	if err := check("patients", req.Changes.Patients, false); err != nil {
		return err
	}
	if err := check("treatments", req.Changes.Treatments, false); err != nil {
		return err
	}
	return check("assessments", req.Changes.Assessments, true)
}
