package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
	"github.com/MKhiriev/go-mission-sync/internal/validators"
	"github.com/MKhiriev/go-mission-sync/models"
)

type recordService struct {
	local     store.LocalStore
	ids       utils.IDGenerator
	validator validators.Validator
}

// NewRecordService is the UI write path into the local store. Records
// written here are picked up by both engines on their next cycle.
func NewRecordService(local store.LocalStore, ids utils.IDGenerator) RecordService {
	return &recordService{
		local:     local,
		ids:       ids,
		validator: validators.NewRecordValidator(),
	}
}

// Create assigns an id when the caller did not bring one and stores rec.
func (s *recordService) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	if rec.ID == "" {
		rec.ID = s.ids.Generate()
	}
	rec.Deleted = false

	if err := s.validator.Validate(ctx, rec); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var created models.Record
	err := s.local.Write(ctx, func(tx store.LocalTx) error {
		if err := tx.Create(ctx, rec); err != nil {
			return err
		}
		var err error
		created, err = tx.Find(ctx, rec.Kind, rec.ID)
		return err
	})
	if err != nil {
		return models.Record{}, fmt.Errorf("create %s: %w", rec.Kind, err)
	}

	return created, nil
}

// Update replaces the payload and bumps updatedAt, which queues the record
// for re-push.
func (s *recordService) Update(ctx context.Context, kind models.EntityKind, id, payload string) (models.Record, error) {
	probe := models.Record{ID: id, Kind: kind, Payload: payload}
	if err := s.validator.Validate(ctx, probe, validators.FieldID, validators.FieldKind, validators.FieldPayload); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var updated models.Record
	err := s.local.Write(ctx, func(tx store.LocalTx) error {
		var err error
		updated, err = tx.Update(ctx, kind, id, func(rec *models.Record) {
			rec.Payload = payload
		})
		return err
	})
	if err != nil {
		return models.Record{}, fmt.Errorf("update %s/%s: %w", kind, id, err)
	}

	return updated, nil
}

func (s *recordService) Get(ctx context.Context, kind models.EntityKind, id string) (models.Record, error) {
	if err := s.validator.Validate(ctx, models.RecordRef{Kind: kind, ID: id}); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return s.local.Find(ctx, kind, id)
}

func (s *recordService) List(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidDataProvided, validators.ErrInvalidKind, kind)
	}
	return s.local.Query(ctx, kind, filter)
}
