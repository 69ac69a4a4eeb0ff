package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-mission-sync/internal/service"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
	"github.com/MKhiriev/go-mission-sync/models"
)

// kindParam resolves the {kind} path segment.
func kindParam(r *http.Request) (models.EntityKind, error) {
	raw := chi.URLParam(r, "kind")
	kind, ok := models.ParseEntityKind(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown record kind %q", service.ErrInvalidDataProvided, raw)
	}
	return kind, nil
}

func (c *ControlHandler) createRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, "*ControlHandler.createRecord", err)
		return
	}

	var rec models.Record
	if err = utils.ReadJSON(r, &rec); err != nil {
		writeError(w, r, "*ControlHandler.createRecord", errors.Join(ErrInvalidJSON, err))
		return
	}
	rec.Kind = kind

	created, err := c.services.Records.Create(r.Context(), rec)
	if err != nil {
		writeError(w, r, "*ControlHandler.createRecord", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (c *ControlHandler) updateRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, "*ControlHandler.updateRecord", err)
		return
	}

	var req models.UpdateRecordRequest
	if err = utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, "*ControlHandler.updateRecord", errors.Join(ErrInvalidJSON, err))
		return
	}

	updated, err := c.services.Records.Update(r.Context(), kind, chi.URLParam(r, "id"), req.Payload)
	if err != nil {
		writeError(w, r, "*ControlHandler.updateRecord", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (c *ControlHandler) getRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, "*ControlHandler.getRecord", err)
		return
	}

	rec, err := c.services.Records.Get(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*ControlHandler.getRecord", err)
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}

// listRecords accepts include_deleted=true and updated_after=<epoch ms>.
func (c *ControlHandler) listRecords(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, "*ControlHandler.listRecords", err)
		return
	}

	filter, err := recordFilter(r)
	if err != nil {
		writeError(w, r, "*ControlHandler.listRecords", err)
		return
	}

	recs, err := c.services.Records.List(r.Context(), kind, filter)
	if err != nil {
		writeError(w, r, "*ControlHandler.listRecords", err)
		return
	}
	if recs == nil {
		recs = []models.Record{}
	}

	utils.WriteJSON(w, recs, http.StatusOK)
}

func recordFilter(r *http.Request) (models.RecordFilter, error) {
	q := r.URL.Query()
	filter := models.RecordFilter{IDs: q["id"]}

	if raw := q.Get("include_deleted"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: include_deleted: %w", service.ErrInvalidDataProvided, err)
		}
		filter.IncludeDeleted = include
	}

	if raw := q.Get("updated_after"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: updated_after: %w", service.ErrInvalidDataProvided, err)
		}
		after := time.UnixMilli(ms).UTC()
		filter.UpdatedAfter = &after
	}

	return filter, nil
}

func (c *ControlHandler) checkDeletable(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, "*ControlHandler.checkDeletable", err)
		return
	}

	check, err := c.services.Deletion.CheckDeletable(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*ControlHandler.checkDeletable", err)
		return
	}

	utils.WriteJSON(w, check, http.StatusOK)
}

// deleteRecord answers 200 with the DeleteResult whenever the gate ran,
// including a refused or locked delete. Only a delete that failed on both
// replicas is reported with an error status.
func (c *ControlHandler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, "*ControlHandler.deleteRecord", err)
		return
	}

	res, err := c.services.Deletion.Delete(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil && !res.Success {
		status := statusFromError(err)
		if errors.Is(err, service.ErrInvalidDataProvided) {
			writeError(w, r, "*ControlHandler.deleteRecord", err)
			return
		}
		utils.WriteJSON(w, res, status)
		return
	}

	utils.WriteJSON(w, res, http.StatusOK)
}

func (c *ControlHandler) deleteRecords(w http.ResponseWriter, r *http.Request) {
	var req models.BatchDeleteRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, "*ControlHandler.deleteRecords", errors.Join(ErrInvalidJSON, err))
		return
	}
	if len(req.Refs) == 0 {
		writeError(w, r, "*ControlHandler.deleteRecords", fmt.Errorf("%w: no records to delete", service.ErrInvalidDataProvided))
		return
	}

	utils.WriteJSON(w, c.services.Deletion.DeleteBatch(r.Context(), req.Refs), http.StatusOK)
}
