package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/service"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
	"github.com/MKhiriev/go-mission-sync/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is ordered: the first match wins, so errors joined from
// several causes map to the most specific status.
var errorStatuses = []errorStatus{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidCursor, http.StatusBadRequest},
	{ErrMissingSignature, http.StatusBadRequest},
	{ErrSignatureMismatch, http.StatusBadRequest},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrInvalidToken, http.StatusBadRequest},
	{service.ErrTokenIsExpired, http.StatusUnauthorized},
	{service.ErrNotAuthenticated, http.StatusUnauthorized},
	{service.ErrUnknownEngine, http.StatusNotFound},
	{service.ErrUnknownLifecycleEvent, http.StatusNotFound},
	{service.ErrSyncInProgress, http.StatusConflict},
	{service.ErrHubUnreachable, http.StatusServiceUnavailable},
	{service.ErrCloudNotConfigured, http.StatusServiceUnavailable},

	{store.ErrRecordNotFound, http.StatusNotFound},
	{store.ErrRecordAlreadyExists, http.StatusConflict},
	{store.ErrUnknownKind, http.StatusBadRequest},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with a JSON error body. Server-side failures are
// logged; client mistakes are not.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("func", fn).Int("status", status).Msg("request failed")
	}
	utils.WriteJSON(w, models.ErrorResponse{Error: err.Error()}, status)
}
