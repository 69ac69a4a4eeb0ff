package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
	"github.com/MKhiriev/go-mission-sync/models"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.HubService.Ping(r.Context()), http.StatusOK)
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.HubPushRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("invalid JSON was passed")
		http.Error(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.services.HubService.Push(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("error storing pushed snapshot")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	since, err := parseCursor(r.URL.Query().Get("lastPulledAt"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("bad cursor")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.services.HubService.Pull(r.Context(), since)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("error reading records")
		http.Error(w, "error reading records", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// parseCursor reads lastPulledAt as epoch milliseconds. A missing value
// means "from the beginning".
func parseCursor(raw string) (time.Time, error) {
	if raw == "" {
		return time.UnixMilli(0).UTC(), nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms < 0 {
		return time.Time{}, ErrInvalidCursor
	}
	return time.UnixMilli(ms).UTC(), nil
}
