package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/service"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
	"github.com/MKhiriev/go-mission-sync/models"
)

func (c *ControlHandler) status(w http.ResponseWriter, r *http.Request) {
	resp := models.AgentStatus{Hub: c.services.HubEngine.Status()}
	if c.services.CloudEngine != nil {
		cloud := c.services.CloudEngine.Status()
		resp.Cloud = &cloud
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// syncAll forces a cycle on every engine, one after the other. A failing
// engine does not prevent the next one; each outcome carries its own error.
func (c *ControlHandler) syncAll(w http.ResponseWriter, r *http.Request) {
	engines := c.services.Engines()
	outcomes := make([]models.SyncOutcome, 0, len(engines))
	for _, engine := range engines {
		outcome, _ := forceSync(r.Context(), engine)
		outcomes = append(outcomes, outcome)
	}

	utils.WriteJSON(w, outcomes, http.StatusOK)
}

func (c *ControlHandler) syncEngine(w http.ResponseWriter, r *http.Request) {
	engine, err := c.services.Engine(chi.URLParam(r, "engine"))
	if err != nil {
		writeError(w, r, "*ControlHandler.syncEngine", err)
		return
	}

	outcome, err := forceSync(r.Context(), engine)
	status := http.StatusOK
	if err != nil {
		status = statusFromError(err)
	}

	utils.WriteJSON(w, outcome, status)
}

func forceSync(ctx context.Context, engine service.SyncEngine) (models.SyncOutcome, error) {
	result, err := engine.ForceSync(ctx)
	outcome := models.SyncOutcome{Engine: engine.Name(), Result: result}
	if err != nil {
		outcome.Error = err.Error()
	}
	return outcome, err
}

func (c *ControlHandler) discoverHub(w http.ResponseWriter, r *http.Request) {
	address, err := c.services.HubTransport.Rediscover(r.Context())
	if err != nil {
		writeError(w, r, "*ControlHandler.discoverHub", err)
		return
	}

	utils.WriteJSON(w, models.HubDiscoveryResult{Address: address}, http.StatusOK)
}

func (c *ControlHandler) lifecycle(w http.ResponseWriter, r *http.Request) {
	event := chi.URLParam(r, "event")
	if err := c.services.HandleLifecycle(event); err != nil {
		writeError(w, r, "*ControlHandler.lifecycle", err)
		return
	}

	logger.FromRequest(r).Debug().Str("event", event).Msg("lifecycle event handled")
	w.WriteHeader(http.StatusAccepted)
}

func (c *ControlHandler) sessionState() models.SessionState {
	owner, ok := c.services.Session.OwnerID()
	return models.SessionState{Authenticated: ok, OwnerID: owner}
}

func (c *ControlHandler) getSession(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, c.sessionState(), http.StatusOK)
}

func (c *ControlHandler) setSession(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, "*ControlHandler.setSession", errors.Join(ErrInvalidJSON, err))
		return
	}

	if err := c.services.Session.SetToken(req.Token); err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("func", "*ControlHandler.setSession").Msg("session token rejected")
		writeError(w, r, "*ControlHandler.setSession", err)
		return
	}

	utils.WriteJSON(w, c.sessionState(), http.StatusOK)
}

func (c *ControlHandler) clearSession(w http.ResponseWriter, r *http.Request) {
	c.services.Session.Clear()
	w.WriteHeader(http.StatusNoContent)
}
