package models

// AgentStatus is the body of GET /api/status. Cloud is nil when no cloud
// store is configured.
type AgentStatus struct {
	Cloud *SyncStatus `json:"cloud"`
	Hub   SyncStatus  `json:"hub"`
}

// SyncOutcome reports one forced cycle.
type SyncOutcome struct {
	Engine string      `json:"engine"`
	Result CycleResult `json:"result"`
	Error  string      `json:"error,omitempty"`
}

// SessionRequest is the body of PUT /api/session.
type SessionRequest struct {
	Token string `json:"token"`
}

// SessionState describes the current cloud session.
type SessionState struct {
	Authenticated bool   `json:"authenticated"`
	OwnerID       string `json:"owner_id,omitempty"`
}

// UpdateRecordRequest is the body of PUT /api/records/{kind}/{id}.
type UpdateRecordRequest struct {
	Payload string `json:"payload"`
}

// BatchDeleteRequest is the body of POST /api/records/delete.
type BatchDeleteRequest struct {
	Refs []RecordRef `json:"refs"`
}

// HubDiscoveryResult is the body returned by POST /api/hub/discover.
type HubDiscoveryResult struct {
	Address string `json:"address"`
}

// ErrorResponse is the JSON error body of the control API.
type ErrorResponse struct {
	Error string `json:"error"`
}
