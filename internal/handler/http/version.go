package http

import (
	"net/http"
)

func (h *Handler) getHubVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.services.AppInfoService.GetAppVersion(r.Context())))
}
