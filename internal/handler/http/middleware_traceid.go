package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a request logger carrying trace_id. The id is taken
// from X-Trace-ID when the caller sent one, so an agent cycle and the hub
// requests it caused share a trace. It is also stored in the context for
// outgoing hub calls made while serving the request.
func withTraceID(base *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceIDHeader)
			if traceID == "" {
				traceID = utils.NewTraceID()
			}

			l := base.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})
			ctx := utils.WithTraceID(l.WithContext(r.Context()), traceID)

			w.Header().Set(traceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
