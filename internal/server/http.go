package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

// shutdownTimeout bounds the graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

type httpServer struct {
	server  *http.Server
	address string

	mu       sync.Mutex
	listener net.Listener

	logger *logger.Logger
}

// newHTTPServer wraps handler with a per-request deadline when timeout is
// positive.
func newHTTPServer(handler http.Handler, address string, timeout time.Duration, logger *logger.Logger) *httpServer {
	if timeout > 0 {
		handler = middleware.Timeout(timeout)(handler)
	}

	return &httpServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		address: address,
		logger:  logger,
	}
}

func (h *httpServer) listen() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listener != nil {
		return errAlreadyRunning
	}

	ln, err := net.Listen("tcp", h.address)
	if err != nil {
		return err
	}
	h.listener = ln
	return nil
}

// serve blocks until the server is shut down. A graceful shutdown is not an
// error.
func (h *httpServer) serve() error {
	h.mu.Lock()
	ln := h.listener
	h.mu.Unlock()

	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		// ошибки закрытия Listener
		h.logger.Err(err).Str("func", "*httpServer.shutdown").Msg("HTTP server shutdown error")
	}
}

func (h *httpServer) addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listener == nil {
		return ""
	}
	return h.listener.Addr().String()
}
