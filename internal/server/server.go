package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer creates a server for handler on address. requestTimeout bounds
// every request; zero disables the bound.
func NewServer(handler http.Handler, address string, requestTimeout time.Duration, logger *logger.Logger) (Server, error) {
	logger.Info().Str("address", address).Msg("creating new server...")

	if handler == nil {
		return nil, errNoHandler
	}
	if address == "" {
		return nil, errNoAddress
	}

	return &server{
		httpServer: newHTTPServer(handler, address, requestTimeout, logger),
		logger:     logger,
	}, nil
}

func (s *server) Addr() string {
	return s.httpServer.addr()
}

func (s *server) Run(ctx context.Context) error {
	if err := s.httpServer.listen(); err != nil {
		return fmt.Errorf("error listening on %s: %w", s.httpServer.address, err)
	}

	ctx, stop := signal.NotifyContext(
		ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve()
	}()
	s.logger.Info().Str("address", s.Addr()).Msg("Launching HTTP server")

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// finish started server
	s.httpServer.shutdown()
	if err := <-serveErr; err != nil {
		return fmt.Errorf("HTTP server serve: %w", err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
