package http

import (
	"net/http"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/service"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
)

// Handler serves the hub protocol.
type Handler struct {
	services *service.Services
	signer   *utils.Signer
	metrics  http.Handler

	logger *logger.Logger
}

// NewHandler builds the hub handler. metrics may be nil to leave /metrics
// unregistered.
func NewHandler(services *service.Services, hashKey string, metrics http.Handler, logger *logger.Logger) *Handler {
	logger.Info().Bool("signed", hashKey != "").Msg("hub http handler created")
	return &Handler{
		services: services,
		signer:   utils.NewSigner(hashKey),
		metrics:  metrics,
		logger:   logger,
	}
}

// ControlHandler serves the agent's loopback control API.
type ControlHandler struct {
	services *service.ClientServices

	logger *logger.Logger
}

func NewControlHandler(services *service.ClientServices, logger *logger.Logger) *ControlHandler {
	logger.Info().Msg("control http handler created")
	return &ControlHandler{
		services: services,
		logger:   logger,
	}
}
