package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-mission-sync/internal/adapter"
	"github.com/MKhiriev/go-mission-sync/internal/config"
	myHTTP "github.com/MKhiriev/go-mission-sync/internal/handler/http"
	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/metrics"
	"github.com/MKhiriev/go-mission-sync/internal/server"
	"github.com/MKhiriev/go-mission-sync/internal/service"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/internal/workers"
)

// Worker names.
const (
	workerHub   = "hub-sync"
	workerCloud = "cloud-sync"
)

// App is the field agent process: both sync engines on their schedules and
// the control API in front of them.
type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	workers  *workers.Workers
	server   server.Server

	logger *logger.Logger
}

// NewApp opens the stores and wires every agent component from cfg. The
// prometheus registerer receives the sync metrics.
func NewApp(ctx context.Context, cfg *config.ClientConfig, reg prometheus.Registerer, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("error creating storages: %w", err)
	}

	hubAdapter := adapter.NewHubHTTPAdapter(cfg.Adapter, cfg.App, log)
	services := service.NewClientServices(storages, hubAdapter, cfg, metrics.NewSyncMetrics(reg))

	srv, err := server.NewServer(
		myHTTP.NewControlHandler(services, log).Init(),
		cfg.Server.ControlAddress,
		cfg.Server.RequestTimeout,
		log,
	)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("error creating control server: %w", err)
	}

	app := &App{
		storages: storages,
		services: services,
		workers:  workers.NewWorkers(log),
		server:   srv,
		logger:   log,
	}
	app.scheduleJobs(cfg.Workers)

	if cfg.App.SessionToken != "" {
		if err = services.Session.SetToken(cfg.App.SessionToken); err != nil {
			// агент продолжает работу, сессию можно задать через control API
			log.Warn().Err(err).Str("func", "client.NewApp").Msg("initial session token rejected")
		}
	}

	return app, nil
}

// scheduleJobs registers the sync jobs. The cloud job runs only while a
// session is set.
func (a *App) scheduleJobs(cfg config.ClientWorkers) {
	a.workers.Add(workerHub, a.services.HubJob, cfg.HubSyncInterval, true)

	if a.services.CloudJob == nil {
		return
	}
	a.workers.Add(workerCloud, a.services.CloudJob, cfg.CloudSyncInterval, a.services.Session.Authenticated())
	a.services.Session.OnChange(func(authenticated bool) {
		if authenticated {
			a.workers.Resume(workerCloud)
			a.services.CloudJob.Trigger()
			return
		}
		a.workers.Pause(workerCloud)
	})
}

// Run starts the sync jobs and serves the control API until ctx is cancelled
// or a stop signal arrives. Stores are closed before returning.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	a.workers.Run(ctx)
	serveErr := a.server.Run(ctx)
	a.workers.Stop()

	closeErr := a.storages.Close()
	if closeErr != nil {
		a.logger.Err(closeErr).Str("func", "*App.Run").Msg("error closing storages")
	}

	return errors.Join(serveErr, closeErr)
}
