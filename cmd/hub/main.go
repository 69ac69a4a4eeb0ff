package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-mission-sync/internal/config"
	myHTTP "github.com/MKhiriev/go-mission-sync/internal/handler/http"
	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/metrics"
	"github.com/MKhiriev/go-mission-sync/internal/server"
	"github.com/MKhiriev/go-mission-sync/internal/service"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("hub")
	cfg, err := config.GetHubConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.HTTPAddress).Str("dsn", cfg.DSN).Msg("received configs")

	version := cfg.Version
	if version == "" {
		version = buildInfo.BuildVersion()
	}

	ctx := context.Background()
	repo, err := store.NewHubStorage(ctx, cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating hub storage")
	}
	defer repo.Close()

	reg := prometheus.NewRegistry()
	services, err := service.NewServices(repo, version, metrics.NewHubMetrics(reg), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handler := myHTTP.NewHandler(services, cfg.HashKey, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), log)
	srv, err := server.NewServer(handler.Init(), cfg.HTTPAddress, cfg.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("hub server error")
	}
}
