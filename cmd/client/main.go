package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-mission-sync/internal/client"
	"github.com/MKhiriev/go-mission-sync/internal/config"
	"github.com/MKhiriev/go-mission-sync/internal/logger"
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

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("agent").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("agent", cfg.App.LogFile)
	log.Debug().Str("control_address", cfg.Server.ControlAddress).Msg("received configs")

	ctx := context.Background()
	app, err := client.NewApp(ctx, cfg, prometheus.NewRegistry(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init agent error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("agent run error")
	}
}
