package service

import (
	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/metrics"
	"github.com/MKhiriev/go-mission-sync/internal/store"
)

// Services groups the hub process services.
type Services struct {
	AppInfoService AppInfoService
	HubService     HubService
}

func NewServices(repo store.HubRepository, version string, m *metrics.HubMetrics, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(version)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService: appInfo,
		HubService:     NewHubService(repo, appInfo, m, logger),
	}, nil
}
