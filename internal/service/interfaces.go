package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mission-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// HubService is the server side of the hub wire protocol.
type HubService interface {
	// Push validates and stores a device snapshot.
	Push(ctx context.Context, req models.HubPushRequest) (models.HubPushResponse, error)
	// Pull returns everything received after since. The response timestamp
	// is captured before the read, so nothing stored during the read is
	// skipped by the next pull.
	Pull(ctx context.Context, since time.Time) (models.HubPullResponse, error)
	Ping(ctx context.Context) models.PingResponse
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
