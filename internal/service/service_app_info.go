package service

import (
	"context"
)

type appInfoService struct {
	appVersion string
}

// NewAppInfoService reports version in hub pings. An empty version is a
// build or configuration mistake.
func NewAppInfoService(version string) (AppInfoService, error) {
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{appVersion: version}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}
