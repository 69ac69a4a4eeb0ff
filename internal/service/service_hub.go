// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/metrics"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/internal/validators"
	"github.com/MKhiriev/go-mission-sync/models"
)

type hubService struct {
	repo      store.HubRepository
	appInfo   AppInfoService
	validator validators.Validator
	metrics   *metrics.HubMetrics
	now       func() time.Time

	logger *logger.Logger
}

// NewHubService builds the hub side of the protocol over repo. m may be nil.
func NewHubService(repo store.HubRepository, appInfo AppInfoService, m *metrics.HubMetrics, logger *logger.Logger) HubService {
	return &hubService{
		repo:      repo,
		appInfo:   appInfo,
		validator: validators.NewRecordValidator(),
		metrics:   m,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *hubService) Push(ctx context.Context, req models.HubPushRequest) (models.HubPushResponse, error) {
	log := logger.FromContext(ctx)
	received := req.Changes.Len()

	if err := s.validator.Validate(ctx, req); err != nil {
		s.metrics.ObservePush(received, 0, err)
		return models.HubPushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	recs, errs := models.RecordsFromChanges(req.Changes)
	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.metrics.ObservePush(received, 0, err)
		return models.HubPushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	stored, receivedAt, err := s.repo.Save(ctx, recs, s.now().UTC())
	if err != nil {
		log.Err(err).Str("func", "hubService.Push").Int("received", received).Msg("failed to store pushed snapshot")
		s.metrics.ObservePush(received, 0, err)
		return models.HubPushResponse{}, fmt.Errorf("store pushed records: %w", err)
	}
	s.metrics.ObservePush(received, stored, nil)
	s.refreshRecordsGauge(ctx)

	log.Info().
		Str("func", "hubService.Push").
		Int("received", received).
		Int("stored", stored).
		Msg("snapshot stored")

	return models.HubPushResponse{
		Received:  received,
		Stored:    stored,
		Timestamp: receivedAt.UnixMilli(),
	}, nil
}

// Pull answers with the hub clock the records were read at. A push still
// in flight is stamped above that clock, so the next pull returns it.
func (s *hubService) Pull(ctx context.Context, since time.Time) (models.HubPullResponse, error) {
	recs, cursor, err := s.repo.ReceivedAfter(ctx, since)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "hubService.Pull").
			Time("since", since).
			Msg("failed to read records")
		s.metrics.ObservePull(0, err)
		return models.HubPullResponse{}, fmt.Errorf("read records received after %d: %w", since.UnixMilli(), err)
	}
	s.metrics.ObservePull(len(recs), nil)

	return models.HubPullResponse{
		HubChanges: models.ChangesFromRecords(recs),
		Timestamp:  cursor.UnixMilli(),
	}, nil
}

func (s *hubService) Ping(ctx context.Context) models.PingResponse {
	return models.PingResponse{
		Status:  "ok",
		Version: s.appInfo.GetAppVersion(ctx),
		Time:    s.now().UnixMilli(),
	}
}

func (s *hubService) refreshRecordsGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "hubService.refreshRecordsGauge").Msg("failed to count records")
		return
	}
	s.metrics.SetRecords(n)
}
