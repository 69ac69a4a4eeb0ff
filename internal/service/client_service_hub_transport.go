package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/adapter"
	"github.com/MKhiriev/go-mission-sync/internal/config"
	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/models"
)

// discoveryCooldown spaces automatic discovery runs while no hub answers,
// so an agent off the mission network does not scan on every cycle.
const discoveryCooldown = 2 * time.Minute

type hubTransport struct {
	adapter      adapter.HubAdapter
	discovery    HubDiscovery
	probeTimeout time.Duration
	maxFailures  int
	now          func() time.Time

	mu              sync.Mutex
	failures        int
	lastDiscoveryAt time.Time
}

// NewHubTransport builds the LAN transport on top of discovery.
func NewHubTransport(hubAdapter adapter.HubAdapter, discovery HubDiscovery, cfg config.ClientHub) HubTransport {
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = config.DefaultProbeTimeout
	}
	maxFailures := cfg.MaxFailures
	if maxFailures <= 0 {
		maxFailures = config.DefaultMaxFailures
	}

	return &hubTransport{
		adapter:      hubAdapter,
		discovery:    discovery,
		probeTimeout: probeTimeout,
		maxFailures:  maxFailures,
		now:          time.Now,
	}
}

func (t *hubTransport) Name() string {
	return EngineHub
}

// Available re-verifies the adopted hub on every call. Without an adopted
// hub it runs discovery, at most once per cooldown.
func (t *hubTransport) Available(ctx context.Context) error {
	address := t.discovery.Active()
	if address == "" {
		t.mu.Lock()
		cooling := !t.lastDiscoveryAt.IsZero() && t.now().Sub(t.lastDiscoveryAt) < discoveryCooldown
		if !cooling {
			t.lastDiscoveryAt = t.now()
		}
		t.mu.Unlock()

		if cooling {
			return ErrHubUnreachable
		}
		_, err := t.Rediscover(ctx)
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, t.probeTimeout)
	defer cancel()

	if _, err := t.adapter.Ping(pingCtx, address); err != nil {
		t.mu.Lock()
		t.failures++
		dropped := t.failures >= t.maxFailures
		if dropped {
			t.failures = 0
		}
		t.mu.Unlock()

		if dropped {
			t.discovery.Forget()
			logger.FromContext(ctx).Warn().
				Str("func", "hubTransport.Available").
				Str("hub", address).
				Int("max_failures", t.maxFailures).
				Msg("hub stopped answering, dropped")
		}
		return fmt.Errorf("%w: %w", ErrHubUnreachable, err)
	}

	t.mu.Lock()
	t.failures = 0
	t.mu.Unlock()
	return nil
}

func (t *hubTransport) Rediscover(ctx context.Context) (string, error) {
	address, err := t.discovery.Discover(ctx)

	t.mu.Lock()
	t.lastDiscoveryAt = t.now()
	t.failures = 0
	t.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHubUnreachable, err)
	}
	return address, nil
}

// Push sends the whole change set in one request.
func (t *hubTransport) Push(ctx context.Context, cs models.ChangeSet) (models.PushReport, error) {
	address := t.discovery.Active()
	if address == "" {
		return models.PushReport{}, ErrHubUnreachable
	}

	recs := cs.All()
	if _, err := t.adapter.Push(ctx, address, models.HubPushRequest{Changes: models.ChangesFromRecords(recs)}); err != nil {
		return models.PushReport{}, fmt.Errorf("push to hub %s: %w", address, err)
	}

	return models.PushReport{Pushed: recs}, nil
}

func (t *hubTransport) Pull(ctx context.Context, since time.Time) ([]models.Record, time.Time, []error, error) {
	address := t.discovery.Active()
	if address == "" {
		return nil, since, nil, ErrHubUnreachable
	}

	resp, err := t.adapter.Pull(ctx, address, since)
	if err != nil {
		return nil, since, nil, fmt.Errorf("pull from hub %s: %w", address, err)
	}

	recs, skipped := models.RecordsFromChanges(resp.HubChanges)

	cursor := since
	if resp.Timestamp > 0 {
		cursor = time.UnixMilli(resp.Timestamp).UTC()
	}
	return recs, cursor, skipped, nil
}
