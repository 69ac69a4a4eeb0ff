package service

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/adapter"
	"github.com/MKhiriev/go-mission-sync/internal/config"
	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

type hubDiscovery struct {
	adapter      adapter.HubAdapter
	candidates   []string
	probeTimeout time.Duration

	mu     sync.RWMutex
	active string
}

// NewHubDiscovery probes cfg.CandidateAddresses on cfg.Port. There is no
// multicast discovery: the candidates are the gateway addresses a hub phone
// or field router hands out.
func NewHubDiscovery(hubAdapter adapter.HubAdapter, cfg config.ClientHub) HubDiscovery {
	candidates := make([]string, 0, len(cfg.CandidateAddresses))
	for _, host := range cfg.CandidateAddresses {
		candidates = append(candidates, net.JoinHostPort(host, strconv.Itoa(cfg.Port)))
	}

	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = config.DefaultProbeTimeout
	}

	return &hubDiscovery{
		adapter:      hubAdapter,
		candidates:   candidates,
		probeTimeout: probeTimeout,
	}
}

// Discover pings every candidate at once. The first one to answer is
// adopted and the remaining probes are cancelled.
func (d *hubDiscovery) Discover(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)
	if len(d.candidates) == 0 {
		return "", ErrHubUnreachable
	}

	// Probes are cancelled before the wait, so returning never blocks on a
	// candidate that does not answer.
	var wg sync.WaitGroup
	defer wg.Wait()
	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := make(chan string, len(d.candidates))
	for _, address := range d.candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pingCtx, pingCancel := context.WithTimeout(probeCtx, d.probeTimeout)
			defer pingCancel()

			if _, err := d.adapter.Ping(pingCtx, address); err != nil {
				log.Debug().
					Str("func", "hubDiscovery.Discover").
					Str("candidate", address).
					Err(err).
					Msg("candidate did not answer")
				found <- ""
				return
			}
			found <- address
		}()
	}

	for range d.candidates {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case address := <-found:
			if address == "" {
				continue
			}

			d.mu.Lock()
			d.active = address
			d.mu.Unlock()

			log.Info().
				Str("func", "hubDiscovery.Discover").
				Str("hub", address).
				Msg("hub adopted")
			return address, nil
		}
	}

	return "", ErrHubUnreachable
}

func (d *hubDiscovery) Active() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active
}

func (d *hubDiscovery) Forget() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = ""
}
