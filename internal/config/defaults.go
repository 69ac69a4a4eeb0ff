package config

import "time"

// DefaultHubCandidates are the gateway addresses of common phone hotspots
// and field routers.
var DefaultHubCandidates = []string{
	"192.168.43.1",
	"192.168.1.1",
	"192.168.0.1",
	"10.0.0.1",
	"172.20.10.1",
}

const (
	DefaultHubPort           = 8765
	DefaultProbeTimeout      = 3 * time.Second
	DefaultMaxFailures       = 3
	DefaultCloudSyncInterval = 45 * time.Second
	DefaultHubSyncInterval   = 30 * time.Second
	DefaultRequestTimeout    = 30 * time.Second
	DefaultControlAddress    = "127.0.0.1:8766"
)

func defaultConfig() *StructuredConfig {
	candidates := make([]string, len(DefaultHubCandidates))
	copy(candidates, DefaultHubCandidates)

	return &StructuredConfig{
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultRequestTimeout,
		},
		Hub: Hub{
			CandidateAddresses: candidates,
			Port:               DefaultHubPort,
			ProbeTimeout:       DefaultProbeTimeout,
			MaxFailures:        DefaultMaxFailures,
		},
		Workers: Workers{
			CloudSyncInterval: DefaultCloudSyncInterval,
			HubSyncInterval:   DefaultHubSyncInterval,
		},
	}
}
