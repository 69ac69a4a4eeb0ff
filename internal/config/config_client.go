package config

import (
	"fmt"
	"time"
)

// ClientApp holds agent-side application settings.
type ClientApp struct {
	// HashKey is the HMAC key used for hub payload integrity checks.
	HashKey string
	// SessionToken is the identity token the agent starts with, if any.
	SessionToken string
	// LogFile is the rotated log file path; empty logs to stdout.
	LogFile string
	Version string
}

// ClientAdapter holds settings of the outbound hub client.
type ClientAdapter struct {
	RequestTimeout time.Duration
}

// ClientStorage groups the agent's storage backends.
type ClientStorage struct {
	// LocalDSN is the sqlite path of the device replica.
	LocalDSN string
	// RemoteDSN is the cloud document store DSN.
	RemoteDSN string
}

// ClientServer holds the loopback control API settings.
type ClientServer struct {
	ControlAddress string
	RequestTimeout time.Duration
}

// ClientHub holds hub discovery settings.
type ClientHub struct {
	CandidateAddresses []string
	Port               int
	ProbeTimeout       time.Duration
	MaxFailures        int
}

// ClientWorkers contains the periodic sync intervals.
type ClientWorkers struct {
	CloudSyncInterval time.Duration
	HubSyncInterval   time.Duration
}

// ClientLock holds the resolved deletion cutoff zone.
type ClientLock struct {
	Location *time.Location
}

// ClientConfig is the field agent configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Server  ClientServer
	Hub     ClientHub
	Workers ClientWorkers
	Lock    ClientLock
}

// GetClientConfig builds and validates the field agent config view.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	loc, err := loadLocation(cfg.Lock.Timezone)
	if err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey:      cfg.App.HashKey,
			SessionToken: cfg.App.SessionToken,
			LogFile:      cfg.App.LogFile,
			Version:      cfg.App.Version,
		},
		Adapter: ClientAdapter{
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			LocalDSN:  cfg.Storage.DB.DSN,
			RemoteDSN: cfg.Storage.Remote.DSN,
		},
		Server: ClientServer{
			ControlAddress: controlAddress(cfg.Server.HTTPAddress),
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Hub: ClientHub{
			CandidateAddresses: cfg.Hub.CandidateAddresses,
			Port:               cfg.Hub.Port,
			ProbeTimeout:       cfg.Hub.ProbeTimeout,
			MaxFailures:        cfg.Hub.MaxFailures,
		},
		Workers: ClientWorkers{
			CloudSyncInterval: cfg.Workers.CloudSyncInterval,
			HubSyncInterval:   cfg.Workers.HubSyncInterval,
		},
		Lock: ClientLock{Location: loc},
	}

	return clientCfg, clientCfg.validate()
}

// controlAddress keeps the control API on loopback unless an address is
// configured explicitly.
func controlAddress(configured string) string {
	if configured == "" {
		return DefaultControlAddress
	}
	return configured
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLockConfigs, err)
	}
	return loc, nil
}
