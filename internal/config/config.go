// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// field agent and the hub. It is populated by merging defaults, an optional
// .env file, environment variables, command-line flags and an optional JSON
// file. Role specific views are produced by [GetClientConfig] and
// [GetHubConfig].
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the payload hash key,
	// the initial session token and the log destination.
	App App `envPrefix:"APP_"`

	// Storage holds connection settings for the local replica, the cloud
	// document store and the hub store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address of the hub or of the agent control API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds outbound hub client settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Hub holds discovery settings for the local hub.
	Hub Hub `envPrefix:"HUB_"`

	// Workers holds periodic sync intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// Lock holds deletion lock settings.
	Lock Lock `envPrefix:"LOCK_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// HashKey is the HMAC key used for hub payload integrity
	// (the HashSHA256 header). Empty disables signing.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is reported in hub ping responses.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// SessionToken is an identity token to start the agent with. The
	// session can also be set later through the control API.
	// Env: APP_SESSION_TOKEN
	SessionToken string `env:"SESSION_TOKEN"`

	// LogFile is a path for a rotated log file. Empty logs to stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB is the local sqlite replica on the field device.
	DB DB `envPrefix:"DB_"`

	// Remote is the cloud document store.
	Remote DB `envPrefix:"REMOTE_"`

	// Hub is the sqlite store of the hub process.
	Hub DB `envPrefix:"HUB_"`
}

// DB holds a single connection string.
type DB struct {
	// DSN is the data source name. For sqlite it is a file path, for the
	// remote store a PostgreSQL URL.
	// Env: STORAGE_DB_DSN, STORAGE_REMOTE_DSN, STORAGE_HUB_DSN
	DSN string `env:"DSN"`
}

// Server holds inbound transport settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound hub client settings.
type Adapter struct {
	// RequestTimeout bounds push and pull calls to the hub.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Hub holds hub discovery settings.
type Hub struct {
	// CandidateAddresses are the IPs probed during discovery, typically the
	// gateway addresses of phone hotspots and field routers.
	// Env: HUB_CANDIDATE_ADDRESSES (comma separated)
	CandidateAddresses []string `env:"CANDIDATE_ADDRESSES" envSeparator:","`

	// Port is the hub HTTP port.
	// Env: HUB_PORT
	Port int `env:"PORT"`

	// ProbeTimeout bounds a single discovery ping.
	// Env: HUB_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`

	// MaxFailures is the number of consecutive failed pings after which the
	// adopted hub is dropped and discovery runs again.
	// Env: HUB_MAX_FAILURES
	MaxFailures int `env:"MAX_FAILURES"`
}

// Workers holds periodic sync intervals.
type Workers struct {
	// Env: WORKERS_CLOUD_SYNC_INTERVAL
	CloudSyncInterval time.Duration `env:"CLOUD_SYNC_INTERVAL"`
	// Env: WORKERS_HUB_SYNC_INTERVAL
	HubSyncInterval time.Duration `env:"HUB_SYNC_INTERVAL"`
}

// Lock holds deletion lock settings.
type Lock struct {
	// Timezone is the IANA zone whose midnight closes the deletion window.
	// Empty means the device's local zone.
	// Env: LOCK_TIMEZONE
	Timezone string `env:"TIMEZONE"`
}

// GetStructuredConfig loads and merges the configuration from all sources,
// later sources overriding earlier non-zero fields:
//  1. Built-in defaults
//  2. .env file (when present)
//  3. Environment variables
//  4. Command-line flags
//  5. JSON file (path resolved from sources 3 and 4)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv(".env").
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
