// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the agent invariants before startup. The remote DSN and
// the session token are optional: without them the agent keeps collecting
// offline and syncs through the hub only.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.LocalDSN == "" || strings.Contains(cfg.Storage.LocalDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if len(cfg.Hub.CandidateAddresses) == 0 || cfg.Hub.Port <= 0 ||
		cfg.Hub.ProbeTimeout <= 0 || cfg.Hub.MaxFailures <= 0 {
		return ErrInvalidHubConfigs
	}

	if cfg.Workers.CloudSyncInterval <= 0 || cfg.Workers.HubSyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *HubConfig) validate() error {
	if cfg.DSN == "" || strings.Contains(cfg.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
