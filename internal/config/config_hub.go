// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// HubConfig is the hub process configuration.
type HubConfig struct {
	// HashKey enables HashSHA256 verification of push bodies and signing of
	// responses when non-empty.
	HashKey string
	Version string
	LogFile string

	// DSN is the sqlite path of the hub store.
	DSN string

	HTTPAddress    string
	RequestTimeout time.Duration
}

// GetHubConfig builds and validates the hub config view. Without an explicit
// listen address the hub binds to all interfaces on the hub port.
func GetHubConfig() (*HubConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newHubConfig(cfg)
}

func newHubConfig(cfg *StructuredConfig) (*HubConfig, error) {
	address := cfg.Server.HTTPAddress
	if address == "" {
		address = fmt.Sprintf(":%d", cfg.Hub.Port)
	}

	hubCfg := &HubConfig{
		HashKey:        cfg.App.HashKey,
		Version:        cfg.App.Version,
		LogFile:        cfg.App.LogFile,
		DSN:            cfg.Storage.Hub.DSN,
		HTTPAddress:    address,
		RequestTimeout: cfg.Server.RequestTimeout,
	}

	return hubCfg, hubCfg.validate()
}
