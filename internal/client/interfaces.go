// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of the agent process.
type Client interface {
	// Run starts the agent and blocks until ctx is cancelled or the
	// process receives a stop signal.
	Run(ctx context.Context) error
}

var _ Client = (*App)(nil)
