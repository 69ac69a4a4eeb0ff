// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoAddress      = errors.New("no listen address is configured")
	errNoHandler      = errors.New("no handler is provided")
	errAlreadyRunning = errors.New("server is already running")
)
