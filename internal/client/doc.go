// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the field agent process.
//
// It opens the device stores, builds the cloud and hub sync engines, runs
// them on their schedules and serves the loopback control API the UI shell
// talks to.
package client
