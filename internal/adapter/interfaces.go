// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound client of the hub wire protocol.
//
// [HubAdapter] decouples the hub transport and discovery from HTTP. Every
// call takes the hub address explicitly because discovery may adopt a
// different peer between cycles.
//
// Non-2xx answers are mapped by mapHTTPError onto the sentinel errors of
// errors.go so callers can use [errors.Is] (e.g. [ErrBadRequest] for 400).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mission-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/hub_adapter_mock.go -package=mock

// HubAdapter talks to one hub peer.
type HubAdapter interface {
	// Ping calls GET /ping on address. Callers bound it with a context
	// deadline; a timeout is an ordinary error.
	Ping(ctx context.Context, address string) (models.PingResponse, error)

	// Push sends a whole local snapshot to POST /sync/push in one request.
	Push(ctx context.Context, address string, req models.HubPushRequest) (models.HubPushResponse, error)

	// Pull fetches every record the hub received after since from
	// GET /sync/pull. The response timestamp is the next cursor.
	Pull(ctx context.Context, address string, since time.Time) (models.HubPullResponse, error)
}
