// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks records entering the agent from the UI and
// wire payloads entering the hub from peers.
//
// A Validator accepts optional field names to restrict a check to a subset
// of fields, e.g. an update only validates the payload.
package validators

import "context"

// Validator validates obj, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
