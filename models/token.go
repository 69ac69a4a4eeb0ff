// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the identity token issued to the field device.
//
// The agent never verifies the signature itself: the cloud document store
// is the party that trusts the token. The agent only reads the subject to
// stamp ownerId on uploaded documents and the expiry to decide whether cloud
// sync may run.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS form as received from the identity
	// provider.
	SignedString string `json:"-"`
}

// ParseToken decodes the claims of raw without verifying its signature.
func ParseToken(raw string) (*Token, error) {
	token := &Token{SignedString: raw}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &token.RegisteredClaims); err != nil {
		return nil, fmt.Errorf("error parsing session token: %w", err)
	}
	if token.Subject == "" {
		return nil, fmt.Errorf("session token has no subject")
	}
	return token, nil
}

// OwnerID returns the authenticated user identifier (the "sub" claim).
func (t *Token) OwnerID() string {
	return t.Subject
}

// Expired reports whether the token carries an expiry that is not after now.
// A token without expiry never expires.
func (t *Token) Expired(now time.Time) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return !now.Before(t.ExpiresAt.Time)
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
