package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-mission-sync/models"
)

type session struct {
	now func() time.Time

	mu        sync.RWMutex
	token     *models.Token
	listeners []func(authenticated bool)
}

// NewSession returns an empty (unauthenticated) session.
func NewSession() SessionService {
	return &session{now: time.Now}
}

func (s *session) SetToken(raw string) error {
	token, err := models.ParseToken(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if token.Expired(s.now()) {
		return ErrTokenIsExpired
	}

	s.mu.Lock()
	s.token = token
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(true)
	}
	return nil
}

func (s *session) Clear() {
	s.mu.Lock()
	s.token = nil
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(false)
	}
}

// Authenticated is re-evaluated on every call, so a token that expires
// while the agent runs turns cloud sync off without a session change.
func (s *session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != nil && !s.token.Expired(s.now())
}

func (s *session) OwnerID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil || s.token.Expired(s.now()) {
		return "", false
	}
	return s.token.OwnerID(), true
}

func (s *session) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
