package service

import "errors"

var (
	// ErrNotAuthenticated is returned by cloud operations while no valid
	// session is set. No remote call is made.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSyncInProgress is returned when a cycle is requested while another
	// cycle of the same engine is still running.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrHubUnreachable means no hub answered the discovery or the
	// pre-cycle ping.
	ErrHubUnreachable = errors.New("hub unreachable")

	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrUnknownEngine         = errors.New("unknown sync engine")
	ErrUnknownLifecycleEvent = errors.New("unknown lifecycle event")
	ErrInvalidToken          = errors.New("invalid session token")
	ErrTokenIsExpired        = errors.New("token is expired")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrCloudNotConfigured    = errors.New("cloud document store is not configured")
)
