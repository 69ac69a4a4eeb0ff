package server

import "context"

// Server defines the lifecycle of the process's HTTP listener.
type Server interface {
	// Run binds the listener and serves until ctx is cancelled, a stop
	// signal arrives or serving fails. It shuts the listener down before
	// returning.
	Run(ctx context.Context) error

	// Addr returns the bound address once Run has started listening, or ""
	// before that.
	Addr() string
}
