// Package server runs an HTTP handler until the process is asked to stop.
//
// Both binaries use it: the hub serves the LAN protocol and the field agent
// serves its loopback control API. Run listens for SIGTERM, SIGINT and
// SIGQUIT and shuts the listener down gracefully.
package server
