// Package http implements the two HTTP surfaces of the system.
//
// The hub router serves the LAN sync protocol (/ping, /sync/push,
// /sync/pull) and the Prometheus endpoint. Bodies are optionally signed with
// an HMAC-SHA256 HashSHA256 header in both directions.
//
// The control router is the agent's loopback API driven by the UI shell:
// status, forced cycles, lifecycle events, session changes, record writes
// and gated deletes.
package http
