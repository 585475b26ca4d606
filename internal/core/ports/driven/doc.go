// Package driven defines the outbound ports of the core: interfaces the
// services depend on, implemented by adapters (OS keyring, Plug HTTP API,
// SQLite history store).
package driven
