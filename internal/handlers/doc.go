// Package handlers implements the HTTP API: library management, refresh
// triggering, health probes, version, and catalog stats.
package handlers
