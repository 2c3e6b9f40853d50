// Package workers calculates worker pool sizes from available CPU,
// honoring container CPU limits via GOMAXPROCS and allowing a manual
// override through the SCAN_WORKERS environment variable.
package workers
