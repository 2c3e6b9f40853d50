// Package metrics defines the Prometheus metrics exported by the media
// catalog service: HTTP traffic, catalog database queries, crawler and
// reconciler activity, ingest/offline worker outcomes, job queue depth,
// and filesystem retry behavior.
//
// Metrics are registered with the default registry via promauto at package
// load. InitializeMetrics pre-populates known label combinations so every
// series appears on the first scrape.
package metrics
