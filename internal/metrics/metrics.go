package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Catalog database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_db_queries_total",
			Help: "Total number of catalog database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_db_query_duration_seconds",
			Help:    "Catalog database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_db_connections_open",
			Help: "Number of open catalog database connections",
		},
	)
)

// Crawler metrics
var (
	CrawlerFilesDiscovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_catalog_crawler_files_discovered_total",
			Help: "Total number of supported media files discovered by crawls",
		},
	)

	CrawlerFilesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_catalog_crawler_files_skipped_total",
			Help: "Total number of unsupported files skipped by crawls",
		},
	)

	CrawlerSubtreeErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_catalog_crawler_subtree_errors_total",
			Help: "Total number of unreadable subtrees skipped during crawls",
		},
	)

	CrawlerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_catalog_crawler_duration_seconds",
			Help:    "Duration of full crawls in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300, 900},
		},
	)
)

// Reconciler metrics
var (
	ReconcileRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_reconcile_runs_total",
			Help: "Total number of library reconciliation passes",
		},
		[]string{"status"},
	)

	ReconcileJobsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_reconcile_jobs_emitted_total",
			Help: "Jobs emitted per reconciliation pass by kind",
		},
		[]string{"kind"}, // "refresh", "offline"
	)

	ReconcileLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_reconcile_last_run_timestamp",
			Help: "Timestamp of the last reconciliation pass",
		},
	)
)

// Worker metrics
var (
	IngestResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_ingest_results_total",
			Help: "Ingest job outcomes by disposition",
		},
		[]string{"result"}, // "imported", "reimported", "skipped", "offlined", "failed"
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_catalog_ingest_duration_seconds",
			Help:    "Duration of ingest jobs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	OfflineResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_offline_results_total",
			Help: "Offline job outcomes by disposition",
		},
		[]string{"result"}, // "marked", "deleted", "failed"
	)

	ChecksumBytesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_catalog_checksum_bytes_read_total",
			Help: "Total bytes read while computing asset checksums",
		},
	)
)

// Job queue metrics
var (
	QueueJobsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_queue_jobs_enqueued_total",
			Help: "Total jobs enqueued by job name",
		},
		[]string{"job"},
	)

	QueueJobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_queue_jobs_processed_total",
			Help: "Total jobs processed by job name and status",
		},
		[]string{"job", "status"},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_queue_depth",
			Help: "Number of jobs buffered in the in-process queue",
		},
	)

	QueueWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_queue_workers",
			Help: "Number of job workers in the pool",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_fs_retry_attempts_total",
			Help: "Filesystem operation retry attempts",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_fs_retry_success_total",
			Help: "Filesystem operations that succeeded after retry",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_fs_retry_failures_total",
			Help: "Filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_fs_stale_errors_total",
			Help: "NFS stale file handle errors observed",
		},
		[]string{"operation"},
	)
)
