package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Reconciler ---
	for _, status := range []string{"success", "error", "rejected"} {
		ReconcileRunsTotal.WithLabelValues(status)
	}
	for _, kind := range []string{"refresh", "offline"} {
		ReconcileJobsEmitted.WithLabelValues(kind)
	}

	// --- Workers ---
	for _, result := range []string{"imported", "reimported", "skipped", "offlined", "failed"} {
		IngestResultsTotal.WithLabelValues(result)
	}
	for _, result := range []string{"marked", "deleted", "failed"} {
		OfflineResultsTotal.WithLabelValues(result)
	}

	// --- Job queue ---
	jobNames := []string{
		"REFRESH_LIBRARY_FILE", "OFFLINE_LIBRARY_FILE",
		"METADATA_EXTRACTION", "VIDEO_CONVERSION",
	}
	for _, job := range jobNames {
		QueueJobsEnqueued.WithLabelValues(job)
		for _, status := range []string{"handled", "failed", "dropped"} {
			QueueJobsProcessed.WithLabelValues(job, status)
		}
	}

	// --- Catalog DB ---
	dbOps := []string{
		"initialize_schema", "create_library", "get_library", "set_import_paths",
		"get_assets_by_library", "get_asset_by_path", "create_asset",
		"update_asset", "delete_asset",
	}
	for _, op := range dbOps {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}

	// --- Filesystem retries ---
	for _, op := range []string{"stat", "open"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
	}
}
