package scanner

import (
	"context"
	"fmt"
	"time"

	"media-catalog/internal/catalog"
	"media-catalog/internal/jobs"
	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
)

// Reconcile diffs a library's import paths against its cataloged assets
// and emits one job per divergent path: a refresh job for every path seen
// on disk and an offline job for every cataloged path the crawl did not
// find. A path present in both sets only gets a refresh job; "seen on
// disk" always wins over "missing".
//
// Any crawl or catalog fetch failure aborts the pass before a single job
// is emitted, since the diff would be computed against inconsistent state.
func (s *Scanner) Reconcile(ctx context.Context, libraryID string, forceRefresh, emptyTrash bool) error {
	start := time.Now()

	lib, err := s.catalog.GetLibrary(ctx, libraryID)
	if err != nil {
		metrics.ReconcileRunsTotal.WithLabelValues("error").Inc()
		return err
	}
	if lib.Type != catalog.TypeImport {
		metrics.ReconcileRunsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: cannot refresh %s library %s", catalog.ErrInvalidRequest, lib.Type, libraryID)
	}

	logging.Info("Reconciling library %s (%d import paths, forceRefresh=%v, emptyTrash=%v)",
		libraryID, len(lib.ImportPaths), forceRefresh, emptyTrash)

	crawled, err := s.crawler.CollectAll(ctx, lib.ImportPaths)
	if err != nil {
		metrics.ReconcileRunsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("crawl failed for library %s: %w", libraryID, err)
	}

	onDisk := make(map[string]struct{}, len(crawled))
	for path := range crawled {
		onDisk[normalizePath(path)] = struct{}{}
	}

	assets, err := s.catalog.GetAssetsByLibrary(ctx, libraryID)
	if err != nil {
		metrics.ReconcileRunsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("asset fetch failed for library %s: %w", libraryID, err)
	}

	var refreshed, offlined int

	for path := range onDisk {
		err := s.queue.Enqueue(ctx, jobs.RefreshLibraryFile, jobs.LibraryFileJob{
			LibraryID:    libraryID,
			OwnerID:      lib.OwnerID,
			AssetPath:    path,
			ForceRefresh: forceRefresh,
			EmptyTrash:   emptyTrash,
		})
		if err != nil {
			metrics.ReconcileRunsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("failed to enqueue refresh job for %s: %w", path, err)
		}
		refreshed++
	}

	for _, asset := range assets {
		path := normalizePath(asset.OriginalPath)
		if _, seen := onDisk[path]; seen {
			continue
		}
		err := s.queue.Enqueue(ctx, jobs.OfflineLibraryFile, jobs.LibraryFileJob{
			LibraryID:  libraryID,
			OwnerID:    lib.OwnerID,
			AssetPath:  path,
			EmptyTrash: emptyTrash,
		})
		if err != nil {
			metrics.ReconcileRunsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("failed to enqueue offline job for %s: %w", path, err)
		}
		offlined++
	}

	metrics.ReconcileRunsTotal.WithLabelValues("success").Inc()
	metrics.ReconcileJobsEmitted.WithLabelValues("refresh").Add(float64(refreshed))
	metrics.ReconcileJobsEmitted.WithLabelValues("offline").Add(float64(offlined))
	metrics.ReconcileLastRunTimestamp.Set(float64(time.Now().Unix()))

	logging.Info("Reconcile complete for library %s: %d refresh, %d offline jobs in %v",
		libraryID, refreshed, offlined, time.Since(start))

	return nil
}
