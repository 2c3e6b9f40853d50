package scanner

import (
	"context"
	"fmt"

	"media-catalog/internal/catalog"
	"media-catalog/internal/jobs"
	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
)

// MarkOffline handles an offline job for a path that was present in the
// catalog but absent from the last crawl. With EmptyTrash set the record
// is deleted outright; otherwise it is flagged offline and kept.
func (s *Scanner) MarkOffline(ctx context.Context, job jobs.LibraryFileJob) (bool, error) {
	path := normalizePath(job.AssetPath)

	unlock := s.locks.lock(job.LibraryID, path)
	defer unlock()

	asset, err := s.catalog.GetAssetByLibraryAndPath(ctx, job.LibraryID, path)
	if err != nil {
		metrics.OfflineResultsTotal.WithLabelValues("failed").Inc()
		return false, err
	}
	if asset == nil {
		metrics.OfflineResultsTotal.WithLabelValues("failed").Inc()
		return false, fmt.Errorf("%w: no asset at %s in library %s",
			catalog.ErrNotFound, path, job.LibraryID)
	}

	if job.EmptyTrash {
		if err := s.catalog.DeleteAsset(ctx, asset.ID); err != nil {
			metrics.OfflineResultsTotal.WithLabelValues("failed").Inc()
			return false, err
		}
		metrics.OfflineResultsTotal.WithLabelValues("deleted").Inc()
		logging.Info("Deleted asset %s (%s)", asset.ID, path)
		return true, nil
	}

	if !asset.IsOffline {
		offline := true
		if _, err := s.catalog.UpdateAsset(ctx, asset.ID, catalog.AssetUpdate{IsOffline: &offline}); err != nil {
			metrics.OfflineResultsTotal.WithLabelValues("failed").Inc()
			return false, err
		}
	}
	metrics.OfflineResultsTotal.WithLabelValues("marked").Inc()
	logging.Info("Marked asset %s offline (%s)", asset.ID, path)
	return true, nil
}
