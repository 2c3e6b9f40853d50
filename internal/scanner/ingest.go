package scanner

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"media-catalog/internal/catalog"
	"media-catalog/internal/filesystem"
	"media-catalog/internal/jobs"
	"media-catalog/internal/logging"
	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"
)

// Ingest runs the per-path decision procedure for a refresh job. The
// returned bool is true when the job was handled and no further action is
// needed; a non-nil error means the job failed (permanently if IsPermanent
// reports so).
//
// The decision sequence, holding the per-path lock throughout:
//  1. stat failure with no catalog record: permanent failure
//  2. stat failure with a record: mark the asset offline, handled
//  3. stat success with an offline record: clear the flag first
//  4. import when forceRefresh is set, the path is unknown, or the stored
//     mtime differs from the file's; otherwise handled with no work
func (s *Scanner) Ingest(ctx context.Context, job jobs.LibraryFileJob) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.IngestDuration.Observe(time.Since(start).Seconds())
	}()

	path := normalizePath(job.AssetPath)

	unlock := s.locks.lock(job.LibraryID, path)
	defer unlock()

	asset, err := s.catalog.GetAssetByLibraryAndPath(ctx, job.LibraryID, path)
	if err != nil {
		metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
		return false, err
	}

	info, statErr := filesystem.StatWithRetry(path, s.retry)
	if statErr != nil {
		if asset == nil {
			metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
			return false, fmt.Errorf("%w: %s is unreadable and has no catalog record: %v",
				catalog.ErrNotFound, path, statErr)
		}

		// The designed recovery path: file vanished, record survives.
		if !asset.IsOffline {
			offline := true
			if _, err := s.catalog.UpdateAsset(ctx, asset.ID, catalog.AssetUpdate{IsOffline: &offline}); err != nil {
				metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
				return false, err
			}
			logging.Info("Marked asset offline: %s (stat: %v)", path, statErr)
		}
		metrics.IngestResultsTotal.WithLabelValues("offlined").Inc()
		return true, nil
	}

	if asset != nil && asset.IsOffline {
		// File has returned; clear the flag before any re-import decision.
		offline := false
		asset, err = s.catalog.UpdateAsset(ctx, asset.ID, catalog.AssetUpdate{IsOffline: &offline})
		if err != nil {
			metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
			return false, err
		}
		logging.Info("Asset back online: %s", path)
	}

	switch {
	case job.ForceRefresh:
	case asset == nil:
	case asset.FileModifiedAt.Unix() != info.ModTime().Unix():
	default:
		metrics.IngestResultsTotal.WithLabelValues("skipped").Inc()
		return true, nil
	}

	return s.importFile(ctx, job, path, info, asset)
}

// importFile creates or updates the asset record for path and chains the
// follow-on processing jobs.
func (s *Scanner) importFile(ctx context.Context, job jobs.LibraryFileJob, path string, info os.FileInfo, existing *catalog.Asset) (bool, error) {
	mimeType, class := s.classifier.Classify(path)
	if mimeType == "" {
		metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
		return false, fmt.Errorf("%w: cannot determine mime type for %s", ErrUnprocessable, path)
	}
	if class == mediatypes.ClassUnsupported {
		metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
		return false, fmt.Errorf("%w: mime type %s is not supported", ErrUnprocessable, mimeType)
	}

	checksum, err := s.checksumFile(path)
	if err != nil {
		metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
		return false, fmt.Errorf("checksum failed for %s: %w", path, err)
	}

	// The stored type follows the MIME type's top-level class, not the
	// classifier's verdict; the classifier only gates supportedness.
	assetType := assetTypeForClass(mediatypes.ClassFromMime(mimeType))
	deviceAssetID := deviceAssetID(filepath.Base(path), info.Size())
	sidecarPath := detectSidecar(path)
	mtime := info.ModTime()

	var assetID string
	if existing == nil {
		created, err := s.catalog.CreateAsset(ctx, catalog.Asset{
			OwnerID:        job.OwnerID,
			LibraryID:      job.LibraryID,
			DeviceAssetID:  deviceAssetID,
			OriginalPath:   path,
			Checksum:       checksum,
			Type:           assetType,
			FileCreatedAt:  mtime,
			FileModifiedAt: mtime,
			IsOffline:      false,
			SidecarPath:    sidecarPath,
			IsReadOnly:     true,
		})
		if err != nil {
			metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
			return false, err
		}
		assetID = created.ID
		metrics.IngestResultsTotal.WithLabelValues("imported").Inc()
		logging.Info("Imported %s as asset %s (%s)", path, assetID, assetType)
	} else {
		offline := false
		updated, err := s.catalog.UpdateAsset(ctx, existing.ID, catalog.AssetUpdate{
			Checksum:       checksum,
			Type:           &assetType,
			FileModifiedAt: &mtime,
			IsOffline:      &offline,
			SidecarPath:    &sidecarPath,
			DeviceAssetID:  &deviceAssetID,
		})
		if err != nil {
			metrics.IngestResultsTotal.WithLabelValues("failed").Inc()
			return false, err
		}
		assetID = updated.ID
		metrics.IngestResultsTotal.WithLabelValues("reimported").Inc()
		logging.Info("Re-imported %s as asset %s (%s)", path, assetID, assetType)
	}

	followOn := jobs.AssetJob{AssetID: assetID, OwnerID: job.OwnerID}
	if err := s.queue.Enqueue(ctx, jobs.MetadataExtraction, followOn); err != nil {
		return false, fmt.Errorf("failed to enqueue metadata extraction for %s: %w", assetID, err)
	}
	if assetType == catalog.AssetTypeVideo {
		if err := s.queue.Enqueue(ctx, jobs.VideoConversion, followOn); err != nil {
			return false, fmt.Errorf("failed to enqueue video conversion for %s: %w", assetID, err)
		}
	}

	return true, nil
}

// checksumFile computes the SHA-1 digest of the full file contents. The
// checksum is stored metadata for future de-duplication; mtime remains the
// change signal for re-import decisions.
func (s *Scanner) checksumFile(path string) ([]byte, error) {
	f, err := filesystem.OpenWithRetry(path, s.retry)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha1.New() //nolint:gosec // de-duplication key, not a security boundary
	n, err := io.Copy(h, f)
	if err != nil {
		return nil, err
	}
	metrics.ChecksumBytesRead.Add(float64(n))

	return h.Sum(nil), nil
}

// deviceAssetID derives the stable idempotency key used by downstream
// systems: filename plus size, with all whitespace stripped.
func deviceAssetID(filename string, size int64) string {
	id := filename + "-" + strconv.FormatInt(size, 10)
	return strings.Join(strings.Fields(id), "")
}

// detectSidecar returns the path of a readable <path>.xmp sidecar, or "".
func detectSidecar(path string) string {
	sidecar := path + ".xmp"
	if info, err := os.Stat(sidecar); err == nil && info.Mode().IsRegular() {
		return sidecar
	}
	return ""
}

func assetTypeForClass(class mediatypes.MimeClass) catalog.AssetType {
	switch class {
	case mediatypes.ClassImage:
		return catalog.AssetTypeImage
	case mediatypes.ClassVideo:
		return catalog.AssetTypeVideo
	case mediatypes.ClassAudio:
		return catalog.AssetTypeAudio
	default:
		return catalog.AssetTypeOther
	}
}
