package scanner

import (
	"context"
	"fmt"
	"path/filepath"

	"media-catalog/internal/catalog"
	"media-catalog/internal/crawler"
	"media-catalog/internal/filesystem"
	"media-catalog/internal/jobs"
	"media-catalog/internal/mediatypes"
)

// Default concurrency for walking a library's import paths.
const defaultCrawlConcurrency = 4

// Scanner drives library reconciliation: it diffs the filesystem against
// the catalog and runs the per-path ingest and offline procedures.
type Scanner struct {
	catalog    *catalog.Catalog
	queue      jobs.Queue
	crawler    *crawler.Crawler
	classifier mediatypes.Classifier
	locks      *pathLock
	retry      filesystem.RetryConfig
}

// New creates a Scanner using the default extension classifier and NFS
// retry policy.
func New(cat *catalog.Catalog, queue jobs.Queue) *Scanner {
	return &Scanner{
		catalog:    cat,
		queue:      queue,
		crawler:    crawler.New(defaultCrawlConcurrency),
		classifier: mediatypes.Extension{},
		locks:      newPathLock(),
		retry:      filesystem.DefaultRetryConfig(),
	}
}

// SetClassifier replaces the MIME classifier.
func (s *Scanner) SetClassifier(c mediatypes.Classifier) {
	s.classifier = c
}

// SetRetryConfig replaces the filesystem retry policy.
func (s *Scanner) SetRetryConfig(cfg filesystem.RetryConfig) {
	s.retry = cfg
}

// Register wires the scanner's workers into the broker as job handlers.
func (s *Scanner) Register(b *jobs.Broker) {
	b.Handle(jobs.RefreshLibraryFile, func(ctx context.Context, payload interface{}) error {
		job, ok := payload.(jobs.LibraryFileJob)
		if !ok {
			return fmt.Errorf("%w: unexpected payload type %T for %s", ErrUnprocessable, payload, jobs.RefreshLibraryFile)
		}
		_, err := s.Ingest(ctx, job)
		return err
	})
	b.Handle(jobs.OfflineLibraryFile, func(ctx context.Context, payload interface{}) error {
		job, ok := payload.(jobs.LibraryFileJob)
		if !ok {
			return fmt.Errorf("%w: unexpected payload type %T for %s", ErrUnprocessable, payload, jobs.OfflineLibraryFile)
		}
		_, err := s.MarkOffline(ctx, job)
		return err
	})
}

// normalizePath converts a path into its canonical comparison form so
// equivalent paths compare equal regardless of separators or relative
// segments. Crawl output and stored originalPath go through the same
// normalization before any set comparison.
func normalizePath(path string) string {
	return filepath.Clean(path)
}
