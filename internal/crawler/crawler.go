package crawler

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"media-catalog/internal/logging"
	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"
)

// Crawler discovers supported media files under a set of root directories.
// It retains no state between calls; each Crawl is a pure function of the
// filesystem at call time.
type Crawler struct {
	// concurrency bounds how many roots are walked in parallel.
	concurrency int
	// skipHidden skips files and directories starting with "."
	skipHidden bool
}

// New creates a Crawler. concurrency <= 1 walks roots sequentially.
func New(concurrency int) *Crawler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Crawler{
		concurrency: concurrency,
		skipHidden:  true,
	}
}

// Crawl walks every root recursively and calls fn once per supported media
// file. Unsupported files and directories are skipped silently. Unreadable
// subtrees are skipped without failing the walk; only fn errors and context
// cancellation abort the crawl.
//
// Output order is not stable across calls: roots are walked concurrently,
// so callers must compare results with set semantics.
func (c *Crawler) Crawl(ctx context.Context, roots []string, fn func(path string) error) error {
	start := time.Now()
	defer func() {
		metrics.CrawlerDuration.Observe(time.Since(start).Seconds())
	}()

	// fn is called from concurrent root walks; serialize for the caller.
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, root := range roots {
		root := filepath.Clean(root)
		g.Go(func() error {
			return c.walkRoot(ctx, root, func(path string) error {
				mu.Lock()
				defer mu.Unlock()
				return fn(path)
			})
		})
	}

	return g.Wait()
}

// CollectAll crawls the roots and materializes the result as a path set.
func (c *Crawler) CollectAll(ctx context.Context, roots []string) (map[string]struct{}, error) {
	paths := make(map[string]struct{})
	err := c.Crawl(ctx, roots, func(path string) error {
		paths[path] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (c *Crawler) walkRoot(ctx context.Context, root string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			// Unreadable leaf or subtree: skip it, keep walking siblings.
			logging.Warn("Error accessing path %s: %v", path, err)
			metrics.CrawlerSubtreeErrors.Inc()
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if c.skipHidden && len(name) > 0 && name[0] == '.' && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !mediatypes.IsSupported(path) {
			metrics.CrawlerFilesSkipped.Inc()
			return nil
		}

		metrics.CrawlerFilesDiscovered.Inc()
		return fn(path)
	})
}
