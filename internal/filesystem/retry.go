package filesystem

import (
	"errors"
	"os"
	"syscall"
	"time"

	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
)

// RetryConfig configures retry behavior for filesystem operations
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns sensible defaults for NFS retry behavior
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
	}
}

// isNFSStaleError checks if an error is an NFS stale file handle error
func isNFSStaleError(err error) bool {
	if err == nil {
		return false
	}

	// ESTALE is errno 116 on Linux
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ESTALE
	}

	return false
}

// StatWithRetry performs os.Stat with retry logic for NFS stale file handle errors
func StatWithRetry(path string, config RetryConfig) (os.FileInfo, error) {
	info, err := withRetry("stat", path, config, func() (interface{}, error) {
		return os.Stat(path)
	})
	if err != nil {
		return nil, err
	}
	return info.(os.FileInfo), nil
}

// OpenWithRetry performs os.Open with retry logic for NFS stale file handle errors
func OpenWithRetry(path string, config RetryConfig) (*os.File, error) {
	file, err := withRetry("open", path, config, func() (interface{}, error) {
		return os.Open(path)
	})
	if err != nil {
		return nil, err
	}
	return file.(*os.File), nil
}

// withRetry runs op, retrying only on NFS stale file handle errors with
// exponential backoff up to config.MaxRetries.
func withRetry(name, path string, config RetryConfig, op func() (interface{}, error)) (interface{}, error) {
	var lastErr error
	backoff := config.InitialBackoff

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		result, err := op()
		if err == nil {
			if attempt > 0 {
				logging.Info("NFS %s succeeded on retry %d for %s", name, attempt, path)
				metrics.FilesystemRetrySuccess.WithLabelValues(name).Inc()
			}
			return result, nil
		}

		lastErr = err

		if !isNFSStaleError(err) {
			return nil, err
		}

		metrics.FilesystemStaleErrors.WithLabelValues(name).Inc()

		// Don't sleep after the last attempt
		if attempt < config.MaxRetries {
			metrics.FilesystemRetryAttempts.WithLabelValues(name).Inc()
			logging.Debug("NFS %s stale file handle for %s, retrying in %v (attempt %d/%d)",
				name, path, backoff, attempt+1, config.MaxRetries)
			time.Sleep(backoff)

			backoff *= 2
			if backoff > config.MaxBackoff {
				backoff = config.MaxBackoff
			}
		}
	}

	logging.Warn("NFS %s failed after %d retries for %s: %v", name, config.MaxRetries, path, lastErr)
	metrics.FilesystemRetryFailures.WithLabelValues(name).Inc()
	return nil, lastErr
}
