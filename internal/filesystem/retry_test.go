package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

func fastConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}
}

func TestStatWithRetrySuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := StatWithRetry(path, fastConfig())
	if err != nil {
		t.Fatalf("StatWithRetry failed: %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("Size = %d, want 4", info.Size())
	}
}

func TestStatWithRetryNotExistNoRetry(t *testing.T) {
	t.Parallel()

	start := time.Now()
	_, err := StatWithRetry(filepath.Join(t.TempDir(), "missing.jpg"), fastConfig())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
	// Non-stale errors must fail immediately, without backoff sleeps.
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("non-stale error took %v, expected immediate failure", elapsed)
	}
}

func TestOpenWithRetry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "b.mp4")
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenWithRetry(path, fastConfig())
	if err != nil {
		t.Fatalf("OpenWithRetry failed: %v", err)
	}
	defer f.Close()

	buf := make([]byte, 5)
	if _, err := f.Read(buf); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(buf) != "video" {
		t.Errorf("read %q, want %q", buf, "video")
	}
}

func TestIsNFSStaleError(t *testing.T) {
	t.Parallel()

	if !isNFSStaleError(syscall.ESTALE) {
		t.Error("ESTALE should be detected as stale")
	}
	if !isNFSStaleError(&os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}) {
		t.Error("wrapped ESTALE should be detected as stale")
	}
	if isNFSStaleError(syscall.ENOENT) {
		t.Error("ENOENT should not be detected as stale")
	}
	if isNFSStaleError(nil) {
		t.Error("nil should not be detected as stale")
	}
}
