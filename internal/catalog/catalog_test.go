package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("failed to close catalog: %v", err)
		}
	})
	return c
}

func testLibrary(t *testing.T, c *Catalog, typ LibraryType, paths ...string) *Library {
	t.Helper()

	lib, err := c.CreateLibrary(context.Background(), Library{
		OwnerID:     "user-1",
		Name:        "test library",
		Type:        typ,
		ImportPaths: paths,
		IsVisible:   true,
	})
	if err != nil {
		t.Fatalf("failed to create library: %v", err)
	}
	return lib
}

func TestCreateAndGetLibrary(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	lib := testLibrary(t, c, TypeImport, "/media/photos", "/media/videos")

	got, err := c.GetLibrary(context.Background(), lib.ID)
	if err != nil {
		t.Fatalf("GetLibrary failed: %v", err)
	}
	if got.Type != TypeImport {
		t.Errorf("Type = %q, want %q", got.Type, TypeImport)
	}
	if len(got.ImportPaths) != 2 || got.ImportPaths[0] != "/media/photos" {
		t.Errorf("ImportPaths = %v, want [/media/photos /media/videos]", got.ImportPaths)
	}
	if got.OwnerID != "user-1" {
		t.Errorf("OwnerID = %q, want user-1", got.OwnerID)
	}
}

func TestGetLibraryNotFound(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	_, err := c.GetLibrary(context.Background(), "no-such-library")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateLibraryInvalidType(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	_, err := c.CreateLibrary(context.Background(), Library{OwnerID: "u", Name: "bad", Type: "MYSTERY"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for unknown type, got %v", err)
	}
}

func TestUploadLibraryRejectsImportPaths(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	_, err := c.CreateLibrary(context.Background(), Library{
		OwnerID: "u", Name: "uploads", Type: TypeUpload, ImportPaths: []string{"/media"},
	})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}

	lib := testLibrary(t, c, TypeUpload)
	_, err = c.SetImportPaths(context.Background(), lib.ID, []string{"/media"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("SetImportPaths on UPLOAD library: expected ErrInvalidRequest, got %v", err)
	}
}

func TestSetImportPaths(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	lib := testLibrary(t, c, TypeImport, "/old")

	updated, err := c.SetImportPaths(context.Background(), lib.ID, []string{"/new/a", "/new/b"})
	if err != nil {
		t.Fatalf("SetImportPaths failed: %v", err)
	}
	if len(updated.ImportPaths) != 2 || updated.ImportPaths[1] != "/new/b" {
		t.Errorf("ImportPaths = %v, want [/new/a /new/b]", updated.ImportPaths)
	}
}

func testAsset(libID, path string) Asset {
	now := time.Now().Truncate(time.Second)
	return Asset{
		OwnerID:        "user-1",
		LibraryID:      libID,
		DeviceAssetID:  "a.jpg-100",
		OriginalPath:   path,
		Checksum:       []byte{0xde, 0xad, 0xbe, 0xef},
		Type:           AssetTypeImage,
		FileCreatedAt:  now,
		FileModifiedAt: now,
		IsReadOnly:     true,
	}
}

func TestAssetRoundTrip(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)
	lib := testLibrary(t, c, TypeImport, "/media")

	created, err := c.CreateAsset(context.Background(), testAsset(lib.ID, "/media/a.jpg"))
	if err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated asset ID")
	}
	if !created.IsReadOnly {
		t.Error("expected IsReadOnly to persist")
	}
	if created.IsOffline {
		t.Error("new asset should not be offline")
	}

	got, err := c.GetAssetByLibraryAndPath(context.Background(), lib.ID, "/media/a.jpg")
	if err != nil {
		t.Fatalf("GetAssetByLibraryAndPath failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected asset, got nil")
	}
	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}
	if string(got.Checksum) != string(created.Checksum) {
		t.Errorf("Checksum = %x, want %x", got.Checksum, created.Checksum)
	}
}

func TestGetAssetByLibraryAndPathAbsent(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)
	lib := testLibrary(t, c, TypeImport, "/media")

	got, err := c.GetAssetByLibraryAndPath(context.Background(), lib.ID, "/media/never-seen.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown path, got %+v", got)
	}
}

func TestDuplicatePathRejected(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)
	lib := testLibrary(t, c, TypeImport, "/media")

	if _, err := c.CreateAsset(context.Background(), testAsset(lib.ID, "/media/a.jpg")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := c.CreateAsset(context.Background(), testAsset(lib.ID, "/media/a.jpg")); err == nil {
		t.Error("expected unique constraint violation for duplicate (library, path)")
	}
}

func TestUpdateAssetPartial(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)
	lib := testLibrary(t, c, TypeImport, "/media")

	created, err := c.CreateAsset(context.Background(), testAsset(lib.ID, "/media/a.jpg"))
	if err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}

	offline := true
	updated, err := c.UpdateAsset(context.Background(), created.ID, AssetUpdate{IsOffline: &offline})
	if err != nil {
		t.Fatalf("UpdateAsset failed: %v", err)
	}
	if !updated.IsOffline {
		t.Error("expected IsOffline=true after update")
	}
	// Untouched fields survive a partial update.
	if string(updated.Checksum) != string(created.Checksum) {
		t.Errorf("Checksum changed by unrelated update: %x != %x", updated.Checksum, created.Checksum)
	}

	newMod := time.Now().Add(time.Hour).Truncate(time.Second)
	checksum := []byte{0x01, 0x02}
	updated, err = c.UpdateAsset(context.Background(), created.ID, AssetUpdate{
		Checksum:       checksum,
		FileModifiedAt: &newMod,
	})
	if err != nil {
		t.Fatalf("UpdateAsset failed: %v", err)
	}
	if !updated.FileModifiedAt.Equal(newMod) {
		t.Errorf("FileModifiedAt = %v, want %v", updated.FileModifiedAt, newMod)
	}
	if string(updated.Checksum) != string(checksum) {
		t.Errorf("Checksum = %x, want %x", updated.Checksum, checksum)
	}
	if !updated.IsOffline {
		t.Error("IsOffline cleared by unrelated update")
	}
}

func TestUpdateAssetNotFound(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	offline := true
	_, err := c.UpdateAsset(context.Background(), "missing-id", AssetUpdate{IsOffline: &offline})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAsset(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)
	lib := testLibrary(t, c, TypeImport, "/media")

	created, err := c.CreateAsset(context.Background(), testAsset(lib.ID, "/media/a.jpg"))
	if err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}

	if err := c.DeleteAsset(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteAsset failed: %v", err)
	}

	got, err := c.GetAssetByLibraryAndPath(context.Background(), lib.ID, "/media/a.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("asset still present after delete")
	}

	if err := c.DeleteAsset(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestGetAssetsByLibrary(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)
	lib1 := testLibrary(t, c, TypeImport, "/media")
	lib2 := testLibrary(t, c, TypeImport, "/other")

	for _, path := range []string{"/media/a.jpg", "/media/b.jpg"} {
		if _, err := c.CreateAsset(context.Background(), testAsset(lib1.ID, path)); err != nil {
			t.Fatalf("CreateAsset(%s) failed: %v", path, err)
		}
	}
	if _, err := c.CreateAsset(context.Background(), testAsset(lib2.ID, "/other/c.jpg")); err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}

	assets, err := c.GetAssetsByLibrary(context.Background(), lib1.ID)
	if err != nil {
		t.Fatalf("GetAssetsByLibrary failed: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(assets))
	}

	both, err := c.GetAssetsByLibrary(context.Background(), lib1.ID, lib2.ID)
	if err != nil {
		t.Fatalf("GetAssetsByLibrary failed: %v", err)
	}
	if len(both) != 3 {
		t.Errorf("got %d assets across libraries, want 3", len(both))
	}

	none, err := c.GetAssetsByLibrary(context.Background())
	if err != nil {
		t.Fatalf("GetAssetsByLibrary with no IDs failed: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for empty ID list, got %v", none)
	}
}

func TestGetStats(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)
	lib := testLibrary(t, c, TypeImport, "/media")

	offline := testAsset(lib.ID, "/media/gone.jpg")
	offline.IsOffline = true
	if _, err := c.CreateAsset(context.Background(), offline); err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}
	if _, err := c.CreateAsset(context.Background(), testAsset(lib.ID, "/media/a.jpg")); err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}

	stats, err := c.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Libraries != 1 || stats.Assets != 2 || stats.OfflineAssets != 1 {
		t.Errorf("stats = %+v, want {1 2 1}", stats)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
