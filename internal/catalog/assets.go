package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const assetColumns = `id, owner_id, library_id, device_asset_id, original_path, checksum,
	type, file_created_at, file_modified_at, is_offline, sidecar_path, is_read_only,
	created_at, updated_at`

func scanAsset(row interface{ Scan(...interface{}) error }) (*Asset, error) {
	var (
		a              Asset
		fileCreatedAt  int64
		fileModifiedAt int64
		createdAt      int64
		updatedAt      int64
	)

	err := row.Scan(
		&a.ID, &a.OwnerID, &a.LibraryID, &a.DeviceAssetID, &a.OriginalPath, &a.Checksum,
		&a.Type, &fileCreatedAt, &fileModifiedAt, &a.IsOffline, &a.SidecarPath, &a.IsReadOnly,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.FileCreatedAt = time.Unix(fileCreatedAt, 0)
	a.FileModifiedAt = time.Unix(fileModifiedAt, 0)
	a.CreatedAt = time.Unix(createdAt, 0)
	a.UpdatedAt = time.Unix(updatedAt, 0)
	return &a, nil
}

// CreateAsset inserts a new asset record and returns it. The ID is
// generated if empty. A second live asset for the same (library, path)
// violates the unique index and fails.
func (c *Catalog) CreateAsset(ctx context.Context, asset Asset) (*Asset, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_asset", start, err) }()

	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO assets (
			id, owner_id, library_id, device_asset_id, original_path, checksum,
			type, file_created_at, file_modified_at, is_offline, sidecar_path, is_read_only
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		asset.ID, asset.OwnerID, asset.LibraryID, asset.DeviceAssetID, asset.OriginalPath,
		asset.Checksum, asset.Type, asset.FileCreatedAt.Unix(), asset.FileModifiedAt.Unix(),
		asset.IsOffline, asset.SidecarPath, asset.IsReadOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset for %s: %w", asset.OriginalPath, err)
	}

	return c.GetAsset(ctx, asset.ID)
}

// GetAsset retrieves an asset by ID. Returns ErrNotFound if absent.
func (c *Catalog) GetAsset(ctx context.Context, id string) (*Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := c.db.QueryRowContext(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE id = ?", id)

	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: asset %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

// GetAssetByLibraryAndPath retrieves the asset for a path within a library.
// Returns nil (no error) when the path has never been ingested; the ingest
// decision table treats absence as a normal state, not a failure.
func (c *Catalog) GetAssetByLibraryAndPath(ctx context.Context, libraryID, path string) (*Asset, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_asset_by_path", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := c.db.QueryRowContext(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE library_id = ? AND original_path = ?",
		libraryID, path)

	asset, scanErr := scanAsset(row)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return nil, nil
	}
	if scanErr != nil {
		err = fmt.Errorf("failed to get asset by path: %w", scanErr)
		return nil, err
	}
	return asset, nil
}

// GetAssetsByLibrary returns all assets belonging to the given libraries.
func (c *Catalog) GetAssetsByLibrary(ctx context.Context, libraryIDs ...string) ([]Asset, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_assets_by_library", start, err) }()

	if len(libraryIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(libraryIDs)), ",")
	args := make([]interface{}, len(libraryIDs))
	for i, id := range libraryIDs {
		args[i] = id
	}

	rows, err := c.db.QueryContext(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE library_id IN ("+placeholders+") ORDER BY original_path",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		asset, scanErr := scanAsset(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan asset row: %w", scanErr)
			return nil, err
		}
		assets = append(assets, *asset)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("asset row iteration failed: %w", err)
	}

	return assets, nil
}

// UpdateAsset applies a partial update and returns the updated record.
// Returns ErrNotFound if the asset does not exist.
func (c *Catalog) UpdateAsset(ctx context.Context, id string, update AssetUpdate) (*Asset, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("update_asset", start, err) }()

	var (
		sets []string
		args []interface{}
	)

	if update.Checksum != nil {
		sets = append(sets, "checksum = ?")
		args = append(args, update.Checksum)
	}
	if update.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *update.Type)
	}
	if update.FileCreatedAt != nil {
		sets = append(sets, "file_created_at = ?")
		args = append(args, update.FileCreatedAt.Unix())
	}
	if update.FileModifiedAt != nil {
		sets = append(sets, "file_modified_at = ?")
		args = append(args, update.FileModifiedAt.Unix())
	}
	if update.IsOffline != nil {
		sets = append(sets, "is_offline = ?")
		args = append(args, *update.IsOffline)
	}
	if update.SidecarPath != nil {
		sets = append(sets, "sidecar_path = ?")
		args = append(args, *update.SidecarPath)
	}
	if update.DeviceAssetID != nil {
		sets = append(sets, "device_asset_id = ?")
		args = append(args, *update.DeviceAssetID)
	}

	if len(sets) == 0 {
		return c.GetAsset(ctx, id)
	}

	sets = append(sets, "updated_at = strftime('%s', 'now')")
	args = append(args, id)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := c.db.ExecContext(ctx,
		"UPDATE assets SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update asset %s: %w", id, err)
	}

	if rows, raErr := result.RowsAffected(); raErr == nil && rows == 0 {
		err = fmt.Errorf("%w: asset %s", ErrNotFound, id)
		return nil, err
	}

	return c.GetAsset(ctx, id)
}

// DeleteAsset permanently removes an asset record. Returns ErrNotFound if
// the asset does not exist.
func (c *Catalog) DeleteAsset(ctx context.Context, id string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_asset", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := c.db.ExecContext(ctx, "DELETE FROM assets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		err = fmt.Errorf("%w: asset %s", ErrNotFound, id)
		return err
	}

	return nil
}
