package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateLibrary inserts a new library. The ID is generated if empty and
// the created record is returned.
func (c *Catalog) CreateLibrary(ctx context.Context, lib Library) (*Library, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_library", start, err) }()

	if lib.ID == "" {
		lib.ID = uuid.NewString()
	}
	if lib.Type != TypeImport && lib.Type != TypeUpload {
		err = fmt.Errorf("%w: unknown library type %q", ErrInvalidRequest, lib.Type)
		return nil, err
	}
	if lib.Type == TypeUpload && len(lib.ImportPaths) > 0 {
		err = fmt.Errorf("%w: upload libraries cannot have import paths", ErrInvalidRequest)
		return nil, err
	}

	paths, marshalErr := json.Marshal(lib.ImportPaths)
	if marshalErr != nil {
		err = fmt.Errorf("failed to encode import paths: %w", marshalErr)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO libraries (id, owner_id, name, type, import_paths, is_visible)
		VALUES (?, ?, ?, ?, ?, ?)`,
		lib.ID, lib.OwnerID, lib.Name, lib.Type, string(paths), lib.IsVisible,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create library: %w", err)
	}

	return c.GetLibrary(ctx, lib.ID)
}

// GetLibrary retrieves a library by ID. Returns ErrNotFound if it does not
// exist.
func (c *Catalog) GetLibrary(ctx context.Context, id string) (*Library, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_library", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		lib       Library
		paths     string
		createdAt int64
		updatedAt int64
	)

	err = c.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, type, import_paths, is_visible, created_at, updated_at
		FROM libraries WHERE id = ?`, id,
	).Scan(&lib.ID, &lib.OwnerID, &lib.Name, &lib.Type, &paths, &lib.IsVisible, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("%w: library %s", ErrNotFound, id)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library: %w", err)
	}

	if unmarshalErr := json.Unmarshal([]byte(paths), &lib.ImportPaths); unmarshalErr != nil {
		err = fmt.Errorf("failed to decode import paths for library %s: %w", id, unmarshalErr)
		return nil, err
	}

	lib.CreatedAt = time.Unix(createdAt, 0)
	lib.UpdatedAt = time.Unix(updatedAt, 0)
	return &lib, nil
}

// SetImportPaths replaces a library's import paths and returns the updated
// record. Only IMPORT libraries carry import paths; any other type is an
// ErrInvalidRequest.
func (c *Catalog) SetImportPaths(ctx context.Context, id string, importPaths []string) (*Library, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("set_import_paths", start, err) }()

	lib, err := c.GetLibrary(ctx, id)
	if err != nil {
		return nil, err
	}
	if lib.Type != TypeImport {
		err = fmt.Errorf("%w: cannot set import paths on %s library %s", ErrInvalidRequest, lib.Type, id)
		return nil, err
	}

	paths, marshalErr := json.Marshal(importPaths)
	if marshalErr != nil {
		err = fmt.Errorf("failed to encode import paths: %w", marshalErr)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = c.db.ExecContext(ctx, `
		UPDATE libraries
		SET import_paths = ?, updated_at = strftime('%s', 'now')
		WHERE id = ?`, string(paths), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set import paths: %w", err)
	}

	return c.GetLibrary(ctx, id)
}
