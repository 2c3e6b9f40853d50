package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"media-catalog/internal/catalog"
	"media-catalog/internal/logging"
)

// createLibraryRequest is the body for POST /api/libraries.
type createLibraryRequest struct {
	OwnerID     string   `json:"ownerId"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	ImportPaths []string `json:"importPaths"`
	IsVisible   *bool    `json:"isVisible"`
}

// CreateLibrary registers a new library.
func (h *Handlers) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req createLibraryRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.OwnerID == "" {
		writeJSONError(w, "ownerId and name are required", http.StatusBadRequest)
		return
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	lib, err := h.catalog.CreateLibrary(r.Context(), catalog.Library{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Type:        catalog.LibraryType(req.Type),
		ImportPaths: req.ImportPaths,
		IsVisible:   visible,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, lib)
}

// GetLibrary returns a single library by ID.
func (h *Handlers) GetLibrary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	lib, err := h.catalog.GetLibrary(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, lib)
}

// setImportPathsRequest is the body for PUT /api/libraries/{id}/import-paths.
type setImportPathsRequest struct {
	ImportPaths []string `json:"importPaths"`
}

// SetImportPaths replaces a library's import paths.
func (h *Handlers) SetImportPaths(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req setImportPathsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	lib, err := h.catalog.SetImportPaths(r.Context(), id, req.ImportPaths)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, lib)
}

// refreshLibraryRequest is the body for POST /api/libraries/{id}/refresh.
// The body is optional; both flags default to false.
type refreshLibraryRequest struct {
	ForceRefresh bool `json:"forceRefresh"`
	EmptyTrash   bool `json:"emptyTrash"`
}

// RefreshLibrary starts a reconcile pass for the library. Validation runs
// synchronously so callers get 404/400 for bad targets; the pass itself
// runs in the background and the response is 202.
func (h *Handlers) RefreshLibrary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req refreshLibraryRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !decodeJSONBody(w, r, &req) {
			return
		}
	}

	lib, err := h.catalog.GetLibrary(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	if lib.Type != catalog.TypeImport {
		writeJSONError(w, "only IMPORT libraries can be refreshed", http.StatusBadRequest)
		return
	}

	// The request context dies when this handler returns; the pass gets
	// its own.
	go func() {
		if err := h.scanner.Reconcile(context.Background(), id, req.ForceRefresh, req.EmptyTrash); err != nil {
			logging.Error("Refresh of library %s failed: %v", id, err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]interface{}{
		"status":       "refresh started",
		"libraryId":    id,
		"forceRefresh": req.ForceRefresh,
		"emptyTrash":   req.EmptyTrash,
	})
}

// GetStats returns catalog record counts.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.GetStats(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, stats)
}
