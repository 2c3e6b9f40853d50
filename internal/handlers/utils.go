package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"media-catalog/internal/catalog"
	"media-catalog/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// writeCatalogError maps catalog sentinel errors to HTTP status codes.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrInvalidRequest):
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logging.Error("request failed: %v", err)
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

// decodeJSONBody decodes the request body into v, rejecting unknown fields.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
