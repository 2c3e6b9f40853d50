package scanner

import (
	"errors"

	"media-catalog/internal/catalog"
)

// ErrUnprocessable marks an asset whose MIME type cannot be determined or
// is outside the supported allow-list. The job fails permanently; other
// jobs are unaffected.
var ErrUnprocessable = errors.New("unprocessable asset")

// IsPermanent reports whether a job error is permanent and must not be
// retried. Everything else is treated as transient by the caller's retry
// policy.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrUnprocessable) ||
		errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, catalog.ErrInvalidRequest)
}
