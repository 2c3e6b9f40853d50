package jobs

import "context"

// Name identifies a job type on the queue.
type Name string

const (
	// RefreshLibraryFile asks the ingest worker to (re)evaluate one path.
	RefreshLibraryFile Name = "REFRESH_LIBRARY_FILE"
	// OfflineLibraryFile asks the offline worker to mark or delete one path.
	OfflineLibraryFile Name = "OFFLINE_LIBRARY_FILE"
	// MetadataExtraction is produced for the downstream metadata pipeline.
	MetadataExtraction Name = "METADATA_EXTRACTION"
	// VideoConversion is produced for the downstream transcoding pipeline.
	VideoConversion Name = "VIDEO_CONVERSION"
)

// Queue is the enqueue side of the job transport. Delivery is
// fire-and-forget with at-least-once semantics; the pipeline never depends
// on a concrete broker.
type Queue interface {
	Enqueue(ctx context.Context, name Name, payload interface{}) error
}

// LibraryFileJob is the payload for REFRESH_LIBRARY_FILE and
// OFFLINE_LIBRARY_FILE jobs. Each job is a self-contained unit of work
// against one path.
type LibraryFileJob struct {
	LibraryID    string `json:"libraryId"`
	OwnerID      string `json:"ownerId"`
	AssetPath    string `json:"assetPath"`
	ForceRefresh bool   `json:"forceRefresh"`
	EmptyTrash   bool   `json:"emptyTrash"`
}

// AssetJob is the payload for follow-on jobs consumed by downstream
// collaborators (metadata extraction, video conversion).
type AssetJob struct {
	AssetID string `json:"assetId"`
	OwnerID string `json:"ownerId"`
}
