package catalog

import "time"

// LibraryType distinguishes externally-imported libraries from upload
// libraries. Only IMPORT libraries may be refreshed against the filesystem.
type LibraryType string

const (
	// TypeImport is a library backed by filesystem import paths.
	TypeImport LibraryType = "IMPORT"
	// TypeUpload is a library populated through uploads; it has no import
	// paths and is never crawled.
	TypeUpload LibraryType = "UPLOAD"
)

// AssetType is the coarse classification stored on an asset record.
type AssetType string

const (
	AssetTypeImage AssetType = "IMAGE"
	AssetTypeVideo AssetType = "VIDEO"
	AssetTypeAudio AssetType = "AUDIO"
	AssetTypeOther AssetType = "OTHER"
)

// Library is a named collection of assets owned by a user.
type Library struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"ownerId"`
	Name        string      `json:"name"`
	Type        LibraryType `json:"type"`
	ImportPaths []string    `json:"importPaths"`
	IsVisible   bool        `json:"isVisible"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Asset is one cataloged media file. At most one non-deleted asset exists
// per (LibraryID, OriginalPath).
type Asset struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	LibraryID      string    `json:"libraryId"`
	DeviceAssetID  string    `json:"deviceAssetId"`
	OriginalPath   string    `json:"originalPath"`
	Checksum       []byte    `json:"-"`
	Type           AssetType `json:"type"`
	FileCreatedAt  time.Time `json:"fileCreatedAt"`
	FileModifiedAt time.Time `json:"fileModifiedAt"`
	IsOffline      bool      `json:"isOffline"`
	SidecarPath    string    `json:"sidecarPath,omitempty"`
	IsReadOnly     bool      `json:"isReadOnly"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AssetUpdate is a partial update applied by UpdateAsset. Nil fields are
// left unchanged.
type AssetUpdate struct {
	Checksum       []byte
	Type           *AssetType
	FileCreatedAt  *time.Time
	FileModifiedAt *time.Time
	IsOffline      *bool
	SidecarPath    *string
	DeviceAssetID  *string
}
