package mediatypes

import (
	"path/filepath"
	"strings"
)

// MimeClass is the coarse asset classification derived from a MIME type's
// top-level class.
type MimeClass string

const (
	// ClassImage represents image assets.
	ClassImage MimeClass = "IMAGE"
	// ClassVideo represents video assets.
	ClassVideo MimeClass = "VIDEO"
	// ClassAudio represents audio assets.
	ClassAudio MimeClass = "AUDIO"
	// ClassOther represents supported assets outside the media classes.
	ClassOther MimeClass = "OTHER"
	// ClassUnsupported marks files the catalog will not ingest.
	ClassUnsupported MimeClass = "UNSUPPORTED"
)

// Classifier resolves a filesystem path to a MIME type and coarse class.
// The ingest worker accepts any implementation so classification stays
// pluggable; Extension is the default.
type Classifier interface {
	Classify(path string) (mimeType string, class MimeClass)
}

// ImageMimeTypes maps image file extensions to their MIME types.
var ImageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",
	".dng":  "image/x-adobe-dng",
}

// VideoMimeTypes maps video file extensions to their MIME types.
var VideoMimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",
}

// AudioMimeTypes maps audio file extensions to their MIME types.
var AudioMimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".opus": "audio/opus",
	".wma":  "audio/x-ms-wma",
}

// Extension classifies paths by file extension. The zero value is usable.
type Extension struct{}

// Classify returns the MIME type and coarse class for a path. An empty MIME
// type with ClassUnsupported means the file cannot be classified at all.
func (Extension) Classify(path string) (string, MimeClass) {
	ext := strings.ToLower(filepath.Ext(path))
	if mime, ok := ImageMimeTypes[ext]; ok {
		return mime, ClassImage
	}
	if mime, ok := VideoMimeTypes[ext]; ok {
		return mime, ClassVideo
	}
	if mime, ok := AudioMimeTypes[ext]; ok {
		return mime, ClassAudio
	}
	return "", ClassUnsupported
}

// ClassFromMime derives the coarse class from a MIME type's top-level class.
// Unknown top-level classes map to ClassOther.
func ClassFromMime(mimeType string) MimeClass {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return ClassImage
	case strings.HasPrefix(mimeType, "video/"):
		return ClassVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return ClassAudio
	default:
		return ClassOther
	}
}

// IsSupported reports whether the path matches the supported-media
// allow-list. This is the crawler's cheap filter; the ingest worker repeats
// the check authoritatively before creating an asset.
func IsSupported(path string) bool {
	_, class := Extension{}.Classify(path)
	return class != ClassUnsupported
}
