// Package mediatypes provides MIME classification for library media files.
//
// Classification is extension-based and split into two tiers: a cheap
// allow-list predicate used by the crawler to filter the filesystem walk,
// and the authoritative Classifier lookup used by the ingest worker before
// an asset record is created.
//
// Supported file types:
//   - Images: jpg, jpeg, png, gif, bmp, webp, tiff, heic, heif, avif, dng
//   - Videos: mp4, mkv, avi, mov, wmv, flv, webm, m4v, mpeg, mpg, 3gp, ts
//   - Audio: mp3, flac, wav, ogg, m4a, aac, opus, wma
package mediatypes
