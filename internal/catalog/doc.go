// Package catalog provides SQLite persistence for library and asset
// records.
//
// It stores:
//   - Libraries: IMPORT libraries with filesystem import paths, and
//     UPLOAD libraries which are never crawled
//   - Assets: one record per cataloged media file, unique per
//     (library, original path), with checksum, timestamps, offline flag,
//     and optional sidecar path
//
// The database uses WAL mode so reconciliation reads and concurrent
// worker upserts do not block each other. Schema is created on Open.
package catalog
