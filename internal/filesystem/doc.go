// Package filesystem provides stat and open helpers with retry logic for
// NFS stale file handle errors. Library import paths are commonly NFS
// mounts; a file handle can go stale between the crawl and the ingest
// worker's stat, and a single retry usually recovers it.
package filesystem
