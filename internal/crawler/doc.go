// Package crawler walks library import paths and reports every supported
// media file to a caller-supplied callback.
//
// The walk is lazy: paths stream through the callback instead of being
// materialized, so memory stays bounded on very large import paths. I/O
// errors at a leaf never abort traversal of siblings; the offending
// subtree is skipped and counted. Symlinked directories are not followed.
package crawler
