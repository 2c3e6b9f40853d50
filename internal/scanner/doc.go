// Package scanner reconciles external library directories with the asset
// catalog. A reconcile pass crawls the library's import paths, emits one
// refresh job per discovered file and one offline job per catalog path no
// longer on disk, and the job handlers in this package bring each record
// in line with the file it describes.
package scanner
