// Package startup handles application configuration loading from
// environment variables, build information, and the structured startup
// and shutdown log output.
package startup
