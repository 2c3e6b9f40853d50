// Package logging provides leveled logging for the media catalog service.
//
// The log level is read once from the LOG_LEVEL environment variable
// (debug, info, warn, error); setting DEBUG=true forces debug level.
// The default level is info.
package logging
