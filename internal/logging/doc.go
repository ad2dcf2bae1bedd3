// Package logging provides structured logging for fsradio tools.
//
// Logging is silent by default so CLI output stays clean. Set the
// FSRADIO_LOG_LEVEL environment variable (debug, info, warn, error) or pass
// --log-level to enable zap console output on stdout.
package logging
