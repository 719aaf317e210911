// Package logging provides structured logging for the wot-discover CLI.
//
// This package wraps a global zap logger. It is silent unless a level is
// given explicitly or through the WOT_LOG_LEVEL environment variable, so
// command output stays clean by default.
//
// # Log Levels
//
//   - Debug: announcements, fetch targets, full Thing Descriptions
//   - Info: discovered Things
//   - Warn: per-Thing failures (unreachable device, invalid document)
//   - Error: startup failures
//
// # Usage
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
//	d, err := discovery.New(discovery.WithLogger(logging.GetLogger()))
//
// Logs go to stderr in console format so they never mix with records
// printed on stdout.
package logging
