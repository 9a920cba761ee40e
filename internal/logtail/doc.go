// Package logtail reads the tail of the launcher's error log for display.
//
// # Reading
//
// Read uses a ring buffer to keep only the last maxLines of a file, so the
// cost is one sequential pass and O(maxLines) memory regardless of how long
// the append-only log has grown. A missing file is not an error; it simply
// has no lines yet.
//
//	lines, err := logtail.Read(afero.NewOsFs(), layout.ErrorLogPath, 200)
//
// # Parsing
//
// Parse splits lines written by the logging package:
//
//	2025-01-02 03:04:05,678 - ERROR - failed to launch client error="..."
//
// Anything else, such as a wrapped continuation line, is returned whole as
// the message so the caller can still show it.
package logtail
