// Package logtail reads the tail of orderdesk's JSON log file for the Logs view.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays at O(maxLines) regardless of file size. A missing file is
// not an error; the Logs view just shows nothing.
//
//	lines, err := logtail.Read(cfg.LogFile, 500)
//
// # Parsing
//
// Parse decodes one zap JSON record into an Entry. The reserved keys ts,
// level, logger, msg, caller and stacktrace become struct fields; everything
// else is kept as sorted key/value pairs. A line that is not a JSON object
// comes back with only Raw set; the Logs view prints it verbatim.
package logtail
