// Package logtail reads the end of tael's debug log.
//
// Read keeps a ring buffer of the last N lines so memory stays bounded by
// N, not by the file size. Filter and Colorize understand the level
// attribute of slog's text format:
//
//	time=2026-10-17T09:12:03.114+02:00 level=DEBUG msg="inbox saved" path=/home/me/.local/share/tael/main.md items=3
//
// A missing log file is not an error; it means debug logging was never on.
package logtail
