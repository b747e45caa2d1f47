// Package config loads tael's settings from ~/.config/tael/config.toml.
//
// A missing file is not an error; every field has a default:
//
//	focus_command    = ""                  # detected from $ZELLIJ / $TMUX
//	checkbox_style   = "brackets"          # brackets, circles, bullets, none
//	colors           = true
//	group_by         = ["status", "proj"]  # [] for a flat list
//	refresh_interval = 2                   # seconds
//	inbox_file       = ""                  # per-session file under the data dir
//	log_file         = ""                  # enables debug logging to this file
//
// With log_file unset, debug logging is enabled by TAEL_DEBUG and goes to
// ~/.local/share/tael/tael.log.
//
// TAEL_FOCUS_CMD overrides focus_command. The command may contain the
// {pane_id} placeholder, which is replaced with the target pane id.
//
// Paths accept a leading ~ and are made absolute.
package config
