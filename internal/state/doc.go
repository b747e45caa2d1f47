// Package state persists the inbox document.
//
// Every command is a full load, mutate and save of one file; there is no
// locking and the last writer wins. A missing file loads as an empty inbox,
// and saving an empty inbox deletes the file. Other I/O errors are returned
// wrapped ("read inbox: ...", "write inbox: ...") and never retried.
//
// # Location
//
// DefaultPath picks, in order:
//
//  1. $TAEL_INBOX_FILE
//  2. $XDG_DATA_HOME/tael/<session>.md, falling back to ~/.local/share
//
// where <session> is $ZELLIJ_SESSION_NAME, "tmux-$TMUX_PANE", or "default".
package state
