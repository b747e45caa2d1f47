// Package ui draws the inbox in a terminal.
//
// RenderList produces the static list: a title, grouped display lines from
// inbox.Group with the selected item marked, an overflow hint when the list
// is taller than the terminal, and a footer. `tael list` prints it once.
//
// The interactive viewer is a Bubble Tea model built on the same renderer.
// It keeps a logical cursor over the collection and reloads the inbox on a
// tick and whenever the file watcher signals a change. Enter quits and
// reports the selected pane through FocusTarget; the caller runs the focus
// command after the terminal is restored.
//
// Theme and grouping changes made in the viewer are persisted to prefs.
package ui
