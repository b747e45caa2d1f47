// Package app wires the interactive viewer together.
//
// Run builds the store for the resolved inbox path, starts a file watcher
// on the inbox directory, applies persisted preferences and launches the
// Bubble Tea viewer. When the viewer exits with a selected pane, the
// configured focus command runs after the terminal has been restored.
//
// The watcher debounces bursts of writes into a single notification.
// Without a watcher the viewer still reloads on its refresh tick.
package app
