// Package inbox implements the tael document model: items, the plain-text
// document grammar, canonical ordering and grouped display lines.
//
// # Document Format
//
// An inbox is persisted as a small Markdown-like document:
//
//	## Waiting for Input
//
//	- [ ] claude-code: Auth question [pane:: 42] [proj:: crucible]
//	## Background
//
//	- [/] indexer: Processing files [pane:: 5] [proj:: crucible] [branch:: main]
//
// Section headers ("## Waiting for Input", "## Waiting", "## Background",
// "## Working") set the status for items whose checkbox character is not
// recognized. Each item line carries its status in the checkbox (" " waiting,
// "/" working) and its attributes as "[key:: value]" annotations. The message
// is the text before the first annotation.
//
// Older documents grouped items under "### project" or "### project (branch)"
// headers. Parse still reads those and backfills proj/branch on items that do
// not carry them explicitly. Render never writes them.
//
// # Ordering
//
// Upsert keeps items sorted by status (waiting first), then by proj. Items
// that tie keep insertion order; branch is not a sort key. Parse returns
// items in document order and leaves ordering to the caller.
//
// # Grouping
//
// Group turns an ordered inbox into header and item lines for display. Levels
// are named: "status" groups by section name, "proj" by "proj (branch)", and
// any other name by the raw attribute value. Headers repeat whenever a value
// changes between neighbours; they are never deduplicated globally.
package inbox
