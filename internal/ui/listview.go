package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/five82/tael/internal/inbox"
)

// CheckboxStyle selects the indicator drawn before each item.
type CheckboxStyle int

const (
	CheckboxBrackets CheckboxStyle = iota
	CheckboxCircles
	CheckboxBullets
	CheckboxNone
)

// ParseCheckboxStyle maps a config value to a style. Unknown values fall
// back to brackets.
func ParseCheckboxStyle(s string) CheckboxStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circles", "circle", "dots":
		return CheckboxCircles
	case "bullets", "bullet":
		return CheckboxBullets
	case "none", "off":
		return CheckboxNone
	default:
		return CheckboxBrackets
	}
}

// Indicator returns the glyph for the style; CheckboxNone has none.
func (c CheckboxStyle) Indicator() string {
	switch c {
	case CheckboxCircles:
		return "○"
	case CheckboxBullets:
		return "•"
	case CheckboxNone:
		return ""
	default:
		return "[ ]"
	}
}

func (c CheckboxStyle) String() string {
	switch c {
	case CheckboxCircles:
		return "circles"
	case CheckboxBullets:
		return "bullets"
	case CheckboxNone:
		return "none"
	default:
		return "brackets"
	}
}

const (
	// Title heads every rendered list.
	Title = "Tael - Agent Inbox"
	// DefaultFooter is shown when RenderOptions.Footer is empty.
	DefaultFooter = "j/k:nav  enter:focus  q:quit"

	emptyText  = "  (no items)"
	moreBelow  = "  … more below"
	marker     = "▶"
	ellipsis   = "…"
	indentUnit = "  "
	minWidth   = 20
	minHeight  = 3
)

// DefaultLevels groups by status, then by project.
var DefaultLevels = []string{inbox.LevelStatus, inbox.LevelProj}

// RenderOptions controls RenderList.
type RenderOptions struct {
	Width    int // zero or less disables truncation
	Height   int // zero or less disables the overflow window
	Checkbox CheckboxStyle
	Colors   bool
	Styles   Styles
	// Levels are grouping level names. Nil uses DefaultLevels; an empty
	// non-nil slice renders a flat list.
	Levels     []string
	Footer     string
	HideFooter bool
	// Error replaces the footer and is drawn in the error style.
	Error string
}

// RenderList draws the inbox as grouped display lines with the item at
// logical index selected marked. Pass -1 to mark nothing.
func RenderList(in *inbox.Inbox, selected int, opts RenderOptions) string {
	width := opts.Width
	if width > 0 {
		width = max(width, minWidth)
	}
	height := opts.Height
	if height > 0 {
		height = max(height, minHeight)
	}
	levels := opts.Levels
	if levels == nil {
		levels = DefaultLevels
	}

	paint := func(style lipgloss.Style, s string) string {
		if !opts.Colors || s == "" {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder
	b.WriteString(paint(opts.Styles.Title, fit(Title, width)))
	b.WriteByte('\n')

	if in.IsEmpty() {
		b.WriteString(paint(opts.Styles.FaintText, emptyText))
		b.WriteByte('\n')
	} else {
		g := inbox.Group(in, levels)

		budget := 0
		if height > 0 {
			budget = height - 1
			if !opts.HideFooter {
				budget--
			}
		}
		start, end, more := window(len(g.Lines), g.LineFor(selected), budget)

		for _, line := range g.Lines[start:end] {
			b.WriteString(renderLine(line, selected, width, opts, paint))
			b.WriteByte('\n')
		}
		if more {
			b.WriteString(paint(opts.Styles.FaintText, moreBelow))
			b.WriteByte('\n')
		}
	}

	switch {
	case opts.HideFooter:
	case opts.Error != "":
		b.WriteString(paint(opts.Styles.ErrorText, fit(opts.Error, width)))
		b.WriteByte('\n')
	default:
		footer := opts.Footer
		if footer == "" {
			footer = DefaultFooter
		}
		b.WriteString(paint(opts.Styles.FaintText, footer))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderLine(line inbox.DisplayLine, selected, width int, opts RenderOptions, paint func(lipgloss.Style, string) string) string {
	indent := strings.Repeat(indentUnit, line.Level)

	if line.Kind == inbox.LineHeader {
		style := opts.Styles.Group
		if line.Level == 0 {
			style = opts.Styles.Section
		}
		return indent + paint(style, fit(line.Text, remaining(width, indent)))
	}

	mark, textStyle := " ", opts.Styles.Item
	if line.Item == selected {
		mark, textStyle = marker, opts.Styles.Selected
	}
	checkbox := ""
	if ind := opts.Checkbox.Indicator(); ind != "" {
		checkbox = ind + " "
	}

	text := fit(line.Text, remaining(width, indent+mark+" "+checkbox))
	return indent + paint(opts.Styles.Marker, mark) + " " + checkbox + paint(textStyle, text)
}

// window picks the slice of display lines to show so that line sel stays
// visible. When lines are cut off at the bottom one row of the budget is
// left for the overflow hint.
func window(total, sel, budget int) (start, end int, more bool) {
	if budget <= 0 || total <= budget {
		return 0, total, false
	}
	visible := max(budget-1, 1)
	if sel >= visible {
		start = sel - visible + 1
	}
	end = start + visible
	if end >= total {
		return max(total-budget, 0), total, false
	}
	return start, end, true
}

// remaining is the column budget left after prefix, or zero when unlimited.
func remaining(width int, prefix string) int {
	if width <= 0 {
		return 0
	}
	return max(width-runewidth.StringWidth(prefix), 1)
}

// fit truncates s to n display columns; n of zero leaves s untouched.
func fit(s string, n int) string {
	if n <= 0 || ansi.StringWidth(s) <= n {
		return s
	}
	return ansi.Truncate(s, n, ellipsis)
}
