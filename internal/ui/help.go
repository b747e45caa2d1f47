package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Navigation", "Actions", "General"}

// renderHelp renders the help overlay from the full key map.
func (m Model) renderHelp() string {
	styles := m.styles

	var b strings.Builder
	b.WriteString(styles.HelpTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSectionTitles) {
			b.WriteString(styles.HelpTitle.Render(helpSectionTitles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(styles.HelpKey.Render(h.Key))
			b.WriteString(styles.Item.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	modal := styles.Modal.Width(40).Render(b.String())
	if m.width <= 0 || m.height <= 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
