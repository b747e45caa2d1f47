package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette.
type Theme struct {
	Name string

	SelectionBg   string
	SelectionText string

	Text    string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Title     lipgloss.Style
	Section   lipgloss.Style // outermost group headers
	Group     lipgloss.Style // nested group headers
	Marker    lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	FaintText lipgloss.Style
	ErrorText lipgloss.Style
	HelpKey   lipgloss.Style
	HelpTitle lipgloss.Style
	Modal     lipgloss.Style
}

// Styles builds the theme's styles on r. A nil renderer uses the default.
func (t Theme) Styles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Bold(true),

		Section: r.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Group: r.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Marker: r.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		Item: r.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Selected: r.NewStyle().
			Foreground(lipgloss.Color(t.SelectionText)).
			Background(lipgloss.Color(t.SelectionBg)),

		FaintText: r.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		ErrorText: r.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		HelpKey: r.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Width(12),

		HelpTitle: r.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Modal: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 2),
	}
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Text:    "#cdcecf", // fg1
		Faint:   "#71839b", // fg3
		Accent:  "#9d79d6", // magenta
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		Text:    "#DCD7BA", // fujiWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#957FB8", // oniViolet
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Text:    "#f1f5f9", // slate-100
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}
