package ui

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tael/internal/inbox"
	"github.com/five82/tael/internal/prefs"
	"github.com/five82/tael/internal/state"
)

const defaultRefresh = 2 * time.Second

// groupingPresets is the cycle order of the grouping key.
var groupingPresets = [][]string{
	{inbox.LevelStatus, inbox.LevelProj},
	{inbox.LevelStatus},
	{},
}

// Options configures the viewer.
type Options struct {
	Store *state.Store
	// Changes delivers a value whenever the inbox file changes on disk.
	Changes  <-chan struct{}
	Refresh  time.Duration
	Levels   []string // nil uses DefaultLevels
	Checkbox CheckboxStyle
	Colors   bool

	ThemeName string
	Grouping  string // persisted grouping preference; overrides Levels
	PrefsPath string
	Renderer  *lipgloss.Renderer
	Logger    *slog.Logger
}

// Model is the viewer state for Bubble Tea.
type Model struct {
	store     *state.Store
	changes   <-chan struct{}
	refresh   time.Duration
	prefsPath string
	renderer  *lipgloss.Renderer
	logger    *slog.Logger

	keys     keyMap
	help     help.Model
	theme    Theme
	styles   Styles
	colors   bool
	checkbox CheckboxStyle
	levels   []string
	grouping string

	inbox    *inbox.Inbox
	selected int
	width    int
	height   int
	ready    bool
	showHelp bool
	notice   string
	err      error

	focusPane uint32
	focus     bool
}

// New creates the viewer model.
func New(opts Options) Model {
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = defaultRefresh
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	levels := opts.Levels
	if levels == nil {
		levels = DefaultLevels
	}
	if fromPrefs, ok := prefs.GroupLevels(opts.Grouping); ok {
		levels = fromPrefs
	}

	m := Model{
		store:     opts.Store,
		changes:   opts.Changes,
		refresh:   refresh,
		prefsPath: prefsPath,
		renderer:  opts.Renderer,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		colors:    opts.Colors,
		checkbox:  opts.Checkbox,
		levels:    levels,
		grouping:  opts.Grouping,
		inbox:     inbox.New(),
	}
	if !m.colors {
		m.help.Styles = help.Styles{}
	}
	m.setTheme(opts.ThemeName)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(m.store),
		tickCmd(m.refresh),
		waitForChange(m.changes),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(loadCmd(m.store), tickCmd(m.refresh))

	case changedMsg:
		return m, tea.Batch(loadCmd(m.store), waitForChange(m.changes))

	case inboxMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Warn("inbox reload failed", "error", msg.err)
			return m, nil
		}
		m.err = nil
		m.inbox = msg.inbox
		m.clamp()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return RenderList(m.inbox, m.selected, RenderOptions{
		Width:    m.width,
		Height:   m.height,
		Checkbox: m.checkbox,
		Colors:   m.colors,
		Styles:   m.styles,
		Levels:   m.levels,
		Footer:   m.footer(),
		Error:    m.errorText(),
	})
}

func (m Model) footer() string {
	if m.notice != "" {
		return m.notice
	}
	return m.help.View(m.keys)
}

func (m Model) errorText() string {
	if m.err == nil {
		return ""
	}
	return "error: " + m.err.Error()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < m.inbox.Len()-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Top):
		m.selected = 0

	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(m.inbox.Len()-1, 0)

	case key.Matches(msg, m.keys.Focus):
		pane, ok := m.selectedPane()
		if !ok {
			return m, nil
		}
		m.focusPane = pane
		m.focus = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Delete):
		pane, ok := m.selectedPane()
		if !ok {
			return m, nil
		}
		next := m.inbox.Clone()
		next.Remove(pane)
		m.inbox = next
		m.clamp()
		return m, deleteCmd(m.store, pane)

	case key.Matches(msg, m.keys.Reload):
		return m, loadCmd(m.store)

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.CycleGrouping):
		m.levels = nextGrouping(m.levels)
		m.grouping = prefs.FormatLevels(m.levels)
		m.savePrefs()
	}

	return m, nil
}

// selectedPane returns the pane id of the selected item. Items without a
// usable pane id set a notice instead.
func (m *Model) selectedPane() (uint32, bool) {
	if m.selected < 0 || m.selected >= m.inbox.Len() {
		return 0, false
	}
	pane, ok := m.inbox.Items[m.selected].PaneID()
	if !ok {
		m.notice = "selected item has no pane id"
	}
	return pane, ok
}

// clamp keeps the cursor on an existing item after the list shrinks.
func (m *Model) clamp() {
	if m.selected >= m.inbox.Len() {
		m.selected = m.inbox.Len() - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	m.styles = m.theme.Styles(m.renderer)
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Grouping: m.grouping}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

func nextGrouping(current []string) []string {
	for i, preset := range groupingPresets {
		if slices.Equal(preset, current) {
			return groupingPresets[(i+1)%len(groupingPresets)]
		}
	}
	return groupingPresets[0]
}

// FocusTarget reports the pane chosen with enter before the viewer quit.
func (m Model) FocusTarget() (uint32, bool) {
	return m.focusPane, m.focus
}

// Selected returns the logical index of the cursor.
func (m Model) Selected() int {
	return m.selected
}

// Levels returns the active grouping levels.
func (m Model) Levels() []string {
	return m.levels
}

// Messages

type tickMsg time.Time

type changedMsg struct{}

type inboxMsg struct {
	inbox *inbox.Inbox
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		in, err := store.Load()
		return inboxMsg{inbox: in, err: err}
	}
}

func deleteCmd(store *state.Store, pane uint32) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		in, err := store.Update(func(in *inbox.Inbox) bool {
			return in.Remove(pane)
		})
		return inboxMsg{inbox: in, err: err}
	}
}

// waitForChange blocks until the next change notification. A nil or
// closed channel stops the watch loop.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// Run starts the viewer and blocks until it exits. The returned model
// carries the focus target chosen by the user.
func Run(ctx context.Context, opts Options) (Model, error) {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}
