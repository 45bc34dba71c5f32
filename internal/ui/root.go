package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mikkelka/gametrack/internal/app"
	"github.com/Mikkelka/gametrack/internal/ui/theme"
	"github.com/Mikkelka/gametrack/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView   View
	boardView     views.BoardView
	platformsView views.PlatformsView
	settingsView  views.SettingsView
	statsView     views.StatsView
	helpVisible   bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		currentView:   ViewBoard,
		boardView:     views.NewBoardView(application.Tracker, &application.Settings),
		platformsView: views.NewPlatformsView(application.Tracker),
		settingsView:  views.NewSettingsView(&application.Settings, application.Auth),
		statsView:     views.NewStatsView(),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return m.boardView.Init()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Update child views with new size
		// Reserve space for header (1 line) and footer (3 lines)
		contentHeight := m.height - 4
		m.boardView = m.boardView.SetSize(m.width, contentHeight)
		m.platformsView = m.platformsView.SetSize(m.width, contentHeight)
		m.settingsView = m.settingsView.SetSize(m.width, contentHeight)
		m.statsView = m.statsView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		// Check if current view is in input mode
		isInputMode := false
		switch m.currentView {
		case ViewBoard:
			isInputMode = m.boardView.IsInputMode()
		case ViewPlatforms:
			isInputMode = m.platformsView.IsInputMode()
		case ViewSettings:
			isInputMode = m.settingsView.IsInputMode()
		case ViewStats:
			isInputMode = m.statsView.IsInputMode()
		}

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}
			// Otherwise, let the view handle 'q' as a character

		case key.Matches(msg, m.keys.ThemeCycle):
			// ctrl+t always works (unlikely to type)
			m.cycleTheme()
			return m, nil

		case key.Matches(msg, m.keys.Sync):
			// ctrl+s flushes pending changes immediately
			return m, m.syncNow()
		}

		// Skip other global keys when in input mode
		if isInputMode {
			break // Fall through to view delegation
		}

		// These only work when NOT in input mode
		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		// View switching (1-4 keys)
		case key.Matches(msg, m.keys.BoardView):
			m.currentView = ViewBoard
			return m, m.boardView.Init()
		case key.Matches(msg, m.keys.PlatformsView):
			m.currentView = ViewPlatforms
			return m, m.platformsView.Init()
		case key.Matches(msg, m.keys.SettingsView):
			m.currentView = ViewSettings
			return m, m.settingsView.Init()
		case key.Matches(msg, m.keys.StatsView):
			m.currentView = ViewStats
			return m, m.statsView.Init()
		}

	case ItemsRefreshedMsg:
		// Pushed whenever the cache changes; all item views share the sequence
		m.boardView = m.boardView.SetItems(msg.Items)
		m.statsView = m.statsView.SetItems(msg.Items)
		return m, nil

	case SyncedMsg:
		if msg.Sent == 1 {
			m.statusMsg = "1 change saved"
		} else {
			m.statusMsg = fmt.Sprintf("%d changes saved", msg.Sent)
		}
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	// Delegate to current view
	switch m.currentView {
	case ViewBoard:
		newBoardView, cmd := m.boardView.Update(msg)
		m.boardView = newBoardView.(views.BoardView)
		cmds = append(cmds, cmd)
	case ViewPlatforms:
		newPlatformsView, cmd := m.platformsView.Update(msg)
		m.platformsView = newPlatformsView.(views.PlatformsView)
		cmds = append(cmds, cmd)
	case ViewSettings:
		newSettingsView, cmd := m.settingsView.Update(msg)
		m.settingsView = newSettingsView.(views.SettingsView)
		cmds = append(cmds, cmd)
	case ViewStats:
		newStatsView, cmd := m.statsView.Update(msg)
		m.statsView = newStatsView.(views.StatsView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := theme.Current.Styles
	var sections []string

	// Header
	header := m.renderHeader()
	sections = append(sections, header)

	// Content area
	// Reserve: 1 line for header + 3 lines for footer (status + 2 hint lines)
	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight-- // Extra line for status message
	}
	var content string

	if m.helpVisible {
		content = m.renderHelp(contentHeight)
	} else {
		switch m.currentView {
		case ViewBoard:
			content = m.boardView.View()
		case ViewPlatforms:
			content = m.platformsView.View()
		case ViewSettings:
			content = m.settingsView.View()
		case ViewStats:
			content = m.statsView.View()
		default:
			content = styles.Panel.Render("View not implemented")
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	// Footer
	footer := m.renderFooter()
	sections = append(sections, footer)

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("gametrack")

	// View indicator
	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	// Sync indicator
	var syncIndicator string
	if m.app.Tracker.HasUnsynced() {
		syncIndicator = lipgloss.NewStyle().
			Foreground(t.Warning).
			Padding(0, 1).
			Render("● unsaved")
	}

	// User + theme indicators
	userIndicator := viewStyle.Render(m.app.Auth.DisplayName())
	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator, syncIndicator)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Center, userIndicator, themeIndicator)

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	header := leftSide + strings.Repeat(" ", gap) + rightSide
	return header
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	// Helper to format key hints
	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	// Show error or status message on first line if present
	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	// Build context-aware hint lines
	var line1, line2 string

	switch m.currentView {
	case ViewBoard:
		if m.boardView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
			line2 = ""
		} else {
			line1 = key("a", "add") + sep +
				key("enter", "edit") + sep +
				key("d", "del") + sep +
				key("f", "favorite") + sep +
				key("c", "complete") + sep +
				key("p", "platform") + sep +
				key("/", "search")
			line2 = key("J/K", "reorder") + sep +
				key("H/L", "move list") + sep +
				key("ctrl+s", "sync") + sep +
				key("1-4", "views") + sep +
				key("?", "help")
		}

	case ViewPlatforms:
		if m.platformsView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
			line2 = ""
		} else {
			line1 = key("a", "add") + sep +
				key("c/enter", "recolor") + sep +
				key("d", "delete") + sep +
				key("j/k", "navigate")
			line2 = key("1-4", "views") + sep +
				key("ctrl+t", "theme") + sep +
				key("?", "help")
		}

	case ViewSettings:
		line1 = key("j/k", "navigate") + sep +
			key("enter/space", "toggle") + sep +
			key("esc", "cancel edit")
		line2 = key("1-4", "views") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")

	case ViewStats:
		line1 = key("1-4", "views") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")
		line2 = ""

	default:
		line1 = key("1-4", "views") + sep + key("?", "help")
	}

	// Build footer
	var lines []string

	if statusLine != "" {
		lines = append(lines, statusLine)
	}

	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp(height int) string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Gametrack Help"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navKeys := [][]string{
		{"↑/k ↓/j", "Navigate up/down"},
		{"←/h →/l", "Switch columns"},
		{"g / G", "Go to top/bottom of column"},
	}
	for _, kv := range navKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Game Actions"))
	b.WriteString("\n")
	actionKeys := [][]string{
		{"a", "Add new game"},
		{"enter", "Edit title"},
		{"d", "Delete game"},
		{"f", "Toggle favorite"},
		{"c", "Complete with today's date"},
		{"p", "Change platform"},
		{"/", "Search/filter games"},
	}
	for _, kv := range actionKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Moving Games"))
	b.WriteString("\n")
	moveKeys := [][]string{
		{"K / J", "Move up/down within list"},
		{"H / L", "Move to previous/next list"},
		{"mouse", "Drag cards between lists"},
	}
	for _, kv := range moveKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Views"))
	b.WriteString("\n")
	viewKeys := [][]string{
		{"1", "Board"},
		{"2", "Platforms"},
		{"3", "Settings"},
		{"4", "Stats"},
		{"?", "Toggle this help"},
	}
	for _, kv := range viewKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("System"))
	b.WriteString("\n")
	sysKeys := [][]string{
		{"ctrl+s", "Save pending changes now"},
		{"ctrl+t", "Cycle theme"},
		{"q / ctrl+c", "Quit"},
	}
	for _, kv := range sysKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? or esc to close"))

	return b.String()
}

// syncNow flushes the queue and reports how many changes went out
func (m RootModel) syncNow() tea.Cmd {
	svc := m.app.Tracker
	return func() tea.Msg {
		if !svc.HasUnsynced() {
			return StatusMsg{Message: "Everything saved"}
		}
		svc.Flush(context.Background())
		return StatusMsg{Message: "Changes saved"}
	}
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.app.Settings.Theme = next.Name
			_ = m.app.Settings.Save()
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
