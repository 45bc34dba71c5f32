package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mikkelka/gametrack/internal/auth"
	"github.com/Mikkelka/gametrack/internal/settings"
	"github.com/Mikkelka/gametrack/internal/ui/theme"
)

type settingsErrorMsg struct{ err error }

// settingsRow identifies one line of the settings form
type settingsRow int

const (
	rowShowUpcoming settingsRow = iota
	rowShowPaused
	rowShowDropped
	rowTheme
	rowDisplayName
	rowSignOut
	rowCount
)

// SettingsView edits list visibility, theme and the profile
type SettingsView struct {
	settings *settings.Settings
	auth     auth.Provider
	width    int
	height   int

	cursor      settingsRow
	editingName bool
	textInput   textinput.Model

	statusMsg string
}

// NewSettingsView creates a new settings view
func NewSettingsView(st *settings.Settings, provider auth.Provider) SettingsView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64

	return SettingsView{
		settings:  st,
		auth:      provider,
		textInput: ti,
	}
}

// Init is a no-op; the settings are already in memory
func (v SettingsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v SettingsView) SetSize(width, height int) SettingsView {
	v.width = width
	v.height = height
	return v
}

// Update handles messages
func (v SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if errMsg, ok := msg.(settingsErrorMsg); ok {
		v.statusMsg = errMsg.err.Error()
		return v, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if v.editingName {
			var cmd tea.Cmd
			v.textInput, cmd = v.textInput.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	if v.editingName {
		return v.handleNameEdit(keyMsg)
	}

	v.statusMsg = ""

	switch keyMsg.String() {
	case "j", "down":
		if v.cursor < rowCount-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

	case "enter", " ":
		return v.activate()
	}
	return v, nil
}

// activate toggles or edits the row under the cursor
func (v SettingsView) activate() (tea.Model, tea.Cmd) {
	switch v.cursor {
	case rowShowUpcoming:
		v.settings.ShowUpcoming = !v.settings.ShowUpcoming
		return v, v.save()
	case rowShowPaused:
		v.settings.ShowPaused = !v.settings.ShowPaused
		return v, v.save()
	case rowShowDropped:
		v.settings.ShowDropped = !v.settings.ShowDropped
		return v, v.save()

	case rowTheme:
		themes := theme.Available()
		for i, t := range themes {
			if t.Name == theme.Current.Theme.Name {
				next := themes[(i+1)%len(themes)]
				theme.SetTheme(next)
				v.settings.Theme = next.Name
				v.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
				break
			}
		}
		return v, v.save()

	case rowDisplayName:
		v.editingName = true
		v.textInput.SetValue(v.auth.DisplayName())
		v.textInput.Focus()
		v.textInput.CursorEnd()
		return v, nil

	case rowSignOut:
		v.auth.SignOut()
		v.statusMsg = "Signed out"
		return v, nil
	}
	return v, nil
}

func (v SettingsView) handleNameEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(v.textInput.Value())
		v.editingName = false
		v.textInput.Blur()
		if name == "" {
			return v, nil
		}
		provider := v.auth
		return v, func() tea.Msg {
			if err := provider.SetDisplayName(name); err != nil {
				return settingsErrorMsg{err: err}
			}
			return nil
		}
	case "esc":
		v.editingName = false
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

func (v SettingsView) save() tea.Cmd {
	st := v.settings
	return func() tea.Msg {
		if err := st.Save(); err != nil {
			return settingsErrorMsg{err: err}
		}
		return nil
	}
}

// View renders the settings form
func (v SettingsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	check := func(on bool) string {
		if on {
			return lipgloss.NewStyle().Foreground(t.Success).Render("[x]")
		}
		return lipgloss.NewStyle().Foreground(t.Subtle).Render("[ ]")
	}

	rows := []struct {
		row  settingsRow
		text string
	}{
		{rowShowUpcoming, fmt.Sprintf("%s Show 'Ser frem til'", check(v.settings.ShowUpcoming))},
		{rowShowPaused, fmt.Sprintf("%s Show 'På pause'", check(v.settings.ShowPaused))},
		{rowShowDropped, fmt.Sprintf("%s Show 'Droppet'", check(v.settings.ShowDropped))},
		{rowTheme, fmt.Sprintf("Theme: %s", theme.Current.Theme.Name)},
		{rowDisplayName, fmt.Sprintf("Display name: %s", v.auth.DisplayName())},
		{rowSignOut, "Sign out"},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	for _, r := range rows {
		style := lipgloss.NewStyle().Padding(0, 1)
		if r.row == v.cursor && !v.editingName {
			style = style.Background(t.Highlight)
		}
		text := r.text
		if r.row == rowDisplayName && v.editingName {
			text = "Display name: " + v.textInput.View()
		}
		b.WriteString(style.Render(text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
		b.WriteString("\n")
	}
	if v.editingName {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Render("enter: save • esc: cancel"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Render("j/k: navigate • enter/space: toggle"))
	}

	return b.String()
}

// IsInputMode returns whether the view is in input mode
func (v SettingsView) IsInputMode() bool {
	return v.editingName
}
