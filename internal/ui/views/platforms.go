package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/Mikkelka/gametrack/internal/tracker"
	"github.com/Mikkelka/gametrack/internal/ui/theme"
)

type platformsErrorMsg struct{ err error }

type platformsLoadedMsg struct {
	platforms []model.Platform
}

// PlatformsMode represents the current input mode
type PlatformsMode int

const (
	PlatformsModeNormal PlatformsMode = iota
	PlatformsModeAddName
	PlatformsModeAddColor
	PlatformsModeRecolor
	PlatformsModeConfirmDelete
)

// PlatformsView manages the platform records and their colors
type PlatformsView struct {
	tracker *tracker.Service
	width   int
	height  int

	platforms []model.Platform
	cursor    int

	mode      PlatformsMode
	textInput textinput.Model

	// Pending add: name captured, waiting for color
	pendingName string

	statusMsg string
}

// NewPlatformsView creates a new platforms view
func NewPlatformsView(svc *tracker.Service) PlatformsView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64

	return PlatformsView{
		tracker:   svc,
		textInput: ti,
	}
}

// Init loads the platform list
func (v PlatformsView) Init() tea.Cmd {
	svc := v.tracker
	return func() tea.Msg {
		platforms, err := svc.Platforms(context.Background())
		if err != nil {
			return platformsErrorMsg{err: err}
		}
		return platformsLoadedMsg{platforms: platforms}
	}
}

// SetSize sets the view dimensions
func (v PlatformsView) SetSize(width, height int) PlatformsView {
	v.width = width
	v.height = height
	return v
}

// Update handles messages
func (v PlatformsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case platformsLoadedMsg:
		v.platforms = msg.platforms
		if v.cursor >= len(v.platforms) && len(v.platforms) > 0 {
			v.cursor = len(v.platforms) - 1
		}
		return v, nil

	case platformsErrorMsg:
		v.statusMsg = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case PlatformsModeAddName:
			return v.handleAddName(msg)
		case PlatformsModeAddColor:
			return v.handleAddColor(msg)
		case PlatformsModeRecolor:
			return v.handleRecolor(msg)
		case PlatformsModeConfirmDelete:
			return v.handleConfirmDelete(msg)
		default:
			return v.handleNormal(msg)
		}
	}

	if v.mode != PlatformsModeNormal && v.mode != PlatformsModeConfirmDelete {
		var cmd tea.Cmd
		v.textInput, cmd = v.textInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v PlatformsView) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.platforms)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

	case "a":
		v.mode = PlatformsModeAddName
		v.textInput.SetValue("")
		v.textInput.Placeholder = "Platform name..."
		v.textInput.Focus()

	case "c", "enter":
		if v.cursor < len(v.platforms) {
			v.mode = PlatformsModeRecolor
			v.textInput.SetValue(v.platforms[v.cursor].Color)
			v.textInput.Placeholder = "#rrggbb"
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}

	case "d":
		if v.cursor < len(v.platforms) {
			v.mode = PlatformsModeConfirmDelete
		}
	}
	return v, nil
}

func (v PlatformsView) handleAddName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(v.textInput.Value())
		if name != "" {
			v.pendingName = name
			v.mode = PlatformsModeAddColor
			v.textInput.SetValue("")
			v.textInput.Placeholder = "#rrggbb"
		}
		return v, nil
	case "esc":
		v.mode = PlatformsModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

func (v PlatformsView) handleAddColor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		color := strings.TrimSpace(v.textInput.Value())
		if color == "" {
			color = "#888888"
		}
		name := v.pendingName
		v.pendingName = ""
		v.mode = PlatformsModeNormal
		v.textInput.Blur()

		svc := v.tracker
		return v, func() tea.Msg {
			if _, err := svc.AddPlatform(context.Background(), name, color); err != nil {
				return platformsErrorMsg{err: err}
			}
			platforms, err := svc.Platforms(context.Background())
			if err != nil {
				return platformsErrorMsg{err: err}
			}
			return platformsLoadedMsg{platforms: platforms}
		}
	case "esc":
		v.mode = PlatformsModeNormal
		v.pendingName = ""
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleRecolor commits a platform color change, which fans out to every
// item tagged with the platform.
func (v PlatformsView) handleRecolor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		color := strings.TrimSpace(v.textInput.Value())
		v.mode = PlatformsModeNormal
		v.textInput.Blur()
		if color == "" || v.cursor >= len(v.platforms) {
			return v, nil
		}

		svc := v.tracker
		platformID := v.platforms[v.cursor].ID
		return v, func() tea.Msg {
			if err := svc.SetPlatformColor(context.Background(), platformID, color); err != nil {
				return platformsErrorMsg{err: err}
			}
			platforms, err := svc.Platforms(context.Background())
			if err != nil {
				return platformsErrorMsg{err: err}
			}
			return platformsLoadedMsg{platforms: platforms}
		}
	case "esc":
		v.mode = PlatformsModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

func (v PlatformsView) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = PlatformsModeNormal
		if v.cursor >= len(v.platforms) {
			return v, nil
		}
		svc := v.tracker
		platformID := v.platforms[v.cursor].ID
		return v, func() tea.Msg {
			if err := svc.DeletePlatform(context.Background(), platformID); err != nil {
				return platformsErrorMsg{err: err}
			}
			platforms, err := svc.Platforms(context.Background())
			if err != nil {
				return platformsErrorMsg{err: err}
			}
			return platformsLoadedMsg{platforms: platforms}
		}
	case "n", "N", "esc":
		v.mode = PlatformsModeNormal
		return v, nil
	}
	return v, nil
}

// View renders the platform list
func (v PlatformsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Title.Render("Platforms"))
	b.WriteString("\n\n")

	if len(v.platforms) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render("No platforms yet; press a to add one"))
		b.WriteString("\n")
	}

	for i, p := range v.platforms {
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == v.cursor {
			style = style.Background(t.Highlight)
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		colorLabel := lipgloss.NewStyle().Foreground(t.Subtle).Render(p.Color)
		b.WriteString(style.Render(fmt.Sprintf("%s %-20s %s", dot, p.Name, colorLabel)))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(v.width - 4)

	switch v.mode {
	case PlatformsModeAddName:
		b.WriteString(inputStyle.Render("Name: " + v.textInput.View()))
	case PlatformsModeAddColor:
		b.WriteString(inputStyle.Render(fmt.Sprintf("Color for %s: %s", v.pendingName, v.textInput.View())))
	case PlatformsModeRecolor:
		b.WriteString(inputStyle.Render("New color: " + v.textInput.View()))
	case PlatformsModeConfirmDelete:
		name := ""
		if v.cursor < len(v.platforms) {
			name = v.platforms[v.cursor].Name
		}
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Bold(true).
			Render(fmt.Sprintf("Delete platform '%s'? Items keep their color. (y/n)", name)))
	default:
		if v.statusMsg != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).
				Render("j/k: navigate • a: add • enter/c: change color • d: delete"))
		}
	}

	return b.String()
}

// IsInputMode returns whether the view is in input mode
func (v PlatformsView) IsInputMode() bool {
	return v.mode != PlatformsModeNormal
}
