package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Card actions
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Favorite  key.Binding
	Complete  key.Binding
	Platform  key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding

	// Views
	BoardView     key.Binding
	PlatformsView key.Binding
	SettingsView  key.Binding
	StatsView     key.Binding

	// Power user
	Search     key.Binding
	Help       key.Binding
	Sync       key.Binding
	ThemeCycle key.Binding

	// General
	Quit    key.Binding
	Back    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),

		// Card actions
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Platform: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "platform"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move down"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "move to prev list"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "move to next list"),
		),

		// Views
		BoardView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "board"),
		),
		PlatformsView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "platforms"),
		),
		SettingsView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "settings"),
		),
		StatsView: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "stats"),
		),

		// Power user
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Sync: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "sync now"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),

		// General
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("escape"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("escape"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.MoveUp, k.MoveDown, k.MoveLeft, k.MoveRight},
		{k.Add, k.Edit, k.Delete, k.Favorite},
		{k.Complete, k.Platform, k.Search},
		{k.BoardView, k.PlatformsView, k.SettingsView, k.StatsView},
		{k.Sync, k.ThemeCycle, k.Help, k.Quit},
	}
}
