package ui

import (
	"github.com/Mikkelka/gametrack/internal/model"
)

// View represents the current active view
type View int

const (
	ViewBoard View = iota
	ViewPlatforms
	ViewSettings
	ViewStats
	ViewHelp
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewBoard:
		return "Board"
	case ViewPlatforms:
		return "Platforms"
	case ViewSettings:
		return "Settings"
	case ViewStats:
		return "Stats"
	case ViewHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Messages for inter-component communication

// ItemsRefreshedMsg carries the refreshed item sequence whenever the cache
// changes, whether from a local edit or a push notification.
type ItemsRefreshedMsg struct {
	Items []model.Item
}

// SyncedMsg announces a completed background flush
type SyncedMsg struct {
	Sent int
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
