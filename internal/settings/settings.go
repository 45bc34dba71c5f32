// Package settings persists per-user view preferences as a JSON file in
// the data directory.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Mikkelka/gametrack/internal/model"
)

// Settings holds list visibility toggles and the chosen theme
type Settings struct {
	ShowUpcoming bool   `json:"showUpcoming"`
	ShowPaused   bool   `json:"showPaused"`
	ShowDropped  bool   `json:"showDropped"`
	Theme        string `json:"theme,omitempty"`

	path string
}

// Default returns settings with every list visible
func Default() Settings {
	return Settings{ShowUpcoming: true, ShowPaused: true, ShowDropped: true}
}

// Load reads settings from dataDir, falling back to defaults when the file
// is missing or unreadable.
func Load(dataDir string) Settings {
	s := Default()
	s.path = filepath.Join(dataDir, "settings.json")

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}

	// missing keys keep their defaults, so older settings files stay valid
	var saved struct {
		ShowUpcoming *bool  `json:"showUpcoming"`
		ShowPaused   *bool  `json:"showPaused"`
		ShowDropped  *bool  `json:"showDropped"`
		Theme        string `json:"theme"`
	}
	if err := json.Unmarshal(data, &saved); err != nil {
		return s
	}
	if saved.ShowUpcoming != nil {
		s.ShowUpcoming = *saved.ShowUpcoming
	}
	if saved.ShowPaused != nil {
		s.ShowPaused = *saved.ShowPaused
	}
	if saved.ShowDropped != nil {
		s.ShowDropped = *saved.ShowDropped
	}
	s.Theme = saved.Theme
	return s
}

// Save persists the settings
func (s *Settings) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// VisibleLists filters the board columns by the visibility toggles
func (s *Settings) VisibleLists(all []model.StatusList) []model.StatusList {
	var visible []model.StatusList
	for _, l := range all {
		switch l.ID {
		case model.StatusUpcoming:
			if !s.ShowUpcoming {
				continue
			}
		case model.StatusPaused:
			if !s.ShowPaused {
				continue
			}
		case model.StatusDropped:
			if !s.ShowDropped {
				continue
			}
		}
		visible = append(visible, l)
	}
	return visible
}
