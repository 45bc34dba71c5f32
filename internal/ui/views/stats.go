package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/Mikkelka/gametrack/internal/ui/theme"
)

// StatsView summarizes the board: counts per list, per platform and
// completions per year. Everything derives from the cached item sequence
// the root pushes in.
type StatsView struct {
	width  int
	height int

	items []model.Item
}

// NewStatsView creates a new stats view
func NewStatsView() StatsView {
	return StatsView{}
}

// Init is a no-op; data arrives through SetItems
func (v StatsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v StatsView) SetSize(width, height int) StatsView {
	v.width = width
	v.height = height
	return v
}

// SetItems replaces the summarized sequence
func (v StatsView) SetItems(items []model.Item) StatsView {
	v.items = items
	return v
}

// Update handles messages
func (v StatsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return v, nil
}

// View renders the stats view
func (v StatsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	sections = append(sections, titleStyle.Render("Statistics"))
	sections = append(sections, "")

	// Summary cards (side by side)
	cardStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(18)

	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(t.Subtle)

	var completed, playing, favorites int
	for _, it := range v.items {
		switch it.Status {
		case model.StatusCompleted:
			completed++
		case model.StatusPlaying:
			playing++
		}
		if it.Favorite {
			favorites++
		}
	}

	totalCard := cardStyle.Render(
		valueStyle.Render(fmt.Sprintf("%d", len(v.items))) + "\n" +
			labelStyle.Render("Games"))
	completedCard := cardStyle.Render(
		valueStyle.Render(fmt.Sprintf("%d", completed)) + "\n" +
			labelStyle.Render("Completed"))
	playingCard := cardStyle.Render(
		valueStyle.Render(fmt.Sprintf("%d", playing)) + "\n" +
			labelStyle.Render("Playing"))
	favoriteCard := cardStyle.Render(
		valueStyle.Render(fmt.Sprintf("%d", favorites)) + "\n" +
			labelStyle.Render("Favorites"))

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		totalCard, completedCard, playingCard, favoriteCard))
	sections = append(sections, "")

	sections = append(sections, v.renderListCounts())
	sections = append(sections, "")

	if s := v.renderPlatformCounts(); s != "" {
		sections = append(sections, s)
		sections = append(sections, "")
	}

	if s := v.renderCompletionsByYear(); s != "" {
		sections = append(sections, s)
	}

	return strings.Join(sections, "\n")
}

// renderListCounts renders a bar per board list
func (v StatsView) renderListCounts() string {
	t := theme.Current.Theme

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Render("Games per List"))

	counts := make(map[model.Status]int)
	for _, it := range v.items {
		counts[it.Status]++
	}

	maxCount := 1
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	barMaxWidth := 30
	for _, list := range model.Lists() {
		count := counts[list.ID]
		barWidth := int(float64(count) / float64(maxCount) * float64(barMaxWidth))
		if barWidth < 1 && count > 0 {
			barWidth = 1
		}
		bar := lipgloss.NewStyle().Foreground(t.StatusColor(list.ID)).Render(strings.Repeat("█", barWidth))
		lines = append(lines, fmt.Sprintf("%-14s %s %d", list.Name, bar, count))
	}

	return strings.Join(lines, "\n")
}

// renderPlatformCounts renders a bar per platform, colored with the
// platform's own color.
func (v StatsView) renderPlatformCounts() string {
	t := theme.Current.Theme

	counts := make(map[string]int)
	colors := make(map[string]string)
	for _, it := range v.items {
		if it.Platform == "" {
			continue
		}
		counts[it.Platform]++
		if it.PlatformColor != "" {
			colors[it.Platform] = it.PlatformColor
		}
	}
	if len(counts) == 0 {
		return ""
	}

	names := make([]string, 0, len(counts))
	maxCount := 1
	for name, c := range counts {
		names = append(names, name)
		if c > maxCount {
			maxCount = c
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Render("Games per Platform"))

	barMaxWidth := 30
	for _, name := range names {
		count := counts[name]
		barWidth := int(float64(count) / float64(maxCount) * float64(barMaxWidth))
		if barWidth < 1 {
			barWidth = 1
		}
		barColor := t.Info
		if c, ok := colors[name]; ok {
			barColor = lipgloss.Color(c)
		}
		bar := lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", barWidth))
		lines = append(lines, fmt.Sprintf("%-14s %s %d", name, bar, count))
	}

	return strings.Join(lines, "\n")
}

// renderCompletionsByYear tallies completion dates (dd-mm-yyyy) per year
func (v StatsView) renderCompletionsByYear() string {
	t := theme.Current.Theme

	counts := make(map[int]int)
	for _, it := range v.items {
		if !it.IsCompleted() || it.CompletionDate == "" {
			continue
		}
		d, err := time.Parse("02-01-2006", it.CompletionDate)
		if err != nil {
			continue
		}
		counts[d.Year()]++
	}
	if len(counts) == 0 {
		return ""
	}

	years := make([]int, 0, len(counts))
	maxCount := 1
	for y, c := range counts {
		years = append(years, y)
		if c > maxCount {
			maxCount = c
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Render("Completions per Year"))

	barMaxWidth := 30
	for _, y := range years {
		count := counts[y]
		barWidth := int(float64(count) / float64(maxCount) * float64(barMaxWidth))
		if barWidth < 1 {
			barWidth = 1
		}
		bar := lipgloss.NewStyle().Foreground(t.Success).Render(strings.Repeat("█", barWidth))
		lines = append(lines, fmt.Sprintf("%-14d %s %d", y, bar, count))
	}

	return strings.Join(lines, "\n")
}

// IsInputMode returns whether the view is in input mode
func (v StatsView) IsInputMode() bool {
	return false
}
