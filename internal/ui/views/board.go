package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mikkelka/gametrack/internal/drag"
	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/Mikkelka/gametrack/internal/order"
	"github.com/Mikkelka/gametrack/internal/settings"
	"github.com/Mikkelka/gametrack/internal/tracker"
	"github.com/Mikkelka/gametrack/internal/ui/theme"
)

// Local message types for the board view
type boardErrorMsg struct{ err error }

type boardPlatformsLoadedMsg struct {
	platforms []model.Platform
}

// BoardMode represents the current input mode
type BoardMode int

const (
	BoardModeNormal BoardMode = iota
	BoardModeAdd
	BoardModeEdit
	BoardModeSearch
	BoardModeConfirmDelete
)

// rootHeaderRows is the number of rows the root header occupies above the
// board content; mouse coordinates arrive window-relative.
const rootHeaderRows = 1

// BoardView is the kanban board over the six game lists
type BoardView struct {
	tracker  *tracker.Service
	settings *settings.Settings
	width    int
	height   int

	// Full sorted item sequence, pushed from the cache
	items []model.Item

	// Navigation state
	currentColumn int
	cursorRow     int
	columnScroll  map[model.Status]int

	// Mouse drag
	drag        *drag.Machine
	pressedCard string

	// Status message
	statusMsg string

	// Input mode
	mode      BoardMode
	textInput textinput.Model

	// For editing
	editItemID string

	// For delete confirmation
	deleteItemID string

	// Platform selector
	selectingPlatform bool
	selectorCursor    int
	platforms         []model.Platform

	// Filtering
	searchFilter string
}

// NewBoardView creates a new board view
func NewBoardView(svc *tracker.Service, st *settings.Settings) BoardView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return BoardView{
		tracker:      svc,
		settings:     st,
		columnScroll: make(map[model.Status]int),
		drag:         drag.New(0),
		textInput:    ti,
	}
}

// Init initializes the board view
func (v BoardView) Init() tea.Cmd {
	return v.loadPlatforms()
}

// SetSize sets the view dimensions
func (v BoardView) SetSize(width, height int) BoardView {
	v.width = width
	v.height = height
	return v
}

// SetItems replaces the displayed sequence. Called by the root model
// whenever the cache pushes a refresh.
func (v BoardView) SetItems(items []model.Item) BoardView {
	v.items = items
	v.clampCursor()
	return v
}

// loadPlatforms fetches the platform list for the selector
func (v BoardView) loadPlatforms() tea.Cmd {
	svc := v.tracker
	return func() tea.Msg {
		platforms, err := svc.Platforms(context.Background())
		if err != nil {
			return boardErrorMsg{err: err}
		}
		return boardPlatformsLoadedMsg{platforms: platforms}
	}
}

// visibleLists returns the board columns after the visibility toggles
func (v BoardView) visibleLists() []model.StatusList {
	return v.settings.VisibleLists(model.Lists())
}

// Update handles messages
func (v BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardPlatformsLoadedMsg:
		v.platforms = msg.platforms
		return v, nil

	case boardErrorMsg:
		v.statusMsg = msg.err.Error()
		return v, nil

	case tea.MouseMsg:
		if v.mode == BoardModeNormal && !v.selectingPlatform {
			return v.handleMouse(msg)
		}
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case BoardModeAdd:
			return v.handleAddMode(msg)
		case BoardModeEdit:
			return v.handleEditMode(msg)
		case BoardModeSearch:
			return v.handleSearchMode(msg)
		case BoardModeConfirmDelete:
			return v.handleConfirmDeleteMode(msg)
		default:
			if v.selectingPlatform {
				return v.handlePlatformSelector(msg)
			}
			return v.handleNormalMode(msg)
		}
	}

	if v.mode == BoardModeAdd || v.mode == BoardModeEdit || v.mode == BoardModeSearch {
		var cmd tea.Cmd
		v.textInput, cmd = v.textInput.Update(msg)
		return v, cmd
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v BoardView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lists := v.visibleLists()
	if len(lists) == 0 {
		return v, nil
	}

	v.statusMsg = ""

	switch msg.String() {
	// Column navigation
	case "h", "left":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.clampCursor()
		}
		return v, nil

	case "l", "right":
		if v.currentColumn < len(lists)-1 {
			v.currentColumn++
			v.clampCursor()
		}
		return v, nil

	// Row navigation
	case "j", "down":
		col := v.columnItems(v.currentList())
		if v.cursorRow < len(col)-1 {
			v.cursorRow++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursorRow > 0 {
			v.cursorRow--
			v.ensureCursorVisible()
		}
		return v, nil

	case "g":
		v.cursorRow = 0
		v.columnScroll[v.currentList()] = 0
		return v, nil

	case "G":
		col := v.columnItems(v.currentList())
		if len(col) > 0 {
			v.cursorRow = len(col) - 1
			v.ensureCursorVisible()
		}
		return v, nil

	// Reorder within the column
	case "J":
		return v, v.moveWithinColumn(order.Down)

	case "K":
		return v, v.moveWithinColumn(order.Up)

	// Move across columns
	case "H":
		return v, v.moveAcrossColumns(-1)

	case "L":
		return v, v.moveAcrossColumns(1)

	// Add item
	case "a":
		v.mode = BoardModeAdd
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New game..."
		v.textInput.Focus()
		return v, nil

	// Edit item
	case "enter":
		if item, ok := v.currentItem(); ok {
			v.mode = BoardModeEdit
			v.editItemID = item.ID
			v.textInput.SetValue(item.Title)
			v.textInput.Placeholder = ""
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}
		return v, nil

	// Delete item
	case "d":
		if item, ok := v.currentItem(); ok {
			v.deleteItemID = item.ID
			v.mode = BoardModeConfirmDelete
		}
		return v, nil

	// Toggle favorite
	case "f":
		if item, ok := v.currentItem(); ok {
			svc := v.tracker
			id := item.ID
			return v, func() tea.Msg {
				if err := svc.ToggleFavorite(id); err != nil {
					return boardErrorMsg{err: err}
				}
				return nil
			}
		}
		return v, nil

	// Mark completed today
	case "c":
		if item, ok := v.currentItem(); ok {
			svc := v.tracker
			id := item.ID
			return v, func() tea.Msg {
				if err := svc.SetCompletionDate(id); err != nil {
					return boardErrorMsg{err: err}
				}
				return nil
			}
		}
		return v, nil

	// Assign platform
	case "p":
		if _, ok := v.currentItem(); ok && len(v.platforms) > 0 {
			v.selectingPlatform = true
			v.selectorCursor = 0
		}
		return v, nil

	// Search
	case "/":
		v.mode = BoardModeSearch
		v.textInput.SetValue(v.searchFilter)
		v.textInput.Placeholder = "Search..."
		v.textInput.Focus()
		return v, nil

	// Clear filters
	case "esc":
		if v.searchFilter != "" {
			v.searchFilter = ""
			v.statusMsg = "Filter cleared"
		}
		return v, nil
	}

	return v, nil
}

// handleMouse drives the drag state machine from mouse events
func (v BoardView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := msg.X, msg.Y-rootHeaderRows

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return v, nil
		}
		if id, _, ok := v.cardAt(x, y); ok {
			v.pressedCard = id
		}
		return v, nil

	case tea.MouseActionMotion:
		if v.pressedCard == "" {
			return v, nil
		}
		v.drag.Start(v.pressedCard)
		if id, below, ok := v.cardAt(x, y); ok {
			v.drag.Hover(id, below)
		}
		// Edge-band autoscroll moves the hovered column one row per event
		if dir := v.drag.Autoscroll(y, v.height); dir != drag.ScrollNone {
			if status, ok := v.listAt(x); ok {
				v.scrollColumn(status, dir)
			}
		}
		return v, nil

	case tea.MouseActionRelease:
		d, ok := v.drag.Drop()
		if !ok {
			v.pressedCard = ""
			return v, nil
		}
		v.pressedCard = ""

		svc := v.tracker
		if d.TargetID != "" && d.TargetID != d.ItemID {
			dir := order.Up
			if d.Below {
				dir = order.Down
			}
			moved, target := d.ItemID, d.TargetID
			return v, func() tea.Msg {
				if err := svc.MoveItem(moved, target, dir); err != nil {
					return boardErrorMsg{err: err}
				}
				return nil
			}
		}

		// Dropped on an empty list area
		if status, ok := v.listAt(x); ok {
			moved := d.ItemID
			return v, func() tea.Msg {
				if err := svc.MoveToList(moved, status); err != nil {
					return boardErrorMsg{err: err}
				}
				return nil
			}
		}
		return v, nil
	}

	return v, nil
}

// handleAddMode handles keys in add mode
func (v BoardView) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" {
			v.mode = BoardModeNormal
			v.textInput.Blur()
			svc := v.tracker
			status := v.currentList()
			return v, func() tea.Msg {
				if _, err := svc.SaveItem(model.Item{Title: title, Status: status}); err != nil {
					return boardErrorMsg{err: err}
				}
				return nil
			}
		}
		return v, nil
	case "esc":
		v.mode = BoardModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleEditMode handles keys in edit mode
func (v BoardView) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" && v.editItemID != "" {
			v.mode = BoardModeNormal
			v.textInput.Blur()
			itemID := v.editItemID
			v.editItemID = ""

			var edited *model.Item
			for i := range v.items {
				if v.items[i].ID == itemID {
					edited = &v.items[i]
					break
				}
			}
			if edited == nil {
				return v, nil
			}
			item := *edited
			item.Title = title
			svc := v.tracker
			return v, func() tea.Msg {
				if _, err := svc.SaveItem(item); err != nil {
					return boardErrorMsg{err: err}
				}
				return nil
			}
		}
		return v, nil
	case "esc":
		v.mode = BoardModeNormal
		v.textInput.Blur()
		v.editItemID = ""
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleSearchMode handles keys in search mode
func (v BoardView) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		v.searchFilter = strings.TrimSpace(v.textInput.Value())
		v.mode = BoardModeNormal
		v.textInput.Blur()
		v.cursorRow = 0
		for k := range v.columnScroll {
			v.columnScroll[k] = 0
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleConfirmDeleteMode handles keys in delete confirmation mode
func (v BoardView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = BoardModeNormal
		itemID := v.deleteItemID
		v.deleteItemID = ""
		svc := v.tracker
		return v, func() tea.Msg {
			if err := svc.DeleteItem(itemID); err != nil {
				return boardErrorMsg{err: err}
			}
			return nil
		}
	case "n", "N", "esc":
		v.mode = BoardModeNormal
		v.deleteItemID = ""
		return v, nil
	}
	return v, nil
}

// handlePlatformSelector handles platform selection
func (v BoardView) handlePlatformSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.selectorCursor < len(v.platforms)-1 {
			v.selectorCursor++
		}
	case "k", "up":
		if v.selectorCursor > 0 {
			v.selectorCursor--
		}
	case "enter":
		if v.selectorCursor < len(v.platforms) {
			platform := v.platforms[v.selectorCursor]
			v.selectingPlatform = false

			if item, ok := v.currentItem(); ok {
				svc := v.tracker
				itemID := item.ID
				return v, func() tea.Msg {
					if err := svc.ChangePlatform(context.Background(), itemID, platform.ID); err != nil {
						return boardErrorMsg{err: err}
					}
					return nil
				}
			}
		}
	case "esc":
		v.selectingPlatform = false
	}
	return v, nil
}

// moveWithinColumn reorders the selected card against its column neighbor
func (v BoardView) moveWithinColumn(dir order.Direction) tea.Cmd {
	col := v.columnItems(v.currentList())
	if len(col) == 0 || v.cursorRow >= len(col) {
		return nil
	}

	var targetIdx int
	if dir == order.Down {
		targetIdx = v.cursorRow + 1
	} else {
		targetIdx = v.cursorRow - 1
	}
	if targetIdx < 0 || targetIdx >= len(col) {
		return nil
	}

	moved, target := col[v.cursorRow].ID, col[targetIdx].ID
	if dir == order.Down {
		v.cursorRow++
	} else {
		v.cursorRow--
	}
	v.ensureCursorVisible()

	svc := v.tracker
	return func() tea.Msg {
		if err := svc.MoveItem(moved, target, dir); err != nil {
			return boardErrorMsg{err: err}
		}
		return nil
	}
}

// moveAcrossColumns sends the selected card to the bottom of an adjacent
// visible list.
func (v BoardView) moveAcrossColumns(delta int) tea.Cmd {
	lists := v.visibleLists()
	item, ok := v.currentItem()
	if !ok {
		return nil
	}

	newColumn := v.currentColumn + delta
	if newColumn < 0 || newColumn >= len(lists) {
		return nil
	}

	status := lists[newColumn].ID
	v.currentColumn = newColumn
	v.clampCursor()

	svc := v.tracker
	moved := item.ID
	return func() tea.Msg {
		if err := svc.MoveToList(moved, status); err != nil {
			return boardErrorMsg{err: err}
		}
		return nil
	}
}

// currentList returns the status of the focused column
func (v BoardView) currentList() model.Status {
	lists := v.visibleLists()
	if len(lists) == 0 {
		return model.StatusWillPlay
	}
	if v.currentColumn >= len(lists) {
		return lists[len(lists)-1].ID
	}
	return lists[v.currentColumn].ID
}

// currentItem returns the card under the cursor
func (v BoardView) currentItem() (model.Item, bool) {
	col := v.columnItems(v.currentList())
	if len(col) == 0 || v.cursorRow >= len(col) {
		return model.Item{}, false
	}
	return col[v.cursorRow], true
}

// columnItems returns the cards of one list after the search filter, in
// display order.
func (v BoardView) columnItems(status model.Status) []model.Item {
	var out []model.Item
	searchLower := strings.ToLower(v.searchFilter)
	for _, it := range v.items {
		if it.Status != status {
			continue
		}
		if searchLower != "" && !strings.Contains(strings.ToLower(it.Title), searchLower) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// clampCursor ensures cursor is valid for the focused column
func (v *BoardView) clampCursor() {
	lists := v.visibleLists()
	if v.currentColumn >= len(lists) && len(lists) > 0 {
		v.currentColumn = len(lists) - 1
	}
	col := v.columnItems(v.currentList())
	if v.cursorRow >= len(col) {
		if len(col) > 0 {
			v.cursorRow = len(col) - 1
		} else {
			v.cursorRow = 0
		}
	}
	v.ensureCursorVisible()
}

// ensureCursorVisible adjusts scroll to keep cursor in view
func (v *BoardView) ensureCursorVisible() {
	visibleItems := v.visibleItemCount()
	if visibleItems <= 0 {
		visibleItems = 5
	}

	status := v.currentList()
	if v.cursorRow >= v.columnScroll[status]+visibleItems {
		v.columnScroll[status] = v.cursorRow - visibleItems + 1
	}
	if v.cursorRow < v.columnScroll[status] {
		v.columnScroll[status] = v.cursorRow
	}
}

// scrollColumn nudges a column's scroll offset during drag autoscroll
func (v *BoardView) scrollColumn(status model.Status, dir drag.ScrollDir) {
	offset := v.columnScroll[status]
	switch dir {
	case drag.ScrollUp:
		if offset > 0 {
			v.columnScroll[status] = offset - 1
		}
	case drag.ScrollDown:
		max := len(v.columnItems(status)) - v.visibleItemCount()
		if max > 0 && offset < max {
			v.columnScroll[status] = offset + 1
		}
	}
}

// visibleItemCount returns how many cards fit in the column height
func (v BoardView) visibleItemCount() int {
	// Border takes 2 lines, header row 1, footer hints 2, scroll
	// indicators 2.
	availableHeight := v.height - 7
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// layout computes the responsive column window: which visible lists are on
// screen and how wide each column is.
func (v BoardView) layout() (startCol, endCol, colWidth int) {
	lists := v.visibleLists()
	numVisibleCols := len(lists)
	switch {
	case v.width < 90:
		numVisibleCols = 2
	case v.width < 160:
		numVisibleCols = 3
	}
	if numVisibleCols > len(lists) {
		numVisibleCols = len(lists)
	}
	if numVisibleCols < 1 {
		numVisibleCols = 1
	}

	// Page so the focused column is on screen
	startCol = (v.currentColumn / numVisibleCols) * numVisibleCols
	endCol = startCol + numVisibleCols
	if endCol > len(lists) {
		endCol = len(lists)
	}

	colWidth = (v.width - 4) / numVisibleCols
	if colWidth < 22 {
		colWidth = 22
	}
	return startCol, endCol, colWidth
}

// cardAt resolves a window position to the card under it. below is true
// when the position sits past the last card of a column, meaning the drop
// lands underneath it.
func (v BoardView) cardAt(x, y int) (id string, below bool, ok bool) {
	status, colItems, rowInCol, found := v.hitColumn(x, y)
	if !found {
		return "", false, false
	}

	scroll := v.columnScroll[status]
	if scroll > 0 {
		// top scroll indicator occupies the first content row
		rowInCol--
	}
	if rowInCol < 0 {
		return "", false, false
	}

	idx := scroll + rowInCol
	if idx < len(colItems) {
		return colItems[idx].ID, false, true
	}
	if len(colItems) > 0 && idx >= len(colItems) {
		return colItems[len(colItems)-1].ID, true, true
	}
	return "", false, false
}

// listAt resolves a window column position to a board list
func (v BoardView) listAt(x int) (model.Status, bool) {
	lists := v.visibleLists()
	startCol, endCol, colWidth := v.layout()

	idx := startCol + x/(colWidth+2)
	if idx < startCol || idx >= endCol || idx >= len(lists) {
		return "", false
	}
	return lists[idx].ID, true
}

// hitColumn maps a position to a column and the content row within it
func (v BoardView) hitColumn(x, y int) (model.Status, []model.Item, int, bool) {
	status, ok := v.listAt(x)
	if !ok {
		return "", nil, 0, false
	}

	// Row 0 is the column header, row 1 the top border; content starts
	// at row 2.
	rowInCol := y - 2
	if rowInCol < 0 || rowInCol >= v.visibleItemCount()+2 {
		return "", nil, 0, false
	}
	return status, v.columnItems(status), rowInCol, true
}

// View renders the board
func (v BoardView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles
	lists := v.visibleLists()
	if len(lists) == 0 {
		return styles.Panel.Render("All lists hidden; enable some in settings (3)")
	}

	startCol, endCol, colWidth := v.layout()
	indicator, hasIndicator := v.drag.Indicator()

	// Column headers
	headerStyle := func(s model.Status, active bool) lipgloss.Style {
		st := lipgloss.NewStyle().
			Bold(true).
			Foreground(t.StatusColor(s)).
			Width(colWidth).
			Align(lipgloss.Center)
		if active {
			st = st.Background(t.Highlight)
		}
		return st
	}

	columnStyle := lipgloss.NewStyle().
		Width(colWidth).
		Height(v.height - 3).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	var headers []string
	for i := startCol; i < endCol; i++ {
		list := lists[i]
		items := v.columnItems(list.ID)
		header := fmt.Sprintf("%s (%d)", list.Name, len(items))
		headers = append(headers, headerStyle(list.ID, i == v.currentColumn).Render(header))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headers...)

	// Render columns
	visibleItems := v.visibleItemCount()
	var cols []string
	for i := startCol; i < endCol; i++ {
		list := lists[i]
		items := v.columnItems(list.ID)
		isActiveCol := i == v.currentColumn
		scrollOffset := v.columnScroll[list.ID]

		startIdx := scrollOffset
		endIdx := scrollOffset + visibleItems
		if startIdx > len(items) {
			startIdx = len(items)
		}
		if endIdx > len(items) {
			endIdx = len(items)
		}

		var rows []string
		if scrollOffset > 0 {
			rows = append(rows, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↑ %d more", scrollOffset)))
		}

		for j := startIdx; j < endIdx; j++ {
			item := items[j]
			isSelected := isActiveCol && j == v.cursorRow && !v.drag.Dragging()
			rows = append(rows, v.renderCard(item, colWidth, isSelected, indicator, hasIndicator))
		}

		if endIdx < len(items) {
			rows = append(rows, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↓ %d more", len(items)-endIdx)))
		}

		content := strings.Join(rows, "\n")
		if len(items) == 0 {
			content = lipgloss.NewStyle().
				Foreground(t.Subtle).
				Italic(true).
				Render("(tom)")
		}

		cs := columnStyle
		if isActiveCol {
			cs = cs.BorderForeground(t.Primary)
		}
		cols = append(cols, cs.Render(content))
	}
	columnsRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	footer := v.renderFooter(colWidth)
	return lipgloss.JoinVertical(lipgloss.Left, headerRow, columnsRow, footer)
}

// renderCard renders one card line
func (v BoardView) renderCard(item model.Item, colWidth int, selected bool, ind drag.Indicator, hasInd bool) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	cardStyle := styles.CardNormal.Width(colWidth - 4)
	if selected {
		cardStyle = styles.CardSelected.Width(colWidth - 4)
	}
	if v.drag.Dragging() && v.drag.ItemID() == item.ID {
		cardStyle = styles.CardDragged.Width(colWidth - 4)
	}

	// Insertion indicator borders the hovered card on the landing side
	if hasInd && ind.TargetID == item.ID {
		if ind.Below {
			cardStyle = cardStyle.
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(t.Primary)
		} else {
			cardStyle = cardStyle.
				Border(lipgloss.NormalBorder(), true, false, false, false).
				BorderForeground(t.Primary)
		}
	}

	var marks string
	if item.Favorite {
		marks += lipgloss.NewStyle().Foreground(t.Favorite).Render("★ ")
	}

	var platformStr string
	platformLen := 0
	if item.Platform != "" {
		color := t.Secondary
		if item.PlatformColor != "" {
			color = lipgloss.Color(item.PlatformColor)
		}
		platformStr = lipgloss.NewStyle().Foreground(color).Render("[" + item.Platform + "] ")
		platformLen = len(item.Platform) + 3
	}

	var dateStr string
	dateLen := 0
	if item.CompletionDate != "" && item.IsCompleted() {
		dateStr = lipgloss.NewStyle().Foreground(t.Subtle).Render(" " + item.CompletionDate)
		dateLen = len(item.CompletionDate) + 1
	}

	title := item.Title
	maxTitleLen := colWidth - 8 - platformLen - dateLen
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	return cardStyle.Render(marks + platformStr + title + dateStr)
}

// renderFooter renders the mode-dependent footer line
func (v BoardView) renderFooter(colWidth int) string {
	t := theme.Current.Theme

	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(v.width - 4)

	switch v.mode {
	case BoardModeAdd:
		return inputStyle.Render("Add: " + v.textInput.View())
	case BoardModeEdit:
		return inputStyle.Render("Edit: " + v.textInput.View())
	case BoardModeSearch:
		return inputStyle.Render("Search: " + v.textInput.View())
	case BoardModeConfirmDelete:
		title := ""
		if item, ok := v.currentItem(); ok {
			title = item.Title
		}
		return lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Render(fmt.Sprintf("Delete '%s'? (y/n)", title))
	}

	if v.selectingPlatform {
		return v.renderPlatformSelector()
	}

	if v.statusMsg != "" {
		return lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg)
	}

	var filterStatus string
	if v.searchFilter != "" {
		filterStatus = lipgloss.NewStyle().Foreground(t.Info).
			Render(fmt.Sprintf("[Search: %s] ", v.searchFilter))
	}

	hints := "h/l: list • j/k: nav • J/K: reorder • H/L: move • a: add • f: fav • c: done • d: del • /: search"
	if filterStatus != "" {
		hints = filterStatus + "esc: clear"
	}
	return lipgloss.NewStyle().Foreground(t.Subtle).Render(hints)
}

// renderPlatformSelector renders the platform selector popup
func (v BoardView) renderPlatformSelector() string {
	t := theme.Current.Theme

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Select Platform:"))

	for i, p := range v.platforms {
		style := lipgloss.NewStyle()
		if i == v.selectorCursor {
			style = style.Background(t.Highlight).Foreground(t.Foreground)
		}
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		lines = append(lines, style.Render(fmt.Sprintf(" %s %s", colorDot, p.Name)))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Render("j/k: navigate • enter: select • esc: cancel"))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// IsInputMode returns whether the view is in input mode
func (v BoardView) IsInputMode() bool {
	return v.mode == BoardModeAdd ||
		v.mode == BoardModeEdit ||
		v.mode == BoardModeSearch ||
		v.mode == BoardModeConfirmDelete ||
		v.selectingPlatform
}
