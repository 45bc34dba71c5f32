// Package drag tracks the lifecycle of a mouse drag on the board: which
// card is in flight, where the insertion indicator sits and whether an
// edge band is autoscrolling. It is pure state; the view feeds it mouse
// events and reads it back each frame, and a drop hands the resolved
// intent to the tracker.
package drag

// State is the drag lifecycle phase
type State int

const (
	StateIdle State = iota
	StateDragging
)

// ScrollDir is the active autoscroll direction. Only one direction can be
// active at a time.
type ScrollDir int

const (
	ScrollNone ScrollDir = iota
	ScrollUp
	ScrollDown
)

// DefaultEdgeBand is the height, in rows, of the viewport bands that
// trigger autoscroll while dragging.
const DefaultEdgeBand = 2

// Indicator marks the single insertion point shown while dragging: the
// dragged card will land below (or above) the target.
type Indicator struct {
	TargetID string
	Below    bool
}

// Drop is the resolved outcome handed to the caller when a drag ends over
// the board. TargetID is empty when the drop landed on an empty list area
// and the card should go to the bottom of that list.
type Drop struct {
	ItemID   string
	TargetID string
	Below    bool
}

// Machine is the drag state machine. Zero value is usable and idle.
type Machine struct {
	state     State
	itemID    string
	indicator Indicator
	hovering  bool
	scroll    ScrollDir
	edgeBand  int
}

// New creates a machine with the given autoscroll band height; zero or
// negative picks the default.
func New(edgeBand int) *Machine {
	if edgeBand <= 0 {
		edgeBand = DefaultEdgeBand
	}
	return &Machine{edgeBand: edgeBand}
}

// State returns the current phase
func (m *Machine) State() State { return m.state }

// Dragging reports whether a card is in flight
func (m *Machine) Dragging() bool { return m.state == StateDragging }

// ItemID returns the card in flight, or "" when idle
func (m *Machine) ItemID() string { return m.itemID }

// Start begins a drag on itemID. Ignored while another drag is in flight
// or when the id is empty.
func (m *Machine) Start(itemID string) {
	if m.state != StateIdle || itemID == "" {
		return
	}
	m.state = StateDragging
	m.itemID = itemID
}

// Hover records the insertion intent over targetID: below when the cursor
// sat past the card's midpoint. The previous indicator is replaced, so at
// most one card carries one. Hovering the dragged card itself keeps the
// last indicator.
func (m *Machine) Hover(targetID string, below bool) {
	if m.state != StateDragging || targetID == "" || targetID == m.itemID {
		return
	}
	m.indicator = Indicator{TargetID: targetID, Below: below}
	m.hovering = true
}

// Indicator returns the current insertion marker, if any
func (m *Machine) Indicator() (Indicator, bool) {
	if !m.hovering {
		return Indicator{}, false
	}
	return m.indicator, true
}

// Autoscroll updates the scroll direction from the cursor's row within a
// viewport of the given height. Inside the top band scrolls up, inside the
// bottom band scrolls down, anywhere between stops. Entering the opposite
// band switches direction directly.
func (m *Machine) Autoscroll(y, height int) ScrollDir {
	if m.state != StateDragging || height <= 0 {
		m.scroll = ScrollNone
		return m.scroll
	}

	band := m.edgeBand
	if m.edgeBand == 0 {
		band = DefaultEdgeBand
	}
	switch {
	case y < band:
		m.scroll = ScrollUp
	case y >= height-band:
		m.scroll = ScrollDown
	default:
		m.scroll = ScrollNone
	}
	return m.scroll
}

// Scroll returns the active autoscroll direction
func (m *Machine) Scroll() ScrollDir { return m.scroll }

// Drop ends the drag and returns the resolved intent: the last hover
// indicator when there was one, otherwise only the card id, meaning the
// caller drops onto the list under the cursor. All visual state resets
// whether or not the caller can act on the result.
func (m *Machine) Drop() (Drop, bool) {
	if m.state != StateDragging {
		return Drop{}, false
	}
	d := Drop{ItemID: m.itemID}
	if m.hovering {
		d.TargetID = m.indicator.TargetID
		d.Below = m.indicator.Below
	}
	m.reset()
	return d, true
}

// Cancel abandons the drag without producing a drop. Idempotent.
func (m *Machine) Cancel() {
	m.reset()
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.itemID = ""
	m.indicator = Indicator{}
	m.hovering = false
	m.scroll = ScrollNone
}
