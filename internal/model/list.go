package model

// StatusList describes one board column
type StatusList struct {
	ID   Status
	Name string
}

// Lists returns the board columns in display order
func Lists() []StatusList {
	return []StatusList{
		{ID: StatusUpcoming, Name: "Ser frem til"},
		{ID: StatusWillPlay, Name: "Vil spille"},
		{ID: StatusPlaying, Name: "Spiller nu"},
		{ID: StatusCompleted, Name: "Gennemført"},
		{ID: StatusPaused, Name: "På pause"},
		{ID: StatusDropped, Name: "Droppet"},
	}
}

// ListIndex returns the display position of a status, or len(Lists())
// for unknown statuses so they sort last.
func ListIndex(s Status) int {
	for i, l := range Lists() {
		if l.ID == s {
			return i
		}
	}
	return len(Lists())
}

// ListName returns the display name for a status
func ListName(s Status) string {
	for _, l := range Lists() {
		if l.ID == s {
			return l.Name
		}
	}
	return string(s)
}
