package model

// Status identifies the board list an item belongs to
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusWillPlay  Status = "willplay"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
	StatusDropped   Status = "dropped"
)

// Item represents a tracked game
type Item struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Status         Status `json:"status"`
	Order          int    `json:"order"`
	Platform       string `json:"platform,omitempty"`
	PlatformColor  string `json:"platformColor,omitempty"`
	Favorite       bool   `json:"favorite"`
	CompletionDate string `json:"completionDate,omitempty"`
	UserID         string `json:"userId"`
}

// IsCompleted returns true if the item sits in the completed list
func (i *Item) IsCompleted() bool {
	return i.Status == StatusCompleted
}

// IsValidStatus reports whether s is one of the six board statuses
func IsValidStatus(s Status) bool {
	switch s {
	case StatusUpcoming, StatusWillPlay, StatusPlaying,
		StatusCompleted, StatusPaused, StatusDropped:
		return true
	}
	return false
}
