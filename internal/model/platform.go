package model

// Platform represents a gaming platform tag (Switch, PC, PS5, ...).
// Items carry a denormalized copy of Name and Color; changing a platform's
// color fans out to every item referencing it by name.
type Platform struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	UserID string `json:"userId"`
}
