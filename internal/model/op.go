package model

// OpKind discriminates pending write operations
type OpKind int

const (
	OpSet OpKind = iota
	OpUpdate
	OpDelete
)

// String returns the wire name of the operation kind
func (k OpKind) String() string {
	switch k {
	case OpSet:
		return "set"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ItemPatch is a partial update applied to a stored item. Nil fields are
// left untouched.
type ItemPatch struct {
	Title          *string `json:"title,omitempty"`
	Status         *Status `json:"status,omitempty"`
	Order          *int    `json:"order,omitempty"`
	Platform       *string `json:"platform,omitempty"`
	PlatformColor  *string `json:"platformColor,omitempty"`
	Favorite       *bool   `json:"favorite,omitempty"`
	CompletionDate *string `json:"completionDate,omitempty"`
}

// Apply merges the patch into an item
func (p ItemPatch) Apply(item *Item) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Order != nil {
		item.Order = *p.Order
	}
	if p.Platform != nil {
		item.Platform = *p.Platform
	}
	if p.PlatformColor != nil {
		item.PlatformColor = *p.PlatformColor
	}
	if p.Favorite != nil {
		item.Favorite = *p.Favorite
	}
	if p.CompletionDate != nil {
		item.CompletionDate = *p.CompletionDate
	}
}

// Op is one pending write queued for the next batch commit
type Op struct {
	Kind  OpKind
	ID    string
	Item  *Item     // set payload
	Patch ItemPatch // update payload
}

// SetOp queues a full document write
func SetOp(item Item) Op {
	return Op{Kind: OpSet, ID: item.ID, Item: &item}
}

// UpdateOp queues a partial document update
func UpdateOp(id string, patch ItemPatch) Op {
	return Op{Kind: OpUpdate, ID: id, Patch: patch}
}

// DeleteOp queues a document removal
func DeleteOp(id string) Op {
	return Op{Kind: OpDelete, ID: id}
}
