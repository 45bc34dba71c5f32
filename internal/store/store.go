// Package store persists items and platforms in a per-owner document store
// and pushes incremental change events to watchers after each batch commit.
package store

import (
	"context"
	"errors"

	"github.com/Mikkelka/gametrack/internal/model"
)

// ErrNotFound is returned when a document id does not exist.
var ErrNotFound = errors.New("document not found")

// ChangeKind tags an incremental change event
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeModified
	ChangeRemoved
)

// String returns the wire name of the change kind
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is one incremental event delivered to watchers. For removals only
// the item's ID and UserID are populated.
type Change struct {
	Kind ChangeKind
	Item model.Item
}

// Store is the document store contract the sync core writes against.
// Batched item writes go through Apply; platform writes are direct.
type Store interface {
	QueryByOwner(ctx context.Context, userID string) ([]model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)

	// Apply commits a batch of operations atomically. Callers enforce the
	// batch-size ceiling; Apply commits whatever it is given as one unit.
	Apply(ctx context.Context, ops []model.Op) error

	// Watch registers fn for change-event batches scoped to one owner.
	// The returned func cancels the registration and is idempotent.
	Watch(userID string, fn func([]Change)) (cancel func())

	Platforms(ctx context.Context, userID string) ([]model.Platform, error)
	AddPlatform(ctx context.Context, p model.Platform) (*model.Platform, error)
	SetPlatformColor(ctx context.Context, id, color string) error
	DeletePlatform(ctx context.Context, id string) error

	Close() error
}
