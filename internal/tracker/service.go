// Package tracker is the core service behind the board. Every mutation
// funnels through here: it stamps ownership, updates the cache
// optimistically and enqueues the matching document writes for the next
// batched flush. Platform records are small and written straight through.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Mikkelka/gametrack/internal/auth"
	"github.com/Mikkelka/gametrack/internal/cache"
	"github.com/Mikkelka/gametrack/internal/logger"
	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/Mikkelka/gametrack/internal/order"
	"github.com/Mikkelka/gametrack/internal/queue"
	"github.com/Mikkelka/gametrack/internal/store"
)

var (
	// ErrUnauthenticated is returned by every mutating operation when no
	// user is signed in. Callers treat it as a no-op, not a crash.
	ErrUnauthenticated = errors.New("no user signed in")

	ErrItemNotFound     = errors.New("item not found")
	ErrPlatformNotFound = errors.New("platform not found")
	ErrInvalidStatus    = errors.New("invalid status")
)

// completionDateLayout renders dates as dd-mm-yyyy
const completionDateLayout = "02-01-2006"

// Service wires the store, cache, queue and auth provider into the board
// operations the UI calls.
type Service struct {
	store store.Store
	cache *cache.Cache
	queue *queue.Queue
	auth  auth.Provider
	log   *logger.Logger
	now   func() time.Time
}

// Config collects the service dependencies.
type Config struct {
	Store store.Store
	Cache *cache.Cache
	Queue *queue.Queue
	Auth  auth.Provider
	Log   *logger.Logger

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// New creates the service
func New(cfg Config) *Service {
	if cfg.Log == nil {
		cfg.Log = logger.NewDiscard()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		store: cfg.Store,
		cache: cfg.Cache,
		queue: cfg.Queue,
		auth:  cfg.Auth,
		log:   cfg.Log,
		now:   cfg.Now,
	}
}

// requireUser returns the signed-in owner id or logs and fails
func (s *Service) requireUser(op string) (string, error) {
	userID, ok := s.auth.CurrentUserID()
	if !ok {
		s.log.Error("operation requires a signed-in user", "op", op)
		return "", ErrUnauthenticated
	}
	return userID, nil
}

// SaveItem stamps ownership, assigns an id to new items, normalizes the
// order and queues a full document write. The cache is updated
// immediately so the board repaints without waiting for the flush.
func (s *Service) SaveItem(item model.Item) (*model.Item, error) {
	userID, err := s.requireUser("save item")
	if err != nil {
		return nil, err
	}

	item.UserID = userID
	if !model.IsValidStatus(item.Status) {
		item.Status = model.StatusWillPlay
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
		// new items land at the bottom of their list
		item.Order = s.countInStatus(item.Status)
	}
	if item.Order < 0 {
		item.Order = 0
	}

	s.queue.Enqueue(model.SetOp(item))
	s.cache.Upsert(item)
	s.log.Debug("item saved", "id", item.ID, "title", item.Title, "status", item.Status)
	return &item, nil
}

// DeleteItem removes the item locally and queues the document removal
func (s *Service) DeleteItem(id string) error {
	if _, err := s.requireUser("delete item"); err != nil {
		return err
	}

	s.queue.Enqueue(model.DeleteOp(id))
	s.cache.Remove(id)
	s.log.Debug("item deleted", "id", id)
	return nil
}

// MoveItem places movedID above or below targetID, adopting the target's
// list. Only items whose (status, order) actually changed are queued.
func (s *Service) MoveItem(movedID, targetID string, dir order.Direction) error {
	if _, err := s.requireUser("move item"); err != nil {
		return err
	}

	plan, err := order.PlanMove(s.cache.Items(), movedID, targetID, dir)
	if err != nil {
		s.log.Error("move failed", "moved", movedID, "target", targetID, "error", err)
		return err
	}
	s.applyPlan(plan)
	return nil
}

// MoveToList drops movedID at the bottom of the given list. Used for
// drops onto an empty column.
func (s *Service) MoveToList(movedID string, status model.Status) error {
	if _, err := s.requireUser("move item to list"); err != nil {
		return err
	}
	if !model.IsValidStatus(status) {
		return ErrInvalidStatus
	}

	plan, err := order.PlanMoveToEnd(s.cache.Items(), movedID, status)
	if err != nil {
		s.log.Error("move to list failed", "moved", movedID, "status", status, "error", err)
		return err
	}
	s.applyPlan(plan)
	return nil
}

func (s *Service) applyPlan(plan order.Plan) {
	s.cache.SetAll(plan.Items)

	ops := make([]model.Op, 0, len(plan.Changed))
	for _, it := range plan.Changed {
		o, st := it.Order, it.Status
		ops = append(ops, model.UpdateOp(it.ID, model.ItemPatch{Order: &o, Status: &st}))
	}
	s.queue.Enqueue(ops...)
	s.log.Debug("order updated", "changed", len(plan.Changed))
}

// ToggleFavorite flips the favorite flag
func (s *Service) ToggleFavorite(id string) error {
	if _, err := s.requireUser("toggle favorite"); err != nil {
		return err
	}

	item, ok := s.findItem(id)
	if !ok {
		return ErrItemNotFound
	}
	item.Favorite = !item.Favorite

	fav := item.Favorite
	s.queue.Enqueue(model.UpdateOp(id, model.ItemPatch{Favorite: &fav}))
	s.cache.Upsert(item)
	return nil
}

// SetCompletionDate stamps today's date in dd-mm-yyyy form and forces the
// item into the completed list.
func (s *Service) SetCompletionDate(id string) error {
	if _, err := s.requireUser("set completion date"); err != nil {
		return err
	}

	item, ok := s.findItem(id)
	if !ok {
		return ErrItemNotFound
	}
	item.CompletionDate = s.now().Format(completionDateLayout)
	item.Status = model.StatusCompleted

	s.queue.Enqueue(model.SetOp(item))
	s.cache.Upsert(item)
	s.log.Debug("completion date set", "id", id, "date", item.CompletionDate)
	return nil
}

// ChangePlatform copies the chosen platform's name and color onto the item
func (s *Service) ChangePlatform(ctx context.Context, itemID, platformID string) error {
	userID, err := s.requireUser("change platform")
	if err != nil {
		return err
	}

	item, ok := s.findItem(itemID)
	if !ok {
		return ErrItemNotFound
	}

	platforms, err := s.store.Platforms(ctx, userID)
	if err != nil {
		s.log.Error("error loading platforms", "error", err)
		return err
	}
	var platform *model.Platform
	for i := range platforms {
		if platforms[i].ID == platformID {
			platform = &platforms[i]
			break
		}
	}
	if platform == nil {
		return ErrPlatformNotFound
	}

	item.Platform = platform.Name
	item.PlatformColor = platform.Color

	s.queue.Enqueue(model.SetOp(item))
	s.cache.Upsert(item)
	return nil
}

// Platforms lists the signed-in owner's platforms
func (s *Service) Platforms(ctx context.Context) ([]model.Platform, error) {
	userID, err := s.requireUser("list platforms")
	if err != nil {
		return nil, err
	}
	return s.store.Platforms(ctx, userID)
}

// AddPlatform creates a platform record for the signed-in owner
func (s *Service) AddPlatform(ctx context.Context, name, color string) (*model.Platform, error) {
	userID, err := s.requireUser("add platform")
	if err != nil {
		return nil, err
	}
	return s.store.AddPlatform(ctx, model.Platform{Name: name, Color: color, UserID: userID})
}

// DeletePlatform removes the platform record. Items keep their
// denormalized platform name and color.
func (s *Service) DeletePlatform(ctx context.Context, id string) error {
	if _, err := s.requireUser("delete platform"); err != nil {
		return err
	}
	return s.store.DeletePlatform(ctx, id)
}

// SetPlatformColor recolors the platform record and fans the new color out
// to every cached item referencing the platform by name, queuing one
// update per touched item.
func (s *Service) SetPlatformColor(ctx context.Context, platformID, color string) error {
	userID, err := s.requireUser("set platform color")
	if err != nil {
		return err
	}

	platforms, err := s.store.Platforms(ctx, userID)
	if err != nil {
		s.log.Error("error loading platforms", "error", err)
		return err
	}
	var platform *model.Platform
	for i := range platforms {
		if platforms[i].ID == platformID {
			platform = &platforms[i]
			break
		}
	}
	if platform == nil {
		return ErrPlatformNotFound
	}

	if err := s.store.SetPlatformColor(ctx, platformID, color); err != nil {
		s.log.Error("error updating platform color", "error", err)
		return err
	}

	items := s.cache.Items()
	var ops []model.Op
	for i := range items {
		if items[i].Platform != platform.Name {
			continue
		}
		items[i].PlatformColor = color
		c := color
		ops = append(ops, model.UpdateOp(items[i].ID, model.ItemPatch{PlatformColor: &c}))
	}
	if len(ops) == 0 {
		return nil
	}

	s.queue.Enqueue(ops...)
	s.cache.SetAll(items)
	s.log.Debug("platform color fanned out", "platform", platform.Name, "items", len(ops))
	return nil
}

// Flush forces an immediate drain of the pending write queue
func (s *Service) Flush(ctx context.Context) {
	s.queue.Flush(ctx)
}

// HasUnsynced reports whether writes are waiting for a flush
func (s *Service) HasUnsynced() bool {
	return s.queue.HasUnsynced()
}

func (s *Service) findItem(id string) (model.Item, bool) {
	for _, it := range s.cache.Items() {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

func (s *Service) countInStatus(status model.Status) int {
	n := 0
	for _, it := range s.cache.Items() {
		if it.Status == status {
			n++
		}
	}
	return n
}
