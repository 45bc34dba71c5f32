// Package cache holds the canonical in-memory item sequence, kept in step
// with the document store's push subscription. The UI only ever reads
// snapshots; every mutation flows through the tracker, which updates the
// cache optimistically and lets the next authoritative reload reconcile.
package cache

import (
	"context"
	"sync"

	"github.com/Mikkelka/gametrack/internal/logger"
	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/Mikkelka/gametrack/internal/order"
	"github.com/Mikkelka/gametrack/internal/store"
)

// Cache is the live item cache for one signed-in owner at a time.
type Cache struct {
	store       store.Store
	currentUser func() (string, bool)
	log         *logger.Logger

	mu          sync.Mutex
	items       []model.Item
	loaded      bool
	cancelWatch func()
	nextSubID   int
	subs        map[int]func([]model.Item)
}

// New creates an empty cache reading through st, scoped to whatever owner
// currentUser reports at load time.
func New(st store.Store, currentUser func() (string, bool), lg *logger.Logger) *Cache {
	if lg == nil {
		lg = logger.NewDiscard()
	}
	return &Cache{
		store:       st,
		currentUser: currentUser,
		log:         lg,
		subs:        make(map[int]func([]model.Item)),
	}
}

// Load returns the cached sequence, fetching and establishing the push
// subscription on first use. A fetch failure is logged and degrades to an
// empty board; the UI must tolerate that.
func (c *Cache) Load(ctx context.Context) []model.Item {
	c.mu.Lock()
	if c.loaded {
		defer c.mu.Unlock()
		return snapshot(c.items)
	}
	c.mu.Unlock()

	userID, ok := c.currentUser()
	if !ok {
		c.log.Error("load requested with no user signed in")
		return nil
	}

	items, err := c.store.QueryByOwner(ctx, userID)
	if err != nil {
		c.log.Error("error loading items", "error", err)
		return nil
	}
	order.Sort(items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.loaded = true
	if c.cancelWatch == nil {
		c.cancelWatch = c.store.Watch(userID, c.applyChanges)
	}
	return snapshot(c.items)
}

// Reload drops the memoized sequence and fetches fresh, notifying
// subscribers. Called after a flush to reconcile optimistic state with the
// store. The watch established by Load stays in place.
func (c *Cache) Reload(ctx context.Context) []model.Item {
	userID, ok := c.currentUser()
	if !ok {
		return nil
	}

	items, err := c.store.QueryByOwner(ctx, userID)
	if err != nil {
		c.log.Error("error reloading items", "error", err)
		return c.Items()
	}
	order.Sort(items)

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()

	c.notify()
	return snapshot(items)
}

// applyChanges merges one push-notification batch: upsert by id or remove,
// then re-derive the full sorted order and tell subscribers exactly once.
func (c *Cache) applyChanges(changes []store.Change) {
	c.mu.Lock()
	for _, ch := range changes {
		switch ch.Kind {
		case store.ChangeAdded, store.ChangeModified:
			idx := -1
			for i := range c.items {
				if c.items[i].ID == ch.Item.ID {
					idx = i
					break
				}
			}
			if idx >= 0 {
				c.items[idx] = ch.Item
			} else {
				c.items = append(c.items, ch.Item)
			}
		case store.ChangeRemoved:
			kept := c.items[:0]
			for _, it := range c.items {
				if it.ID != ch.Item.ID {
					kept = append(kept, it)
				}
			}
			c.items = kept
		}
	}
	order.Sort(c.items)
	c.loaded = true
	c.mu.Unlock()

	c.notify()
}

// Items returns the current snapshot without fetching
func (c *Cache) Items() []model.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.items)
}

// SetAll replaces the whole sequence (optimistic local reorder) and
// notifies subscribers.
func (c *Cache) SetAll(items []model.Item) {
	sorted := snapshot(items)
	order.Sort(sorted)

	c.mu.Lock()
	c.items = sorted
	c.loaded = true
	c.mu.Unlock()

	c.notify()
}

// Upsert applies one optimistic local write and notifies subscribers
func (c *Cache) Upsert(item model.Item) {
	c.applyChanges([]store.Change{{Kind: store.ChangeModified, Item: item}})
}

// Remove applies one optimistic local delete and notifies subscribers
func (c *Cache) Remove(id string) {
	c.applyChanges([]store.Change{{Kind: store.ChangeRemoved, Item: model.Item{ID: id}}})
}

// Subscribe registers fn to run with the refreshed sequence whenever the
// canonical order changes. The returned func unsubscribes and is idempotent.
func (c *Cache) Subscribe(fn func([]model.Item)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Clear drops the cache and cancels the subscription; called on sign-out.
// Idempotent.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = nil
	c.loaded = false
	cancel := c.cancelWatch
	c.cancelWatch = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Cache) notify() {
	c.mu.Lock()
	subs := make([]func([]model.Item), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	items := snapshot(c.items)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(items)
	}
}

func snapshot(items []model.Item) []model.Item {
	if items == nil {
		return nil
	}
	return append([]model.Item(nil), items...)
}
