package store

import "sync"

// watchHub routes change-event batches to per-owner subscribers. It stands
// in for the remote store's push subscription: every committed batch is
// broadcast to watchers of the owners it touched.
type watchHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]watchSub
}

type watchSub struct {
	userID string
	fn     func([]Change)
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[int]watchSub)}
}

// Watch registers fn for changes scoped to userID. The returned cancel
// func is idempotent.
func (s *SQLite) Watch(userID string, fn func([]Change)) func() {
	h := s.hub
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = watchSub{userID: userID, fn: fn}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// emit delivers one notification batch per subscriber, holding only the
// changes belonging to that subscriber's owner. Delivery is synchronous;
// handlers must not block.
func (h *watchHub) emit(changes []Change) {
	if len(changes) == 0 {
		return
	}

	h.mu.Lock()
	subs := make([]watchSub, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		var scoped []Change
		for _, c := range changes {
			if c.Item.UserID == sub.userID {
				scoped = append(scoped, c)
			}
		}
		if len(scoped) > 0 {
			sub.fn(scoped)
		}
	}
}

func (h *watchHub) closeAll() {
	h.mu.Lock()
	h.subs = make(map[int]watchSub)
	h.mu.Unlock()
}
