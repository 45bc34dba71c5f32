// Package order plans (status, order) assignments for board moves. It is
// pure: callers apply the resulting plan to the cache and persist only the
// changed items.
package order

import (
	"errors"
	"sort"

	"github.com/Mikkelka/gametrack/internal/model"
)

// Direction expresses where the moved item lands relative to the target.
type Direction int

const (
	// Up places the moved item before (above) the target.
	Up Direction = iota
	// Down places the moved item after (below) the target.
	Down
)

// Plan is the outcome of a move: the full resequenced item list plus the
// subset whose (status, order) actually changed and therefore must be
// persisted.
type Plan struct {
	Items   []model.Item
	Changed []model.Item
	Status  model.Status
}

var (
	ErrMovedNotFound  = errors.New("moved item not found")
	ErrTargetNotFound = errors.New("target item not found")
)

// PlanMove moves movedID above or below targetID. The moved item adopts the
// target's status. Orders in both the source and destination partitions are
// renumbered 0-based contiguous in final display order.
func PlanMove(items []model.Item, movedID, targetID string, dir Direction) (Plan, error) {
	movedIdx := indexOf(items, movedID)
	if movedIdx < 0 {
		return Plan{}, ErrMovedNotFound
	}
	targetIdx := indexOf(items, targetID)
	if targetIdx < 0 {
		return Plan{}, ErrTargetNotFound
	}

	work := append([]model.Item(nil), items...)
	moved := work[movedIdx]
	oldStatus := moved.Status
	newStatus := work[targetIdx].Status

	// Splice the moved item out first; the insertion index below accounts
	// for the shift this causes when the target sat past the old position.
	work = append(work[:movedIdx], work[movedIdx+1:]...)
	moved.Status = newStatus

	var insertAt int
	switch dir {
	case Up:
		if targetIdx > movedIdx {
			insertAt = targetIdx - 1
		} else {
			insertAt = targetIdx
		}
	default:
		if targetIdx < movedIdx {
			insertAt = targetIdx + 1
		} else {
			insertAt = targetIdx
		}
	}

	work = insert(work, insertAt, moved)
	return renumber(items, work, newStatus, oldStatus), nil
}

// PlanMoveToEnd moves movedID to the bottom of the given status partition.
// Used for drops onto an empty list area.
func PlanMoveToEnd(items []model.Item, movedID string, status model.Status) (Plan, error) {
	movedIdx := indexOf(items, movedID)
	if movedIdx < 0 {
		return Plan{}, ErrMovedNotFound
	}

	work := append([]model.Item(nil), items...)
	moved := work[movedIdx]
	oldStatus := moved.Status
	work = append(work[:movedIdx], work[movedIdx+1:]...)
	moved.Status = status

	insertAt := len(work)
	for i := len(work) - 1; i >= 0; i-- {
		if work[i].Status == status {
			insertAt = i + 1
			break
		}
	}
	work = insert(work, insertAt, moved)
	return renumber(items, work, status, oldStatus), nil
}

// Sort orders items by (status, order) ascending, status compared
// lexicographically, ties kept in existing sequence order.
func Sort(items []model.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Status != items[j].Status {
			return items[i].Status < items[j].Status
		}
		return items[i].Order < items[j].Order
	})
}

func renumber(before, work []model.Item, statuses ...model.Status) Plan {
	seen := map[model.Status]bool{}
	for _, st := range statuses {
		if seen[st] {
			continue
		}
		seen[st] = true
		n := 0
		for i := range work {
			if work[i].Status != st {
				continue
			}
			work[i].Order = n
			n++
		}
	}

	prev := make(map[string]model.Item, len(before))
	for _, it := range before {
		prev[it.ID] = it
	}

	var changed []model.Item
	for _, it := range work {
		old, ok := prev[it.ID]
		if !ok || old.Status != it.Status || old.Order != it.Order {
			changed = append(changed, it)
		}
	}

	return Plan{Items: work, Changed: changed, Status: statuses[0]}
}

func indexOf(items []model.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func insert(items []model.Item, idx int, it model.Item) []model.Item {
	if idx < 0 {
		idx = 0
	}
	if idx > len(items) {
		idx = len(items)
	}
	items = append(items, model.Item{})
	copy(items[idx+1:], items[idx:])
	items[idx] = it
	return items
}
