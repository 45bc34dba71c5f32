package order

import (
	"testing"

	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, status model.Status, ord int) model.Item {
	return model.Item{ID: id, Title: id, Status: status, Order: ord}
}

func find(t *testing.T, items []model.Item, id string) model.Item {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %q not in plan", id)
	return model.Item{}
}

func TestPlanMoveBelowSameList(t *testing.T) {
	items := []model.Item{
		item("a", model.StatusPlaying, 0),
		item("b", model.StatusPlaying, 1),
		item("c", model.StatusCompleted, 0),
	}

	plan, err := PlanMove(items, "a", "b", Down)
	require.NoError(t, err)

	a := find(t, plan.Items, "a")
	b := find(t, plan.Items, "b")
	c := find(t, plan.Items, "c")

	assert.Equal(t, 0, b.Order)
	assert.Equal(t, 1, a.Order)
	assert.Equal(t, model.StatusPlaying, a.Status)
	assert.Equal(t, 0, c.Order, "other partition untouched")

	// only a and b changed
	require.Len(t, plan.Changed, 2)
	ids := []string{plan.Changed[0].ID, plan.Changed[1].ID}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestPlanMoveAcrossListsOntoTarget(t *testing.T) {
	items := []model.Item{
		item("a", model.StatusUpcoming, 0),
		item("c", model.StatusCompleted, 0),
	}

	plan, err := PlanMove(items, "a", "c", Up)
	require.NoError(t, err)

	a := find(t, plan.Items, "a")
	c := find(t, plan.Items, "c")

	assert.Equal(t, model.StatusCompleted, a.Status)
	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, c.Order)
	assert.Equal(t, model.StatusCompleted, plan.Status)
}

func TestPlanMoveReindexesSourcePartition(t *testing.T) {
	items := []model.Item{
		item("a", model.StatusPlaying, 0),
		item("b", model.StatusPlaying, 1),
		item("c", model.StatusPlaying, 2),
		item("d", model.StatusPaused, 0),
	}

	// Move the middle item out; the source list must close the gap.
	plan, err := PlanMove(items, "b", "d", Down)
	require.NoError(t, err)

	assert.Equal(t, 0, find(t, plan.Items, "a").Order)
	assert.Equal(t, 1, find(t, plan.Items, "c").Order)
	assert.Equal(t, 0, find(t, plan.Items, "d").Order)
	assert.Equal(t, 1, find(t, plan.Items, "b").Order)
	assert.Equal(t, model.StatusPaused, find(t, plan.Items, "b").Status)

	assertContiguous(t, plan.Items)
}

func TestPlanMoveNoOpProducesNoChanges(t *testing.T) {
	items := []model.Item{
		item("a", model.StatusPlaying, 0),
		item("b", model.StatusPlaying, 1),
	}

	// b below a is where b already sits
	plan, err := PlanMove(items, "b", "a", Down)
	require.NoError(t, err)
	assert.Empty(t, plan.Changed)
}

func TestPlanMoveUnknownIDs(t *testing.T) {
	items := []model.Item{item("a", model.StatusPlaying, 0)}

	_, err := PlanMove(items, "nope", "a", Up)
	assert.ErrorIs(t, err, ErrMovedNotFound)

	_, err = PlanMove(items, "a", "nope", Up)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestPlanMoveToEnd(t *testing.T) {
	items := []model.Item{
		item("a", model.StatusUpcoming, 0),
		item("b", model.StatusUpcoming, 1),
		item("c", model.StatusPlaying, 0),
	}

	plan, err := PlanMoveToEnd(items, "a", model.StatusPlaying)
	require.NoError(t, err)

	a := find(t, plan.Items, "a")
	assert.Equal(t, model.StatusPlaying, a.Status)
	assert.Equal(t, 1, a.Order)
	assert.Equal(t, 0, find(t, plan.Items, "c").Order)
	assert.Equal(t, 0, find(t, plan.Items, "b").Order, "source gap closed")
	assertContiguous(t, plan.Items)
}

func TestPlanMoveToEndEmptyDestination(t *testing.T) {
	items := []model.Item{
		item("a", model.StatusUpcoming, 0),
	}

	plan, err := PlanMoveToEnd(items, "a", model.StatusDropped)
	require.NoError(t, err)

	a := find(t, plan.Items, "a")
	assert.Equal(t, model.StatusDropped, a.Status)
	assert.Equal(t, 0, a.Order)
}

func TestSortByStatusThenOrder(t *testing.T) {
	items := []model.Item{
		item("c", model.StatusPlaying, 1),
		item("a", model.StatusCompleted, 0),
		item("b", model.StatusPlaying, 0),
	}

	Sort(items)

	assert.Equal(t, "a", items[0].ID) // "completed" < "playing"
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

// After any move, every partition must hold a contiguous 0-based order
// sequence matching display order.
func assertContiguous(t *testing.T, items []model.Item) {
	t.Helper()
	next := map[model.Status]int{}
	for _, it := range items {
		assert.Equal(t, next[it.Status], it.Order,
			"partition %s not contiguous at %s", it.Status, it.ID)
		next[it.Status]++
	}
}
