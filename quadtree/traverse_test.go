package quadtree

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/quadsoup/geometry"
)

var (
	startArea    = geometry.Rect{Left: -10, Top: -10, Right: 10, Bottom: 10}
	movementArea = geometry.Rect{Left: -100, Top: -100, Right: 100, Bottom: 100}
)

var balanceCombos = []struct{ target, leeway int }{
	{1, 0}, {5, 0}, {5, 5}, {0, 50}, {50, 0}, {50, 50}, {1, 7}, {0, 0}, {0, 7},
}

// expectUsageError runs fn and fails unless it panics with a *UsageError for op.
func expectUsageError(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected a %s usage panic, got %v", op, r)
		}
		var usage *UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("expected *UsageError, got %T: %v", err, err)
		}
		if usage.Op != op {
			t.Errorf("UsageError.Op = %q, want %q", usage.Op, op)
		}
	}()
	fn()
}

func fill(tree *Index, rng *rand.Rand, area geometry.Rect, n int) []*testItem {
	items := make([]*testItem, 0, n)
	for i := 0; i < n; i++ {
		item := newItem(pointIn(rng, area))
		items = append(items, item)
		tree.Insert(item)
	}
	return items
}

func TestRemoveIfSplitsVertically(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := New(unitArea, 1, 0, 1)

	top := geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 5}
	bottom := geometry.Rect{Left: 0, Top: 5, Right: 10, Bottom: 10}
	fill(tree, rng, top, 50)
	fill(tree, rng, bottom, 48)
	// Items on the shared edge belong to the bottom half as well.
	tree.Insert(newItem(geometry.Point{X: 2.5, Y: 5}))
	tree.Insert(newItem(geometry.Point{X: 7.5, Y: 5}))

	if tree.Size() != 100 || !tree.Validate() {
		t.Fatal("bad state after filling")
	}

	tree.RemoveIf(func(item Item) bool { return geometry.Contains(bottom, item.Location()) })
	if got := tree.Size(); got != 50 {
		t.Errorf("Size() = %d, want 50", got)
	}
	if !tree.Validate() {
		t.Error("validation failed")
	}
	tree.ForEachConst(NewQuery(func(item Item) {
		if p := item.Location(); !geometry.Contains(top, p) || p.Y >= 5 {
			t.Errorf("item at %v survived removal", p)
		}
	}))
}

func TestRemoveIfEverything(t *testing.T) {
	for _, combo := range balanceCombos {
		t.Run(fmt.Sprintf("target=%d/leeway=%d", combo.target, combo.leeway), func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			tree := New(unitArea, combo.target, combo.leeway, 1)
			fill(tree, rng, unitArea, 100)

			tree.RemoveIf(func(Item) bool { return true })
			if tree.Size() != 0 || !tree.Validate() {
				t.Fatal("bad state after removing everything")
			}
			if got := tree.Stats().Nodes; got != 1 {
				t.Errorf("Stats().Nodes = %d, want 1", got)
			}
		})
	}
}

func TestRemoveIfEmptiesSubtree(t *testing.T) {
	tests := []struct {
		name      string
		remove    func(Item) bool
		wantSize  int
		wantNodes int
	}{
		{"everything", func(Item) bool { return true }, 0, 1},
		{"crowded quadrant", func(item Item) bool { return item.Location().X < 5 }, 1, 1},
		{"lone quadrant", func(item Item) bool { return item.Location().X > 5 }, 2, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// With the leeway equal to the target, an emptied leaf is still
			// within the leeway of the target count.
			tree := New(unitArea, 1, 1, 1)
			tree.Insert(newItem(geometry.Point{X: 1, Y: 1}))
			tree.Insert(newItem(geometry.Point{X: 1, Y: 2}))
			tree.Insert(newItem(geometry.Point{X: 9, Y: 9}))
			if got := tree.Stats().Nodes; got != 5 || !tree.Validate() {
				t.Fatalf("setup: Stats().Nodes = %d, want 5", got)
			}

			tree.RemoveIf(tc.remove)
			if got := tree.Size(); got != tc.wantSize {
				t.Errorf("Size() = %d, want %d", got, tc.wantSize)
			}
			if !tree.Validate() {
				t.Error("validation failed")
			}
			if got := tree.Stats().Nodes; got != tc.wantNodes {
				t.Errorf("Stats().Nodes = %d, want %d", got, tc.wantNodes)
			}
		})
	}
}

func TestForEachMutableMovesItems(t *testing.T) {
	for _, combo := range balanceCombos {
		t.Run(fmt.Sprintf("target=%d/leeway=%d", combo.target, combo.leeway), func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			tree := New(startArea, combo.target, combo.leeway, 1)
			items := fill(tree, rng, startArea, 100)

			for round := 0; round < 100; round++ {
				visited := 0
				tree.ForEachMutable(NewMutableQuery(func(item Item) {
					visited++
					item.(*testItem).loc = pointIn(rng, movementArea)
				}))

				if visited != 100 {
					t.Fatalf("round %d: visited %d items, want 100", round, visited)
				}
				if tree.Size() != 100 {
					t.Fatalf("round %d: Size() = %d, want 100", round, tree.Size())
				}
				if !tree.Validate() {
					t.Fatalf("round %d: validation failed", round)
				}
				for _, item := range items {
					found := tree.Items(nil, NewQuery(nil).Colliding(item.loc, 0))
					if !slices.Contains(found, Item(item)) {
						t.Fatalf("round %d: item not found at %v", round, item.loc)
					}
				}
			}
		})
	}
}

func TestForEachMutableMoveAndRemove(t *testing.T) {
	for _, combo := range balanceCombos {
		t.Run(fmt.Sprintf("target=%d/leeway=%d", combo.target, combo.leeway), func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			tree := New(startArea, combo.target, combo.leeway, 1)

			for round := 0; round < 100; round++ {
				for tree.Size() < 100 {
					tree.Insert(newItem(pointIn(rng, startArea)))
				}

				removed := 0
				tree.ForEachMutable(NewMutableQuery(func(item Item) {
					item.(*testItem).loc = pointIn(rng, movementArea)
				}).RemoveWhen(func(Item) bool {
					if rng.Intn(2) == 0 {
						removed++
						return true
					}
					return false
				}))

				if got, want := tree.Size(), 100-removed; got != want {
					t.Fatalf("round %d: Size() = %d, want %d", round, got, want)
				}
				if !tree.Validate() {
					t.Fatalf("round %d: validation failed", round)
				}
			}
		})
	}
}

func TestInsertDuringMutableTraversal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := New(startArea, 4, 1, 1)
	fill(tree, rng, startArea, 50)

	visited := 0
	tree.ForEachMutable(NewMutableQuery(func(item Item) {
		visited++
		tree.Insert(newItem(pointIn(rng, startArea)))
	}))

	// Staged items are not visited by the traversal that staged them.
	if visited != 50 {
		t.Errorf("visited %d items, want 50", visited)
	}
	if got := tree.Size(); got != 100 {
		t.Errorf("Size() = %d, want 100", got)
	}
	if !tree.Validate() {
		t.Error("validation failed")
	}
}

func TestInsertOutOfBoundsDuringMutableTraversal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := New(unitArea, 2, 0, 1)
	fill(tree, rng, unitArea, 20)

	far := newItem(geometry.Point{X: -250, Y: 480})
	inserted := false
	tree.ForEachMutable(NewMutableQuery(func(item Item) {
		if !inserted {
			inserted = true
			tree.Insert(far)
		}
		item.(*testItem).loc = pointIn(rng, movementArea)
	}))

	if got := tree.Size(); got != 21 {
		t.Errorf("Size() = %d, want 21", got)
	}
	if !geometry.Contains(tree.Region(), far.loc) {
		t.Errorf("root region %v does not cover %v", tree.Region(), far.loc)
	}
	if !tree.Validate() {
		t.Error("validation failed")
	}
}

func TestStagedItemMovedByLaterAction(t *testing.T) {
	tree := New(unitArea, 4, 0, 1)
	a := newItem(geometry.Point{X: 1, Y: 1})
	tree.Insert(a)

	staged := newItem(geometry.Point{X: 2, Y: 2})
	tree.ForEachMutable(NewMutableQuery(func(Item) {
		tree.Insert(staged)
		// Moved after staging; it must still be re-homed correctly.
		staged.loc = geometry.Point{X: 30, Y: 30}
	}))

	if tree.Size() != 2 || !tree.Validate() {
		t.Fatal("bad state after settling")
	}
	found := tree.Items(nil, NewQuery(nil).Colliding(staged.loc, 0))
	if len(found) != 1 || found[0] != Item(staged) {
		t.Errorf("lookup at %v returned %v", staged.loc, found)
	}
}

func TestMutableTraversalRegion(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := New(unitArea, 2, 1, 0.5)
	fill(tree, rng, unitArea, 200)

	area := geometry.Rect{Left: 2, Top: 2, Right: 4, Bottom: 4}
	want := 0
	tree.ForEachConst(NewQuery(func(item Item) {
		if geometry.Contains(area, item.Location()) {
			want++
		}
	}))

	got := 0
	tree.ForEachMutable(NewMutableQuery(func(item Item) {
		got++
		item.(*testItem).loc.X += 20
	}).InRegion(area).Where(ItemWithin(area)))

	if got != want {
		t.Errorf("visited %d items, want %d", got, want)
	}
	if n := tree.CountColliding(area); n != 0 {
		t.Errorf("%d items left in moved area", n)
	}
	if !tree.Validate() || tree.Size() != 200 {
		t.Error("bad state after moving region")
	}
}

func TestConstTraversalInsideMutable(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := New(unitArea, 3, 1, 0.5)
	items := fill(tree, rng, unitArea, 60)

	want := make(map[*testItem]int, len(items))
	for _, a := range items {
		for _, b := range items {
			if geometry.DistanceSq(a.loc, b.loc) <= 4 {
				want[a]++
			}
		}
	}

	tree.ForEachMutable(NewMutableQuery(func(item Item) {
		a := item.(*testItem)
		got := tree.CountColliding(geometry.Circle{X: a.loc.X, Y: a.loc.Y, R: 2})
		if got != want[a] {
			t.Errorf("item at %v: %d neighbours, want %d", a.loc, got, want[a])
		}
	}))

	if !tree.Validate() {
		t.Error("validation failed")
	}
}

func TestTraversalMisuse(t *testing.T) {
	newTree := func() *Index {
		tree := New(unitArea, 1, 0, 1)
		tree.Insert(newItem(geometry.Point{X: 1, Y: 1}))
		return tree
	}

	tests := []struct {
		op   string
		call func(tree *Index)
	}{
		{"ForEachMutable", func(tree *Index) { tree.ForEachMutable(NewMutableQuery(func(Item) {})) }},
		{"Validate", func(tree *Index) { tree.Validate() }},
		{"Clear", func(tree *Index) { tree.Clear() }},
		{"RemoveIf", func(tree *Index) { tree.RemoveIf(func(Item) bool { return false }) }},
		{"Rebalance", func(tree *Index) { tree.Rebalance() }},
		{"SetItemCountTarget", func(tree *Index) { tree.SetItemCountTarget(3) }},
	}

	for _, tc := range tests {
		t.Run(tc.op+" inside mutable", func(t *testing.T) {
			tree := newTree()
			expectUsageError(t, tc.op, func() {
				tree.ForEachMutable(NewMutableQuery(func(Item) { tc.call(tree) }))
			})
		})
	}

	t.Run("Insert inside const", func(t *testing.T) {
		tree := newTree()
		expectUsageError(t, "Insert", func() {
			tree.ForEachConst(NewQuery(func(Item) {
				tree.Insert(newItem(geometry.Point{X: 2, Y: 2}))
			}))
		})
	})

	t.Run("ForEachMutable inside const", func(t *testing.T) {
		tree := newTree()
		expectUsageError(t, "ForEachMutable", func() {
			tree.ForEachConst(NewQuery(func(Item) {
				tree.ForEachMutable(NewMutableQuery(func(Item) {}))
			}))
		})
	})
}

func TestConstTraversalLeavesTreeUsable(t *testing.T) {
	tree := New(unitArea, 1, 0, 1)
	tree.Insert(newItem(geometry.Point{X: 1, Y: 1}))

	tree.ForEachConst(NewQuery(func(Item) {}))
	tree.Insert(newItem(geometry.Point{X: 9, Y: 9}))
	if tree.Size() != 2 || !tree.Validate() {
		t.Error("bad state after a const traversal")
	}
}
