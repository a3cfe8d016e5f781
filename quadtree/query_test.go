package quadtree

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/quadsoup/geometry"
)

const (
	kindRock Kind = iota + 1
	kindTree
	kindBush
)

func TestCollidingMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := New(startArea, 3, 1, 0.25)

	var items []*testItem
	for i := 0; i < 300; i++ {
		item := newItem(pointIn(rng, startArea))
		item.radius = rng.Float64() * 1.5
		items = append(items, item)
		tree.Insert(item)
	}
	if tree.Reach() < 1 {
		t.Fatalf("Reach() = %v, want the largest radius", tree.Reach())
	}

	shapes := []struct {
		name  string
		shape geometry.Shape
	}{
		{"point", geometry.Point{X: 1.5, Y: -2}},
		{"rect", geometry.Rect{Left: -3, Top: -1, Right: 2, Bottom: 4}},
		{"thin rect", geometry.Rect{Left: -10, Top: 0, Right: 10, Bottom: 0}},
		{"circle", geometry.Circle{X: 4, Y: 4, R: 2.5}},
		{"line", geometry.Line{A: geometry.Point{X: -9, Y: -8}, B: geometry.Point{X: 7, Y: 9}}},
		{"outside", geometry.Circle{X: 40, Y: 40, R: 1}},
	}

	for _, tc := range shapes {
		t.Run(tc.name, func(t *testing.T) {
			var want []Item
			for _, item := range items {
				if geometry.Collides(tc.shape, item.CollisionShape()) {
					want = append(want, item)
				}
			}

			got := tree.Items(nil, NewQuery(nil).Colliding(tc.shape, tree.Reach()))
			if len(got) != len(want) {
				t.Fatalf("found %d items, want %d", len(got), len(want))
			}
			for _, item := range want {
				if !slices.Contains(got, item) {
					t.Errorf("missing item at %v", item.Location())
				}
			}
			if n := tree.CountColliding(tc.shape); n != len(want) {
				t.Errorf("CountColliding() = %d, want %d", n, len(want))
			}
		})
	}
}

func TestRegionFilterIsConservative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := New(unitArea, 2, 0, 0.5)
	fill(tree, rng, unitArea, 200)

	area := geometry.Rect{Left: 6, Top: 1, Right: 9, Bottom: 3}
	pruned := len(tree.Items(nil, NewQuery(nil).InRegion(area)))
	exact := len(tree.Items(nil, NewQuery(nil).Where(ItemWithin(area))))

	if pruned < exact {
		t.Errorf("region pruning visited %d items, fewer than the %d inside", pruned, exact)
	}
	if pruned >= tree.Size() {
		t.Errorf("region pruning visited all %d items", pruned)
	}
	if both := len(tree.Items(nil, NewQuery(nil).InRegion(area).Where(ItemWithin(area)))); both != exact {
		t.Errorf("pruned and filtered query found %d items, want %d", both, exact)
	}
}

func TestKindFilters(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := New(unitArea, 4, 1, 0.5)

	counts := map[Kind]int{}
	for i := 0; i < 120; i++ {
		item := newItem(pointIn(rng, unitArea))
		item.kind = Kind(i%4) // includes KindNone
		counts[item.kind]++
		tree.Insert(item)
	}

	tests := []struct {
		name  string
		kinds []Kind
		want  int
	}{
		{"single", []Kind{kindRock}, counts[kindRock]},
		{"pair", []Kind{kindTree, kindBush}, counts[kindTree] + counts[kindBush]},
		{"untagged", []Kind{KindNone}, counts[KindNone]},
		{"none requested", nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := len(tree.Items(nil, NewQuery(nil).Kinds(tc.kinds...)))
			if got != tc.want {
				t.Errorf("found %d items, want %d", got, tc.want)
			}
		})
	}

	t.Run("ForKind", func(t *testing.T) {
		seen := 0
		tree.ForEachConst(NewQuery(ForKind(kindTree, func(item *testItem) {
			if item.kind != kindTree {
				t.Errorf("ForKind ran for kind %d", item.kind)
			}
			seen++
		})))
		if seen != counts[kindTree] {
			t.Errorf("ForKind ran %d times, want %d", seen, counts[kindTree])
		}
	})

	t.Run("WhereKind", func(t *testing.T) {
		left := WhereKind(kindBush, func(item *testItem) bool { return item.loc.X < 5 })
		got := len(tree.Items(nil, NewQuery(nil).Where(left)))
		notLeft := len(tree.Items(nil, NewQuery(nil).Kinds(kindBush).Where(Not(left))))
		if got+notLeft != counts[kindBush] {
			t.Errorf("split bushes into %d and %d, want %d in total", got, notLeft, counts[kindBush])
		}
	})

	t.Run("RemoveWhen by kind", func(t *testing.T) {
		tree.ForEachMutable(NewMutableQuery(nil).RemoveWhen(OfKind(kindRock)))
		if got := len(tree.Items(nil, NewQuery(nil).Kinds(kindRock))); got != 0 {
			t.Errorf("%d rocks left after removal", got)
		}
		if got, want := tree.Size(), 120-counts[kindRock]; got != want {
			t.Errorf("Size() = %d, want %d", got, want)
		}
		if !tree.Validate() {
			t.Error("validation failed")
		}
	})
}

// plainItem carries no kind tag.
type plainItem struct{ loc geometry.Point }

func (p plainItem) Location() geometry.Point        { return p.loc }
func (p plainItem) CollisionShape() geometry.Circle { return geometry.Circle{X: p.loc.X, Y: p.loc.Y} }

func TestKindOfUntagged(t *testing.T) {
	if got := KindOf(plainItem{}); got != KindNone {
		t.Errorf("KindOf() = %d, want KindNone", got)
	}
	if OfKind(kindRock)(plainItem{}) {
		t.Error("untagged item matched a kind filter")
	}
	ran := false
	ForKind(KindNone, func(plainItem) { ran = true })(plainItem{})
	if !ran {
		t.Error("ForKind(KindNone) skipped an untagged item")
	}
}
