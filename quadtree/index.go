// Package quadtree provides an adaptive spatial index for a dynamic set of
// moving 2D items.
//
// The index keeps a quadtree whose leaves hold roughly ItemCountTarget items
// each. Leaves split when they overflow and subtrees collapse when they run
// dry; the root grows to cover items inserted outside it and shrinks back
// around populated space. Items may move while a ForEachMutable action runs
// on them, and new items may be inserted from inside that action: both are
// reconciled once the traversal settles.
//
// An Index is not safe for concurrent use.
package quadtree

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/quadsoup/geometry"
)

// DefaultMinNodeDiameter is used when a non-positive minimum diameter is given.
const DefaultMinNodeDiameter = 1e-3

// Index is the spatial container. The zero value is not usable; use New.
type Index struct {
	nodes []node
	free  []nodeID
	epoch uint64 // bumped whenever a node is freed
	root  nodeID

	// growth counts root expansions minus contractions; its parity picks the
	// side the next expansion extends towards.
	growth int

	target      int
	leeway      int
	minDiameter float64

	state      traversalState
	constDepth int

	// reach is the largest collision radius seen, used to widen region
	// pruning for collision queries.
	reach float64

	rehome []rehoming
	work   Work
}

// New creates an index covering region. itemCountTarget is clamped to at
// least 1 and itemCountLeeway to [0, itemCountTarget]. The region is widened
// if needed so neither side is shorter than minNodeDiameter.
func New(region geometry.Rect, itemCountTarget, itemCountLeeway int, minNodeDiameter float64) *Index {
	if !(minNodeDiameter > 0) || math.IsInf(minNodeDiameter, 0) {
		minNodeDiameter = DefaultMinNodeDiameter
	}

	t := &Index{minDiameter: minNodeDiameter}
	t.setCounts(itemCountTarget, itemCountLeeway)
	t.root = t.newNode(noNode, normalizeRegion(region, minNodeDiameter))
	return t
}

func normalizeRegion(r geometry.Rect, minSide float64) geometry.Rect {
	if r.Right < r.Left {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Bottom < r.Top {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	if !(r.Width() >= minSide) {
		r.Right = r.Left + minSide
	}
	if !(r.Height() >= minSide) {
		r.Bottom = r.Top + minSide
	}
	return r
}

func (t *Index) setCounts(target, leeway int) {
	t.target = max(target, 1)
	t.leeway = min(max(leeway, 0), t.target)
}

// Insert adds item to the index. During a mutable traversal the item is
// staged and only becomes visible once the traversal settles.
func (t *Index) Insert(item Item) {
	if item == nil {
		return
	}
	if t.state == stateIdle && t.constDepth > 0 {
		panic(&UsageError{Op: "Insert", State: t.state, Const: t.constDepth})
	}
	t.reach = math.Max(t.reach, item.CollisionShape().R)
	t.addItem(t.root, item, false)
}

// Clear removes every item and collapses the tree to a single leaf covering
// the current root region.
func (t *Index) Clear() {
	t.mustBeIdle("Clear")
	region := t.nodes[t.root].region
	clear(t.nodes)
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.epoch++
	t.reach = 0
	t.root = t.newNode(noNode, region)
}

// RemoveIf removes every item for which pred returns true. pred must not
// modify the index.
//
// A rebalance follows only when some leaf ends up further than the leeway
// from the target count, or when a removal empties a leaf, so that small
// removals skip the full-tree pass. An emptied leaf may leave an internal
// node with an empty subtree, which the rebalance collapses.
func (t *Index) RemoveIf(pred func(Item) bool) {
	t.mustBeIdle("RemoveIf")
	if pred == nil {
		return
	}

	unbalanced := false
	t.walk(t.root, func(id nodeID) {
		n := &t.nodes[id]
		if !n.isLeaf() {
			return
		}
		before := len(n.items)
		n.items = deleteItems(n.items, pred)
		if before > 0 && len(n.items) == 0 {
			unbalanced = true
		}
		if diff := t.target - len(n.items); diff > t.leeway || -diff > t.leeway {
			unbalanced = true
		}
	})

	if unbalanced {
		t.Rebalance()
	}
}

// deleteItems removes items matching pred in place, releasing the dropped
// references.
func deleteItems(items []Item, pred func(Item) bool) []Item {
	kept := items[:0]
	for _, it := range items {
		if !pred(it) {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// Size returns the number of items held, including items staged by an
// in-progress mutable traversal.
func (t *Index) Size() int {
	return t.subtreeCount(t.root)
}

// Region returns the area currently covered by the root.
func (t *Index) Region() geometry.Rect {
	return t.nodes[t.root].region
}

// ItemCountTarget returns the number of items a leaf aims to hold.
func (t *Index) ItemCountTarget() int { return t.target }

// ItemCountLeeway returns how far a leaf may drift from the target before
// the tree is rebalanced.
func (t *Index) ItemCountLeeway() int { return t.leeway }

// MinNodeDiameter returns the smallest side length a node may have.
func (t *Index) MinNodeDiameter() float64 { return t.minDiameter }

// SetItemCountTarget changes the target leaf occupancy and rebalances.
// The leeway is re-clamped to the new target.
func (t *Index) SetItemCountTarget(target int) {
	t.mustBeIdle("SetItemCountTarget")
	t.setCounts(target, t.leeway)
	t.Rebalance()
}

// SetItemCountLeeway changes the rebalance tolerance and rebalances.
func (t *Index) SetItemCountLeeway(leeway int) {
	t.mustBeIdle("SetItemCountLeeway")
	t.setCounts(t.target, leeway)
	t.Rebalance()
}

// addItem places item in the leaf covering its location, searching from
// start. While a mutable traversal runs the item is staged instead.
func (t *Index) addItem(start nodeID, item Item, preventRebalance bool) {
	loc := item.Location()
	if !loc.IsFinite() {
		slog.Warn("quadtree: dropping item with non-finite location", "x", loc.X, "y", loc.Y)
		return
	}

	leaf := t.locate(start, loc)
	n := &t.nodes[leaf]
	if t.state == stateTraversingMutable {
		n.staging = append(n.staging, item)
		return
	}

	n.items = append(n.items, item)
	if !preventRebalance &&
		len(n.items) > t.target+t.leeway &&
		n.region.MinSide() > 2*t.minDiameter {
		t.Rebalance()
	}
}

// locate returns the leaf whose region contains p. The search climbs from
// start until an ancestor contains p, growing the root if even it does not,
// then descends by quadrant.
func (t *Index) locate(start nodeID, p geometry.Point) nodeID {
	id := start
	for !geometry.Contains(t.nodes[id].region, p) {
		if id == t.root {
			t.growRoot()
			id = t.root
			continue
		}
		id = t.nodes[id].parent
	}

	for {
		n := &t.nodes[id]
		if n.isLeaf() {
			return id
		}
		id = n.children[quadrantIndex(n.split, p)]
	}
}
