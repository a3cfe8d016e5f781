package quadtree

import (
	"math"
	"time"

	"github.com/pthm-cable/quadsoup/geometry"
)

// rehoming is an item that left its leaf during a mutable traversal.
type rehoming struct {
	item  Item
	from  nodeID
	epoch uint64 // t.epoch when from was recorded
}

// ForEachConst runs q.Action for every item accepted by q's filters. The
// action must not modify the index; Insert from it panics unless a mutable
// traversal is also in progress. It may be nested inside a ForEachMutable
// action, in which case items staged by that traversal are not visited.
func (t *Index) ForEachConst(q Query) {
	if q.Action == nil {
		return
	}
	t.constDepth++
	defer func() { t.constDepth-- }()

	t.visit(q.Region, q.Filter, q.Action)
}

// ForEachMutable runs q.Action for every item accepted by q's filters. The
// action may move the item it is given and may Insert new items; it must
// not start another mutable traversal.
//
// Once every action has run, each leaf drops the items matched by q.Remove,
// re-homes items that left its region and absorbs its staged inserts. A
// single rebalance then restores the occupancy bounds.
func (t *Index) ForEachMutable(q MutableQuery) {
	t.mustBeIdle("ForEachMutable")

	t.state = stateTraversingMutable
	if q.Action != nil {
		t.visit(q.Region, q.Filter, q.Action)
	}
	t.state = stateIdle

	start := time.Now()
	t.settle(q.Remove)
	t.work.Settles++
	t.work.SettleTime += time.Since(start)

	t.Rebalance()
}

// visit walks the leaves passing region and runs action on items passing
// filter. Nodes are re-read by id after each action since actions may grow
// the arena.
func (t *Index) visit(region RegionFilter, filter ItemFilter, action Action) {
	t.walkFiltered(t.root, region, func(id nodeID) {
		for i := 0; i < len(t.nodes[id].items); i++ {
			item := t.nodes[id].items[i]
			if filter == nil || filter(item) {
				action(item)
			}
		}
	})
}

// settle is the second half of a mutable traversal: removal, re-homing of
// moved items and the staging merge. Re-homing runs after every leaf has been
// swept, since placing an item can grow the root.
func (t *Index) settle(remove ItemFilter) {
	moved := t.rehome[:0]
	reach := 0.0

	t.walk(t.root, func(id nodeID) {
		n := &t.nodes[id]
		if !n.isLeaf() {
			return
		}

		kept := n.items[:0]
		for _, item := range n.items {
			switch {
			case remove != nil && remove(item):
				continue
			case !geometry.Contains(n.region, item.Location()):
				moved = append(moved, rehoming{item: item, from: id, epoch: t.epoch})
			default:
				kept = append(kept, item)
			}
			reach = math.Max(reach, item.CollisionShape().R)
		}
		clear(n.items[len(kept):])
		n.items = kept

		for _, item := range n.staging {
			if geometry.Contains(n.region, item.Location()) {
				n.items = append(n.items, item)
			} else {
				moved = append(moved, rehoming{item: item, from: id, epoch: t.epoch})
			}
			reach = math.Max(reach, item.CollisionShape().R)
		}
		clear(n.staging)
		n.staging = n.staging[:0]
	})

	t.reach = reach
	t.work.Rehomed += len(moved)
	for _, m := range moved {
		start := m.from
		if m.epoch != t.epoch {
			start = t.root
		}
		t.addItem(start, m.item, true)
	}
	clear(moved)
	t.rehome = moved[:0]
}

// ForEachNodeRegion runs action with the region of every node, internal
// nodes included, for drawing or debugging the partition.
func (t *Index) ForEachNodeRegion(action func(region geometry.Rect)) {
	t.walk(t.root, func(id nodeID) {
		action(t.nodes[id].region)
	})
}

// ForEachColliding runs action for every item whose collision shape collides
// with shape.
func (t *Index) ForEachColliding(shape geometry.Shape, action Action) {
	t.ForEachConst(NewQuery(action).Colliding(shape, t.reach))
}

// CountColliding returns the number of items whose collision shape collides
// with shape.
func (t *Index) CountColliding(shape geometry.Shape) int {
	count := 0
	t.ForEachColliding(shape, func(Item) { count++ })
	return count
}

// Items appends every item accepted by q's filters to dst and returns it.
// q.Action is ignored.
func (t *Index) Items(dst []Item, q Query) []Item {
	q.Action = func(item Item) { dst = append(dst, item) }
	t.ForEachConst(q)
	return dst
}

// Reach returns the largest collision radius currently known to the index.
// Collision queries widen their region pruning by this much.
func (t *Index) Reach() float64 { return t.reach }
