package quadtree

import "github.com/pthm-cable/quadsoup/geometry"

// nodeID addresses a node in the index arena. Parents and children refer to
// each other by id, so the parent back-reference never owns anything.
type nodeID int32

// noNode marks the root's parent and the children of a leaf.
const noNode nodeID = -1

// node is one rectangular region of the partition. A node either has four
// children or holds items; staging collects items inserted while a mutable
// traversal is walking the tree.
type node struct {
	region   geometry.Rect
	split    geometry.Point // where the children meet; the region centre
	parent   nodeID
	children [4]nodeID
	items    []Item
	staging  []Item
	live     bool
}

func (n *node) isLeaf() bool { return n.children[0] == noNode }

func (n *node) populated() bool {
	return !n.isLeaf() || len(n.items) > 0 || len(n.staging) > 0
}

// quadrantIndex returns the child slot whose region holds p. A point on the
// vertical split line belongs to the right column and one on the horizontal
// split line to the bottom row, i.e. ties round towards the higher index.
// Child regions are closed, so the chosen child always contains p.
func quadrantIndex(split, p geometry.Point) int {
	i := 0
	if p.X >= split.X {
		i++
	}
	if p.Y >= split.Y {
		i += 2
	}
	return i
}

// newNode allocates a leaf, reusing a freed slot when one is available.
// Any *node obtained before this call may be stale afterwards.
func (t *Index) newNode(parent nodeID, region geometry.Rect) nodeID {
	n := node{
		region:   region,
		parent:   parent,
		children: [4]nodeID{noNode, noNode, noNode, noNode},
		live:     true,
	}
	if last := len(t.free) - 1; last >= 0 {
		id := t.free[last]
		t.free = t.free[:last]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return nodeID(len(t.nodes) - 1)
}

// freeNode releases a single node. Its items are dropped, not moved.
func (t *Index) freeNode(id nodeID) {
	t.nodes[id] = node{parent: noNode, children: [4]nodeID{noNode, noNode, noNode, noNode}}
	t.free = append(t.free, id)
	t.epoch++
}

// freeSubtree releases id and all of its descendants.
func (t *Index) freeSubtree(id nodeID) {
	children := t.nodes[id].children
	if children[0] != noNode {
		for _, c := range children {
			t.freeSubtree(c)
		}
	}
	t.freeNode(id)
}

// createChildren gives the leaf id four empty children meeting at split.
func (t *Index) createChildren(id nodeID, split geometry.Point) {
	var children [4]nodeID
	region := t.nodes[id].region
	for i := range children {
		children[i] = t.newNode(id, region.Split(split, i))
	}
	n := &t.nodes[id]
	n.split = split
	n.children = children
}

// walk visits id and every descendant in pre-order. Nodes must not be freed
// while walking; nodes may be added.
func (t *Index) walk(id nodeID, fn func(id nodeID)) {
	t.walkFiltered(id, nil, fn)
}

// walkFiltered is walk, skipping every node (and its subtree) whose region
// fails filter.
func (t *Index) walkFiltered(id nodeID, filter RegionFilter, fn func(id nodeID)) {
	if filter != nil && !filter(t.nodes[id].region) {
		return
	}
	fn(id)
	children := t.nodes[id].children
	if children[0] == noNode {
		return
	}
	for _, c := range children {
		t.walkFiltered(c, filter, fn)
	}
}

// subtreeCount returns the number of items held at or below id.
func (t *Index) subtreeCount(id nodeID) int {
	count := 0
	t.walk(id, func(id nodeID) {
		n := &t.nodes[id]
		count += len(n.items) + len(n.staging)
	})
	return count
}

// subtreeCounts returns the item count below every node reachable from the
// root, indexed by node id. Unreachable ids report zero.
func (t *Index) subtreeCounts() []int {
	counts := make([]int, len(t.nodes))
	var count func(id nodeID) int
	count = func(id nodeID) int {
		n := &t.nodes[id]
		c := len(n.items) + len(n.staging)
		if !n.isLeaf() {
			for _, child := range n.children {
				c += count(child)
			}
		}
		counts[id] = c
		return c
	}
	count(t.root)
	return counts
}

// collectItems moves every item (and staged item) below id into dst.
func (t *Index) collectItems(id nodeID, dst []Item) []Item {
	t.walk(id, func(id nodeID) {
		n := &t.nodes[id]
		dst = append(dst, n.items...)
		dst = append(dst, n.staging...)
		n.items = nil
		n.staging = nil
	})
	return dst
}
