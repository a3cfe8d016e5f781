package quadtree

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/quadsoup/geometry"
)

// Rebalance sweeps the whole tree once. Internal nodes whose subtree holds
// fewer than target-leeway items (or none) collapse into leaves; leaves
// holding more than target+leeway items split, unless their children would
// fall below the minimum diameter. The root is then contracted around its
// populated children.
func (t *Index) Rebalance() {
	t.mustBeIdle("Rebalance")
	start := time.Now()
	defer func() {
		t.work.Rebalances++
		t.work.RebalanceTime += time.Since(start)
	}()

	// Counts are taken up front. Only nodes that were internal before the
	// sweep consult them, and those are never freed before being visited.
	counts := t.subtreeCounts()
	stack := []nodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !t.nodes[id].isLeaf() {
			if c := counts[id]; c == 0 || c < t.target-t.leeway {
				t.collapse(id)
			} else {
				stack = append(stack, t.nodes[id].children[:]...)
			}
			continue
		}

		n := &t.nodes[id]
		if len(n.items) > t.target+t.leeway && n.region.MinSide() >= 2*t.minDiameter {
			t.subdivide(id)
			stack = append(stack, t.nodes[id].children[:]...)
		}
	}

	t.contractRoot()
}

// collapse turns an internal node into a leaf holding all descendant items.
func (t *Index) collapse(id nodeID) {
	children := t.nodes[id].children
	var items []Item
	for _, c := range children {
		items = t.collectItems(c, items)
		t.freeSubtree(c)
	}
	n := &t.nodes[id]
	n.children = [4]nodeID{noNode, noNode, noNode, noNode}
	n.items = append(n.items, items...)
	t.work.Collapses++
}

// subdivide splits a leaf at its centre and hands its items to the children.
func (t *Index) subdivide(id nodeID) {
	t.createChildren(id, t.nodes[id].region.Center())
	t.work.Splits++

	n := &t.nodes[id]
	items := n.items
	n.items = nil
	for _, item := range items {
		c := n.children[quadrantIndex(n.split, item.Location())]
		t.nodes[c].items = append(t.nodes[c].items, item)
	}
}

// growRoot doubles the root's width and height. Even growth counts extend
// right and down, odd counts left and up, so repeated growth stays roughly
// centred on the original region.
//
// A well-populated old root is kept intact as a child of the new root. A
// sparse one is flattened into the new root instead. During a mutable
// traversal the structure is always kept, as the traversal may be walking it.
func (t *Index) growRoot() {
	outward := t.growth%2 == 0
	t.growth++

	oldID := t.root
	old := t.nodes[oldID].region
	w, h := old.Width(), old.Height()

	region := old
	var split geometry.Point
	var slot int
	if outward {
		region.Right += w
		region.Bottom += h
		split = geometry.Point{X: old.Right, Y: old.Bottom}
		slot = 0
	} else {
		region.Left -= w
		region.Top -= h
		split = geometry.Point{X: old.Left, Y: old.Top}
		slot = 3
	}

	count := t.subtreeCount(oldID)
	keep := t.state == stateTraversingMutable || (count > 0 && count >= t.target-t.leeway)

	newID := t.newNode(noNode, region)
	if keep {
		var children [4]nodeID
		for i := range children {
			if i == slot {
				children[i] = oldID
				continue
			}
			children[i] = t.newNode(newID, region.Split(split, i))
		}
		n := &t.nodes[newID]
		n.split = split
		n.children = children
		t.nodes[oldID].parent = newID
	} else {
		items := t.collectItems(oldID, nil)
		t.freeSubtree(oldID)
		t.nodes[newID].items = items
	}
	t.root = newID

	slog.Debug("quadtree root grown",
		"region", region,
		"kept_structure", keep,
		"items", count,
	)
}

// contractRoot replaces the root with its only populated child for as long
// as there is exactly one, undoing a growth step each time.
func (t *Index) contractRoot() {
	for {
		root := &t.nodes[t.root]
		if root.isLeaf() {
			return
		}

		only := noNode
		populated := 0
		for _, c := range root.children {
			if t.nodes[c].populated() {
				populated++
				only = c
			}
		}
		if populated != 1 {
			return
		}

		oldID := t.root
		for _, c := range t.nodes[oldID].children {
			if c != only {
				t.freeSubtree(c)
			}
		}
		t.freeNode(oldID)
		t.nodes[only].parent = noNode
		t.root = only
		t.growth--
	}
}
