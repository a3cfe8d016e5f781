package quadtree

import (
	"math"

	"github.com/pthm-cable/quadsoup/geometry"
)

// splitTolerance is the relative slack allowed when comparing derived node
// sizes, since halving a region can lose the last bit.
const splitTolerance = 1e-9

// Validate walks the whole tree and reports whether every structural
// invariant holds. It is meant for tests and debugging and panics when
// called during a mutable traversal.
func (t *Index) Validate() bool {
	if t.state != stateIdle {
		panic(&UsageError{Op: "Validate", State: t.state, Const: t.constDepth})
	}

	valid := true
	require := func(ok bool) {
		if !ok {
			valid = false
		}
	}

	require(t.nodes[t.root].parent == noNode)
	require(t.target >= 1 && t.leeway >= 0 && t.leeway <= t.target)

	minSide := t.minDiameter * (1 - splitTolerance)
	reachable := 0
	t.walk(t.root, func(id nodeID) {
		reachable++
		n := &t.nodes[id]
		require(n.live)
		require(n.region.MinSide() >= minSide)

		if n.isLeaf() {
			require(len(n.staging) == 0)
			for _, c := range n.children {
				require(c == noNode)
			}
			for _, item := range n.items {
				require(geometry.Contains(n.region, item.Location()))
			}
			return
		}

		require(len(n.items) == 0 && len(n.staging) == 0)
		require(t.subtreeCount(id) > 0)

		center := n.region.Center()
		require(math.Abs(n.split.X-center.X) <= splitTolerance*n.region.Width())
		require(math.Abs(n.split.Y-center.Y) <= splitTolerance*n.region.Height())

		for i, c := range n.children {
			require(c != noNode)
			if c == noNode {
				continue
			}
			child := &t.nodes[c]
			require(child.parent == id)
			require(child.region == n.region.Split(n.split, i))
		}
	})

	// Every allocated node is part of the tree.
	require(reachable == len(t.nodes)-len(t.free))

	return valid
}
