package quadtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/pthm-cable/quadsoup/geometry"
)

func BenchmarkInsert(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	points := make([]geometry.Point, 4096)
	for i := range points {
		points[i] = pointIn(rng, movementArea)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := New(movementArea, 8, 4, 0.5)
		for _, p := range points {
			tree.Insert(newItem(p))
		}
	}
}

func BenchmarkForEachMutable(b *testing.B) {
	for _, n := range []int{256, 4096} {
		b.Run(fmt.Sprintf("items=%d", n), func(b *testing.B) {
			rng := rand.New(rand.NewSource(1))
			tree := New(movementArea, 8, 4, 0.5)
			fill(tree, rng, movementArea, n)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tree.ForEachMutable(NewMutableQuery(func(item Item) {
					it := item.(*testItem)
					it.loc.X += rng.Float64() - 0.5
					it.loc.Y += rng.Float64() - 0.5
				}))
			}
		})
	}
}

func BenchmarkCountColliding(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	tree := New(movementArea, 8, 4, 0.5)
	fill(tree, rng, movementArea, 4096)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := pointIn(rng, movementArea)
		tree.CountColliding(geometry.Circle{X: p.X, Y: p.Y, R: 5})
	}
}
