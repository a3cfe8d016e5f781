package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/geometry"
	"github.com/pthm-cable/quadsoup/quadtree"
	"github.com/pthm-cable/quadsoup/systems"
)

// selectAt selects the entity under the given screen position, preferring
// grazers. Clicking empty space clears the selection.
func (g *Game) selectAt(sx, sy float32) {
	wx, wy := g.camera.ScreenToWorld(sx, sy)
	e, ok := g.EntityAt(geometry.Point{X: float64(wx), Y: float64(wy)})
	g.selected, g.hasSelection = e, ok
}

// EntityAt returns the entity whose collision circle contains p. Grazers win
// over pellets and dispensers when several overlap.
func (g *Game) EntityAt(p geometry.Point) (ecs.Entity, bool) {
	index := g.Index()
	g.picked = index.Items(g.picked[:0], quadtree.NewQuery(nil).Colliding(p, index.Reach()))

	var best *systems.SpatialItem
	for _, item := range g.picked {
		si := item.(*systems.SpatialItem)
		if best == nil || (si.Kind() == components.KindGrazer && best.Kind() != components.KindGrazer) {
			best = si
		}
	}
	if best == nil {
		return ecs.Entity{}, false
	}
	return best.Entity, true
}

// Selected returns the selected entity if it is still alive.
func (g *Game) Selected() (ecs.Entity, bool) {
	if !g.hasSelection || !g.world.Alive(g.selected) {
		g.hasSelection = false
		return ecs.Entity{}, false
	}
	return g.selected, true
}
