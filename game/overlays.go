package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/geometry"
	"github.com/pthm-cable/quadsoup/quadtree"
	"github.com/pthm-cable/quadsoup/systems"
	"github.com/pthm-cable/quadsoup/ui"
)

// drawActiveOverlays renders the query overlays for the selected entity.
func (g *Game) drawActiveOverlays() {
	e, ok := g.Selected()
	if !ok {
		return
	}
	pos := g.spatial.Position(e)

	if g.overlays.IsEnabled(ui.OverlaySensing) {
		g.drawSensing(e, pos)
	}
	if g.overlays.IsEnabled(ui.OverlayCollisions) {
		g.drawCollisions(e, pos)
	}

	// Selection ring
	sx, sy := g.camera.WorldToScreen(float32(pos.X), float32(pos.Y))
	rl.DrawCircleLines(int32(sx), int32(sy), 8+float32(g.spatial.Radius(e))*g.camera.Zoom, rl.White)
}

// drawSensing shows the pellet search radius and the pellets it currently
// finds, with a line to the nearest one.
func (g *Game) drawSensing(e ecs.Entity, pos geometry.Point) {
	radius := g.movement.SenseRadius()
	sx, sy := g.camera.WorldToScreen(float32(pos.X), float32(pos.Y))
	rl.DrawCircleLines(int32(sx), int32(sy), float32(radius)*g.camera.Zoom, rl.Color{R: 100, G: 200, B: 255, A: 120})

	g.sensed = g.spatial.NeighborsInto(g.sensed[:0], pos, radius, components.KindPellet, e)
	for _, n := range g.sensed {
		p := n.Item.Location()
		px, py := g.camera.WorldToScreen(float32(p.X), float32(p.Y))
		rl.DrawCircleLines(int32(px), int32(py), 3, rl.SkyBlue)
	}
	if near, ok := g.spatial.Nearest(pos, radius, components.KindPellet, e); ok {
		p := near.Item.Location()
		px, py := g.camera.WorldToScreen(float32(p.X), float32(p.Y))
		rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: px, Y: py}, rl.SkyBlue)
	}
}

// drawCollisions highlights every item whose collision circle touches the
// selected entity's.
func (g *Game) drawCollisions(e ecs.Entity, pos geometry.Point) {
	radius := g.spatial.Radius(e)
	shape := geometry.Circle{X: pos.X, Y: pos.Y, R: radius}
	g.Index().ForEachColliding(shape, func(item quadtree.Item) {
		si := item.(*systems.SpatialItem)
		if si.Entity == e {
			return
		}
		c := si.CollisionShape()
		cx, cy := g.camera.WorldToScreen(float32(c.X), float32(c.Y))
		rl.DrawCircleLines(int32(cx), int32(cy), float32(c.R)*g.camera.Zoom+2, rl.Red)
	})
}
