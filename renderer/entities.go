// Package renderer draws the soup and its spatial index with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/camera"
	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/quadtree"
	"github.com/pthm-cable/quadsoup/systems"
)

// EntityRenderer draws indexed entities. Only items inside the camera view
// are visited; the index prunes the rest.
type EntityRenderer struct {
	energy *ecs.Map1[components.Energy]
	cam    *camera.Camera
	action quadtree.Action

	// Drawn counts entities drawn by the last Draw.
	Drawn int
}

// NewEntityRenderer creates a new entity renderer.
func NewEntityRenderer(w *ecs.World) *EntityRenderer {
	r := &EntityRenderer{energy: ecs.NewMap1[components.Energy](w)}
	r.action = func(item quadtree.Item) { r.draw(item.(*systems.SpatialItem)) }
	return r
}

// Draw renders every entity of index visible through cam.
func (r *EntityRenderer) Draw(index *quadtree.Index, cam *camera.Camera) {
	r.cam = cam
	r.Drawn = 0
	view := cam.VisibleWorldBounds().Expand(index.Reach())
	index.ForEachConst(quadtree.NewQuery(r.action).InRegion(view))
}

func (r *EntityRenderer) draw(item *systems.SpatialItem) {
	shape := item.CollisionShape()
	sx, sy := r.cam.WorldToScreen(float32(shape.X), float32(shape.Y))
	size := float32(shape.R) * r.cam.Zoom
	if size < 0.5 {
		size = 0.5
	}

	color := KindColor(item.Kind())
	switch item.Kind() {
	case components.KindGrazer:
		// Dim based on energy
		en := r.energy.Get(item.Entity)
		color.A = uint8(80 + 175*clamp01(en.Fraction()))
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
	case components.KindDispenser:
		rl.DrawCircleLines(int32(sx), int32(sy), size, color)
	default:
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
	}
	r.Drawn++
}

// KindColor returns the draw colour for an entity kind.
func KindColor(k quadtree.Kind) rl.Color {
	switch k {
	case components.KindGrazer:
		return rl.Color{R: 120, G: 220, B: 120, A: 255}
	case components.KindPellet:
		return rl.Color{R: 255, G: 190, B: 60, A: 220}
	case components.KindDispenser:
		return rl.Color{R: 90, G: 160, B: 255, A: 255}
	}
	return rl.Gray
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
