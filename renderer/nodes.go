package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadsoup/camera"
	"github.com/pthm-cable/quadsoup/geometry"
	"github.com/pthm-cable/quadsoup/quadtree"
)

// NodeRenderer outlines the regions of the index's nodes.
type NodeRenderer struct {
	Color     rl.Color
	RootColor rl.Color
	Thickness float32
}

// NewNodeRenderer creates a node outline renderer.
func NewNodeRenderer() *NodeRenderer {
	return &NodeRenderer{
		Color:     rl.Color{R: 255, G: 255, B: 255, A: 60},
		RootColor: rl.Color{R: 255, G: 220, B: 0, A: 160},
		Thickness: 1,
	}
}

// Draw outlines every node of index visible through cam.
func (r *NodeRenderer) Draw(index *quadtree.Index, cam *camera.Camera) {
	view := cam.VisibleWorldBounds()
	index.ForEachNodeRegion(func(region geometry.Rect) {
		if !geometry.Collides(view, region) {
			return
		}
		r.outline(region, cam, r.Color)
	})
	r.DrawRoot(index, cam)
}

// DrawRoot outlines only the root region.
func (r *NodeRenderer) DrawRoot(index *quadtree.Index, cam *camera.Camera) {
	r.outline(index.Region(), cam, r.RootColor)
}

func (r *NodeRenderer) outline(region geometry.Rect, cam *camera.Camera, color rl.Color) {
	x0, y0 := cam.WorldToScreen(float32(region.Left), float32(region.Top))
	x1, y1 := cam.WorldToScreen(float32(region.Right), float32(region.Bottom))
	rect := rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	rl.DrawRectangleLinesEx(rect, r.Thickness, color)
}
