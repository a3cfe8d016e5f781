// Quadtree preview tool - interactive view of how the index partitions
// moving items, with sliders for its tuning.
//
// Usage: go run ./cmd/quadview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadsoup/geometry"
	"github.com/pthm-cable/quadsoup/quadtree"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	fieldSize    = 640
	fieldX       = 10
	fieldY       = 10
	panelWidth   = windowWidth - fieldSize - 30
)

// IndexParams holds the slider values.
type IndexParams struct {
	Target      float32
	Leeway      float32
	MinDiameter float32
	QueryRadius float32
	Speed       float32
}

func defaultParams() IndexParams {
	return IndexParams{Target: 8, Leeway: 4, MinDiameter: 4, QueryRadius: 60, Speed: 40}
}

// dot is a bouncing item.
type dot struct {
	x, y, vx, vy, r float64
}

func (d *dot) Location() geometry.Point { return geometry.Point{X: d.x, Y: d.y} }
func (d *dot) CollisionShape() geometry.Circle { return geometry.Circle{X: d.x, Y: d.y, R: d.r} }

// sim owns the index and its items.
type sim struct {
	rng    *rand.Rand
	field  geometry.Rect
	index  *quadtree.Index
	params IndexParams
	dt     float64
	move   quadtree.Action
}

func newSim(params IndexParams) *sim {
	s := &sim{
		rng:    rand.New(rand.NewSource(1)),
		field:  geometry.Rect{Right: fieldSize, Bottom: fieldSize},
		params: params,
	}
	s.move = func(item quadtree.Item) {
		d := item.(*dot)
		speed := float64(s.params.Speed) / 40
		d.x += d.vx * speed * s.dt
		d.y += d.vy * speed * s.dt
		if d.x < s.field.Left || d.x > s.field.Right {
			d.vx = -d.vx
		}
		if d.y < s.field.Top || d.y > s.field.Bottom {
			d.vy = -d.vy
		}
		p := s.field.Clamp(geometry.Point{X: d.x, Y: d.y})
		d.x, d.y = p.X, p.Y
	}
	s.rebuild(nil)
	return s
}

// rebuild creates a fresh index with the current parameters and refills it.
func (s *sim) rebuild(items []quadtree.Item) {
	s.index = quadtree.New(s.field, int(s.params.Target), int(s.params.Leeway), float64(s.params.MinDiameter))
	for _, item := range items {
		s.index.Insert(item)
	}
}

// spawn adds n dots around (x, y).
func (s *sim) spawn(x, y float64, n int) {
	for range n {
		s.index.Insert(&dot{
			x:  x + s.rng.NormFloat64()*20,
			y:  y + s.rng.NormFloat64()*20,
			vx: s.rng.NormFloat64() * 40,
			vy: s.rng.NormFloat64() * 40,
			r:  1 + s.rng.Float64()*3,
		})
	}
}

func (s *sim) step(dt float64) {
	s.dt = dt
	s.index.ForEachMutable(quadtree.NewMutableQuery(s.move))
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Quadtree Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	s := newSim(defaultParams())
	s.spawn(fieldSize/2, fieldSize/2, 200)

	paused := false
	var hits []quadtree.Item

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		cursor := geometry.Point{X: float64(mouse.X - fieldX), Y: float64(mouse.Y - fieldY)}
		inField := geometry.Contains(s.field, cursor)

		if inField && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			s.spawn(cursor.X, cursor.Y, 5)
		}
		if inField && rl.IsMouseButtonPressed(rl.MouseButtonRight) {
			s.index.RemoveIf(quadtree.ItemCollides(geometry.Circle{X: cursor.X, Y: cursor.Y, R: float64(s.params.QueryRadius)}))
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}

		if !paused {
			s.step(float64(rl.GetFrameTime()))
		}

		query := geometry.Circle{X: cursor.X, Y: cursor.Y, R: float64(s.params.QueryRadius)}
		hits = hits[:0]
		if inField {
			hits = s.index.Items(hits, quadtree.NewQuery(nil).Colliding(query, s.index.Reach()))
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Field
		rl.DrawRectangle(fieldX, fieldY, fieldSize, fieldSize, rl.Color{R: 20, G: 24, B: 30, A: 255})
		s.index.ForEachNodeRegion(func(r geometry.Rect) {
			rl.DrawRectangleLinesEx(rl.Rectangle{
				X: fieldX + float32(r.Left), Y: fieldY + float32(r.Top),
				Width: float32(r.Width()), Height: float32(r.Height()),
			}, 1, rl.Color{R: 90, G: 110, B: 130, A: 255})
		})
		s.index.ForEachConst(quadtree.NewQuery(func(item quadtree.Item) {
			c := item.CollisionShape()
			rl.DrawCircleV(rl.Vector2{X: fieldX + float32(c.X), Y: fieldY + float32(c.Y)}, float32(c.R), rl.Color{R: 240, G: 200, B: 80, A: 255})
		}))
		for _, item := range hits {
			c := item.CollisionShape()
			rl.DrawCircleV(rl.Vector2{X: fieldX + float32(c.X), Y: fieldY + float32(c.Y)}, float32(c.R)+1, rl.Red)
		}
		if inField {
			rl.DrawCircleLines(int32(mouse.X), int32(mouse.Y), s.params.QueryRadius, rl.SkyBlue)
		}

		// Control panel
		panelX := float32(fieldSize + 20)
		panelY := float32(10)

		rl.DrawText("Index Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		next := s.params
		slider := func(label, minLabel, maxLabel, format string, value *float32, lo, hi float32) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			*value = gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				minLabel, maxLabel,
				*value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
		}
		slider("Item count target", "1", "64", "%.0f", &next.Target, 1, 64)
		slider("Item count leeway", "0", "32", "%.0f", &next.Leeway, 0, 32)
		slider("Min node diameter", "0.5", "64", "%.1f", &next.MinDiameter, 0.5, 64)
		slider("Query radius", "5", "200", "%.0f", &next.QueryRadius, 5, 200)
		slider("Speed", "0", "200", "%.0f", &next.Speed, 0, 200)

		switch {
		case int(next.MinDiameter*10) != int(s.params.MinDiameter*10):
			s.params = next
			s.rebuild(s.index.Items(nil, quadtree.NewQuery(nil)))
		case int(next.Target) != int(s.params.Target):
			s.params = next
			s.index.SetItemCountTarget(int(next.Target))
		case int(next.Leeway) != int(s.params.Leeway):
			s.params = next
			s.index.SetItemCountLeeway(int(next.Leeway))
		default:
			s.params = next
		}

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Rebalance") {
			s.index.Rebalance()
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Clear") {
			s.index.Clear()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			s = newSim(defaultParams())
			s.spawn(fieldSize/2, fieldSize/2, 200)
		}
		panelY += 50

		// Stats
		st := s.index.Stats()
		lines := []string{
			fmt.Sprintf("Items: %d  Hits: %d", st.Items, len(hits)),
			fmt.Sprintf("Nodes: %d  Leaves: %d  Depth: %d", st.Nodes, st.Leaves, st.MaxDepth),
			fmt.Sprintf("Occupancy: %.2f +/- %.2f (max %d)", st.OccupancyMean, st.OccupancyStdDev, st.OccupancyMax),
			fmt.Sprintf("Reach: %.2f", s.index.Reach()),
			fmt.Sprintf("Valid: %v", s.index.Validate()),
		}
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.DarkGray)
			panelY += 18
		}

		rl.DrawText("LMB spawn  RMB delete  Space pause", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy YAML on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf("index:\n  item_count_target: %d\n  item_count_leeway: %d\n  min_node_diameter: %.1f\n",
				int(s.params.Target), int(s.params.Leeway), s.params.MinDiameter))
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
