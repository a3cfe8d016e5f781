package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/geometry"
	"github.com/pthm-cable/quadsoup/inspector"
	"github.com/pthm-cable/quadsoup/telemetry"
	"github.com/pthm-cable/quadsoup/ui"
)

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 16, B: 22, A: 255})

	// Index overlays go under the entities
	switch {
	case g.overlays.IsEnabled(ui.OverlayPartition):
		g.nodes.Draw(g.Index(), g.camera)
	case g.overlays.IsEnabled(ui.OverlayRootRegion):
		g.nodes.DrawRoot(g.Index(), g.camera)
	}

	g.entities.Draw(g.Index(), g.camera)
	g.drawActiveOverlays()

	g.hud.Draw(ui.HUDData{
		Title:      "Quadsoup",
		Grazers:    g.spatial.Count(components.KindGrazer),
		Pellets:    g.spatial.Count(components.KindPellet),
		Dispensers: g.spatial.Count(components.KindDispenser),
		Tick:       g.tick,
		Speed:      g.stepsPerUpdate,
		FPS:        rl.GetFPS(),
		Paused:     g.paused,
		Index:      g.Index().Stats(),
	})
	g.drawInspector()
	if g.overlays.IsEnabled(ui.OverlayHistory) {
		g.history.Draw()
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats(), telemetry.Phases)
	}
	g.hud.DrawControls(int32(g.screenHeight), g.overlays)

	rl.EndDrawing()
}

// entityIndexInfo is the inspector's view of how the index sees an entity.
type entityIndexInfo struct {
	Kind     string
	Touching int     `inspect:"label"`
	Food     int     `inspect:"label"`
	Fullness float64 `inspect:"bar"`
}

// drawInspector shows the selected entity's components, or hides the panel.
func (g *Game) drawInspector() {
	e, ok := g.Selected()
	if !ok {
		g.inspector.Hide()
		return
	}

	pos := g.spatial.Position(e)
	radius := g.spatial.Radius(e)
	energy := g.energyMap.Get(e)
	kind := g.speciesMap.Get(e).Kind
	info := entityIndexInfo{
		Kind:     components.KindName(kind),
		Touching: g.Index().CountColliding(geometry.Circle{X: pos.X, Y: pos.Y, R: radius}) - 1,
		Fullness: energy.Fraction(),
	}
	if kind == components.KindGrazer {
		g.sensed = g.spatial.NeighborsInto(g.sensed[:0], pos, g.movement.SenseRadius(), components.KindPellet, e)
		info.Food = len(g.sensed)
	}

	g.inspector.Draw("INSPECTOR", []inspector.Section{
		{Title: "POSITION", Component: g.posMap.Get(e)},
		{Title: "VELOCITY", Component: g.velMap.Get(e)},
		{Title: "BODY", Component: g.bodyMap.Get(e)},
		{Title: "ENERGY", Component: energy},
		{Title: "INDEX", Component: &info},
	})
}
