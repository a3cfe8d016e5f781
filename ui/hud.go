package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadsoup/quadtree"
	"github.com/pthm-cable/quadsoup/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Grazers    int
	Pellets    int
	Dispensers int
	Tick       int32
	Speed      int
	FPS        int32
	Paused     bool
	Index      quadtree.Stats
}

// HUD renders the main heads-up display.
type HUD struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 200},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawRectangle(5, 5, 430, 110, h.PanelBg)
	rl.DrawRectangleLines(5, 5, 430, 110, h.PanelBorder)

	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Population counts
	rl.DrawText(
		fmt.Sprintf("Grazers: %d | Pellets: %d | Dispensers: %d", data.Grazers, data.Pellets, data.Dispensers),
		10, 35, 16, rl.LightGray,
	)

	// Simulation info
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	// Index shape
	idx := data.Index
	rl.DrawText(
		fmt.Sprintf("Nodes: %d | Depth: %d | Occupancy: %.1f (max %d) | Growth: %d",
			idx.Nodes, idx.MaxDepth, idx.OccupancyMean, idx.OccupancyMax, idx.RootGrowth),
		10, 75, 14, rl.LightGray,
	)

	// Status
	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 95, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, overlays *OverlayRegistry) {
	legend := "[Space] pause  [</>] speed  [Arrows/Wheel] camera  [Home] reset  [F] fit"
	for _, desc := range overlays.All() {
		state := "off"
		if overlays.IsEnabled(desc.ID) {
			state = "on"
		}
		legend += fmt.Sprintf("  [%s] %s:%s", desc.KeyLabel, desc.Name, state)
	}
	rl.DrawText(legend, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []string) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  TPS: %.0f", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range phases {
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}

	// Index restructuring, also counted in the phases above
	idx := stats.Index
	y += 4
	rl.DrawText(fmt.Sprintf("%-12s %8s %5.1f%%", "settle", idx.SettleAvg.Round(time.Microsecond), idx.SettlePct), x, y, 12, rl.SkyBlue)
	y += 14
	rl.DrawText(fmt.Sprintf("%-12s %8s %5.1f%%", "rebalance", idx.RebalanceAvg.Round(time.Microsecond), idx.RebalancePct), x, y, 12, rl.SkyBlue)
	y += 14
	rl.DrawText(fmt.Sprintf("rehome %.1f  split %.2f  fold %.2f /tick", idx.RehomedPerTick, idx.SplitsPerTick, idx.CollapsesPerTick), x, y, 12, rl.Gray)
}
