package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadsoup/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Force a full rebuild of the index
	if rl.IsKeyPressed(rl.KeyB) {
		g.Index().Rebalance()
		slog.Info("index rebalanced", "nodes", g.Index().Stats().Nodes)
	}

	if id, on, ok := g.overlays.HandleKeyPress(rl.GetKeyPressed()); ok {
		slog.Debug("overlay toggled", "overlay", id, "enabled", on)
	}

	g.handleCameraInput()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.handleClick(rl.GetMousePosition())
	}
}

// handleClick routes a left click to the panels first, then to selection.
func (g *Game) handleClick(mouse rl.Vector2) {
	if g.overlays.IsEnabled(ui.OverlayHistory) && g.history.HandleInput(int32(mouse.X), int32(mouse.Y)) {
		return
	}
	if g.inspector.HitClose(mouse.X, mouse.Y) {
		g.hasSelection = false
		return
	}
	if g.inspector.Contains(mouse.X, mouse.Y) {
		return
	}
	g.selectAt(mouse.X, mouse.Y)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-260, 10)
	g.inspector.Resize(int32(w), int32(h))
	g.history.Resize(int32(w), int32(h))
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
	// The root can grow past the world, so fit to whatever it covers now.
	if rl.IsKeyPressed(rl.KeyF) {
		g.camera.Fit(g.Index().Region())
	}
}
