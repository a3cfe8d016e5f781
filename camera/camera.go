// Package camera provides a 2D camera system for viewport control.
package camera

import "github.com/pthm-cable/quadsoup/geometry"

// Camera controls the viewport into the simulation plane. The plane is
// unbounded; the camera can frame any rectangle, such as the index root.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Home is the view restored by Reset.
	HomeX, HomeY, HomeZoom float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera framing a worldW x worldH area anchored at the origin.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.05,
		MaxZoom:   8.0,
	}
	c.Fit(geometry.Rect{Right: float64(worldW), Bottom: float64(worldH)})
	c.HomeX, c.HomeY, c.HomeZoom = c.X, c.Y, c.Zoom
	return c
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Fit centres the camera on r and zooms so all of r is visible.
func (c *Camera) Fit(r geometry.Rect) {
	center := r.Center()
	c.X = float32(center.X)
	c.Y = float32(center.Y)
	if r.Width() <= 0 || r.Height() <= 0 {
		return
	}
	zoomX := c.ViewportW / float32(r.Width())
	zoomY := c.ViewportH / float32(r.Height())
	c.SetZoom(min(zoomX, zoomY))
}

// Reset returns the camera to the view it was created with.
func (c *Camera) Reset() {
	c.X = c.HomeX
	c.Y = c.HomeY
	c.Zoom = c.HomeZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() geometry.Rect {
	halfW := float64(c.ViewportW / (2 * c.Zoom))
	halfH := float64(c.ViewportH / (2 * c.Zoom))
	x, y := float64(c.X), float64(c.Y)
	return geometry.Rect{Left: x - halfW, Top: y - halfH, Right: x + halfW, Bottom: y + halfH}
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
