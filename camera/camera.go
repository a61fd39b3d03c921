// Package camera provides a 2D camera over a bounded stage.
package camera

// Camera controls the viewport onto the stage.
// Supports pan and zoom; the view never leaves the stage.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Stage dimensions
	StageW, StageH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the stage with 1:1 zoom.
func New(viewportW, viewportH, stageW, stageH float64) *Camera {
	c := &Camera{
		X:         stageW / 2,
		Y:         stageH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		StageW:    stageW,
		StageH:    stageH,
		MaxZoom:   4.0,
	}
	c.MinZoom = c.minZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	return c
}

// minZoom keeps the visible area inside the stage.
// At zoom Z, visible world area is (viewportW/Z, viewportH/Z).
func (c *Camera) minZoom() float64 {
	return max(c.ViewportW/c.StageW, c.ViewportH/c.StageH)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// InViewport reports whether a screen point lies inside the viewport.
func (c *Camera) InViewport(sx, sy float64) bool {
	return sx >= 0 && sy >= 0 && sx <= c.ViewportW && sy <= c.ViewportH
}

// ClampToView moves a world point so it sits at least margin world units
// inside the visible area. If the view is narrower than two margins the
// point is pinned to the view's center on that axis.
func (c *Camera) ClampToView(wx, wy, margin float64) (float64, float64) {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return clampMargin(wx, minX, maxX, margin), clampMargin(wy, minY, maxY, margin)
}

func clampMargin(v, lo, hi, margin float64) float64 {
	lo += margin
	hi -= margin
	if lo > hi {
		return (lo + hi) / 2
	}
	return clamp(v, lo, hi)
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.minZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.keepInside()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.keepInside()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.keepInside()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.StageW / 2
	c.Y = c.StageH / 2
	c.Zoom = max(1.0, c.MinZoom)
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// keepInside stops the view from showing anything beyond the stage edges.
func (c *Camera) keepInside() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	c.X = clampMargin(c.X, 0, c.StageW, halfW)
	c.Y = clampMargin(c.Y, 0, c.StageH, halfH)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
