package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/camera"
	"github.com/pthm-cable/tacodoll/components"
	"github.com/pthm-cable/tacodoll/physics"
	"github.com/pthm-cable/tacodoll/puppet"
	"github.com/pthm-cable/tacodoll/visual"
)

var (
	stringColor  = rl.Color{R: 0xEC, G: 0xF0, B: 0xF1, A: 0xC0}
	hangerColor  = rl.Color{R: 0x95, G: 0xA5, B: 0xA6, A: 0xFF}
	grabColor    = rl.Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xE0}
	outlineColor = rl.Color{R: 0x1A, G: 0xBC, B: 0x9C, A: 0xFF}
)

// FigureRenderer draws a puppet's sprites, the hanger string and the grab
// marker.
type FigureRenderer struct {
	textures *TextureCache

	// Outlines draws each body's collision outline over its sprite.
	Outlines bool
}

// NewFigureRenderer creates a renderer drawing textures from cache.
func NewFigureRenderer(textures *TextureCache) *FigureRenderer {
	return &FigureRenderer{textures: textures}
}

// Draw renders the figure back to front.
func (r *FigureRenderer) Draw(c *puppet.Controller) {
	cam := c.View()

	if h := c.Hanger(); h != nil {
		r.drawHanger(h, cam)
	}
	for _, item := range c.DrawList() {
		r.drawSprite(&item.Sprite, cam)
	}
	if d, ok := c.Drag(); ok {
		drawGrabMarker(d, cam)
	}
}

func (r *FigureRenderer) drawSprite(s *components.Sprite, cam *camera.Camera) {
	sx, sy := cam.WorldToScreen(s.X, s.Y)
	zoom := float32(cam.Zoom)

	if tex, ok := r.textures.Get(s.Texture); ok {
		w, h := float32(tex.Width), float32(tex.Height)
		src := rl.Rectangle{Width: w, Height: h}
		if s.Mirror < 0 {
			src.Width = -w
		}
		dst := rl.Rectangle{X: float32(sx), Y: float32(sy), Width: w * zoom, Height: h * zoom}
		origin := rl.Vector2{X: dst.Width / 2, Y: dst.Height / 2}
		rl.DrawTexturePro(tex, src, dst, origin, float32(s.Rotation*180/math.Pi), rl.White)
	} else {
		drawPlaceholder(s, cam)
	}

	if r.Outlines {
		drawOutline(s, cam)
	}
}

// drawPlaceholder fills the body's own shape in its fallback colour.
func drawPlaceholder(s *components.Sprite, cam *camera.Camera) {
	col := rlColor(s.Color)
	if s.Fallback == visual.Circle {
		sx, sy := cam.WorldToScreen(s.X, s.Y)
		radius := math.Min(s.Width, s.Height) / 2 * cam.Zoom
		rl.DrawCircleV(rl.Vector2{X: float32(sx), Y: float32(sy)}, float32(radius), col)
		return
	}
	for _, tri := range fan(s.Outline, cp.Vector{X: s.X, Y: s.Y}, s.Rotation, cam.WorldToScreen) {
		rl.DrawTriangle(tri[0], tri[1], tri[2], col)
	}
}

func drawOutline(s *components.Sprite, cam *camera.Camera) {
	pts := place(s.Outline, cp.Vector{X: s.X, Y: s.Y}, s.Rotation, cam.WorldToScreen)
	for i := range pts {
		rl.DrawLineV(pts[i], pts[(i+1)%len(pts)], outlineColor)
	}
}

func (r *FigureRenderer) drawHanger(h *physics.Hanger, cam *camera.Camera) {
	hx, hy := cam.WorldToScreen(h.Position.X, h.Position.Y)
	size := float32(25 * cam.Zoom)
	rl.DrawRectangleV(rl.Vector2{X: float32(hx) - size, Y: float32(hy) - size}, rl.Vector2{X: 2 * size, Y: 2 * size}, hangerColor)

	top, bottom, ok := h.Ends()
	if !ok {
		return
	}
	tx, ty := cam.WorldToScreen(top.X, top.Y)
	bx, by := cam.WorldToScreen(bottom.X, bottom.Y)
	rl.DrawLineEx(rl.Vector2{X: float32(tx), Y: float32(ty)}, rl.Vector2{X: float32(bx), Y: float32(by)}, 2, stringColor)
}

func drawGrabMarker(d puppet.DragInfo, cam *camera.Camera) {
	sx, sy := cam.WorldToScreen(d.X, d.Y)
	rl.DrawCircleLines(int32(sx), int32(sy), 12, grabColor)
	rl.DrawCircleLines(int32(sx), int32(sy), 13, rl.Color{R: grabColor.R, G: grabColor.G, B: grabColor.B, A: grabColor.A / 2})
	rl.DrawCircleV(rl.Vector2{X: float32(sx), Y: float32(sy)}, 3, grabColor)
}

// place moves a body-local outline to pos, turns it by angle and maps each
// point to the screen.
func place(outline []cp.Vector, pos cp.Vector, angle float64, toScreen func(x, y float64) (float64, float64)) []rl.Vector2 {
	rot := cp.ForAngle(angle)
	pts := make([]rl.Vector2, len(outline))
	for i, v := range outline {
		w := pos.Add(v.Rotate(rot))
		x, y := toScreen(w.X, w.Y)
		pts[i] = rl.Vector2{X: float32(x), Y: float32(y)}
	}
	return pts
}

// fan splits a convex outline into triangles around its centre. Every
// triangle is wound counter-clockwise on screen, which DrawTriangle needs.
func fan(outline []cp.Vector, pos cp.Vector, angle float64, toScreen func(x, y float64) (float64, float64)) [][3]rl.Vector2 {
	if len(outline) < 3 {
		return nil
	}
	pts := place(outline, pos, angle, toScreen)
	cx, cy := toScreen(pos.X, pos.Y)
	centre := rl.Vector2{X: float32(cx), Y: float32(cy)}

	tris := make([][3]rl.Vector2, 0, len(pts))
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if cross(centre, a, b) > 0 {
			a, b = b, a
		}
		tris = append(tris, [3]rl.Vector2{centre, a, b})
	}
	return tris
}

// cross is the z of (a-o)×(b-o). With y pointing down, negative means
// counter-clockwise as seen on screen.
func cross(o, a, b rl.Vector2) float32 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func rlColor(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
