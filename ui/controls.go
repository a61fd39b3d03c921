package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the overlays, their keys and whether each is on.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the panel and returns the y below it.
func (c *ControlsPanel) Draw(set *OverlaySet) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	// Title, two group headers, one line per overlay.
	lines := int32(len(Overlays())) + 3
	r.DrawPanel(c.x, c.y, c.width, lines*lineHeight+padding*2+8)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, debug := range []bool{false, true} {
		header := "View"
		if debug {
			header = "Debug"
		}
		rl.DrawText(header, c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, o := range Overlays() {
			if o.Debug != debug {
				continue
			}
			c.drawToggle(c.x+padding, y, o, set.On(o.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}
	return y
}

// drawToggle draws one overlay line: state dot, name, and the key on the
// right.
func (c *ControlsPanel) drawToggle(x, y int32, o Overlay, on bool, width int32) {
	r := c.renderer

	dot, name := rl.Color{R: 80, G: 80, B: 80, A: 255}, r.Theme.LabelColor
	if on {
		dot, name = rl.Color{R: 100, G: 200, B: 100, A: 255}, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, dot)
	rl.DrawText(o.Name, x+14, y, r.Theme.FontSize, name)

	key := fmt.Sprintf("[%s]", o.KeyLabel)
	keyWidth := rl.MeasureText(key, r.Theme.FontSize)
	rl.DrawText(key, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
}

// StretchPanel lists how far apart the two anchors of each joint are.
type StretchPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStretchPanel creates a new stretch panel.
func NewStretchPanel(x, y, width int32) *StretchPanel {
	return &StretchPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders one bar per joint. limit is the separation drawn as a full
// bar.
func (p *StretchPanel) Draw(names []string, stretches []float64, limit float64) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	n := min(len(names), len(stretches))
	panelHeight := int32(n)*(lineHeight+2) + lineHeight + padding*2 + 4
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	y := p.y + padding
	rl.DrawText("Joint Stretch", p.x+padding, y, 14, rl.White)
	y += lineHeight + 4

	for i := 0; i < n; i++ {
		y = r.DrawStrainBar(p.x+padding, y, names[i], float32(stretches[i]), float32(limit), p.width-padding*2)
	}
	return y
}
