// Package inspector shows the live state of one body of the figure.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tacodoll/puppet"
	"github.com/pthm-cable/tacodoll/ragdoll"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
)

// PartView is the inspected state of one body.
type PartView struct {
	Label         ragdoll.Label
	X, Y          float64
	VX, VY        float64
	Angle         float64
	Spin          float64
	Mass          float64
	Width, Height float64
	ZIndex        int
	Mirror        float64
	Texture       string
	Placeholder   bool
	Held          bool
	Gaps          []JointGap // joints in build order
}

// View reads the current state of the body labelled l.
func View(c *puppet.Controller, l ragdoll.Label) (PartView, bool) {
	doll := c.Ragdoll()
	part := doll.Part(l)
	if part == nil || part.Body == nil {
		return PartView{}, false
	}
	body := part.Body
	pos, vel := body.Position(), body.Velocity()

	v := PartView{
		Label:  l,
		X:      pos.X,
		Y:      pos.Y,
		VX:     vel.X,
		VY:     vel.Y,
		Angle:  body.Angle(),
		Spin:   body.AngularVelocity(),
		Mass:   body.Mass(),
		Width:  part.Width,
		Height: part.Height,
	}
	if s := c.Sprite(l); s != nil {
		v.ZIndex = s.ZIndex
		v.Mirror = s.Mirror
		v.Texture = s.Texture
		v.Placeholder = s.Placeholder()
	}
	if d, ok := c.Drag(); ok && d.Label == l {
		v.Held = true
	}
	for i := range doll.Joints {
		j := &doll.Joints[i]
		switch l {
		case j.A:
			v.Gaps = append(v.Gaps, JointGap{Other: j.B, Gap: doll.Separation(j)})
		case j.B:
			v.Gaps = append(v.Gaps, JointGap{Other: j.A, Gap: doll.Separation(j)})
		}
	}
	return v, true
}

// Inspector manages part selection and panel rendering.
type Inspector struct {
	selected    ragdoll.Label
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 60,
	}
}

// Resize keeps the panel on the right edge.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// HandleInput selects the part under a right click. A right click on empty
// space or the close button hides the panel. It reports whether the click was used, so the
// caller does not also start a drag.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, pick func(x, y float64) (ragdoll.Label, bool)) bool {
	left := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	right := rl.IsMouseButtonPressed(rl.MouseButtonRight)
	if !left && !right {
		return false
	}

	if ins.hasSelected {
		if ins.overClose(mouseX, mouseY) {
			ins.Deselect()
			return true
		}
		if ins.overPanel(mouseX, mouseY) {
			return true
		}
	}

	if !right {
		return false
	}
	if l, ok := pick(float64(mouseX), float64(mouseY)); ok {
		ins.Select(l)
	} else {
		ins.Deselect()
	}
	return true
}

func (ins *Inspector) overClose(x, y float32) bool {
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	return int32(x) >= closeX && int32(x) <= closeX+20 &&
		int32(y) >= closeY && int32(y) <= closeY+20
}

func (ins *Inspector) overPanel(x, y float32) bool {
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth &&
		int32(y) >= ins.panelY
}

// Select shows the part labelled l.
func (ins *Inspector) Select(l ragdoll.Label) {
	ins.selected = l
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected part.
func (ins *Inspector) Selected() (ragdoll.Label, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel if a part is selected.
func (ins *Inspector) Draw(c *puppet.Controller) {
	if !ins.hasSelected {
		return
	}
	view, ok := View(c, ins.selected)
	if !ok {
		ins.Deselect()
		return
	}
	rows := view.Rows()
	panelHeight := HeaderHeight + PanelPadding*2 + rowsHeight(rows)

	// Draw panel background
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Draw header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("PART: "+view.Label.String(), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	// Draw close button
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, r := range rows {
		y += drawRow(x, y, r)
	}
}
