package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tacodoll/ui"
)

// Anchor separation per unit of figure scale drawn as a full stretch bar.
const stretchFullBar = 8.0

var (
	jointColor  = rl.Color{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF}
	anchorColor = rl.Color{R: 0xF1, G: 0xC4, B: 0x0F, A: 0xFF}
)

// handleOverlayKeys drains this frame's key queue into the overlay set.
func (g *Game) handleOverlayKeys() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		id, on, ok := g.uiOverlays.HandleKey(key)
		if ok && id == ui.OverlayOutlines {
			g.figure.Outlines = on
		}
	}
}

// drawActiveOverlays renders all currently enabled overlays.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.uiOverlays.Enabled() {
		switch id {
		case ui.OverlayJoints:
			g.drawJoints()
		case ui.OverlayStretch:
			g.drawStretchPanel()
		case ui.OverlayPerf:
			g.perfPanel.Draw(g.perfCollector.Stats())
		case ui.OverlayHelp:
			g.controls.Draw(g.uiOverlays)
		}
		// Outlines are drawn by the figure renderer.
	}
}

// drawJoints marks both anchors of every joint and the gap between them.
func (g *Game) drawJoints() {
	doll := g.puppet.Ragdoll()
	for i := range doll.Joints {
		j := &doll.Joints[i]
		a := doll.Parts[j.A].Body.LocalToWorld(j.AnchorA)
		b := doll.Parts[j.B].Body.LocalToWorld(j.AnchorB)

		ax, ay := g.camera.WorldToScreen(a.X, a.Y)
		bx, by := g.camera.WorldToScreen(b.X, b.Y)
		pa := rl.Vector2{X: float32(ax), Y: float32(ay)}
		pb := rl.Vector2{X: float32(bx), Y: float32(by)}

		rl.DrawLineEx(pa, pb, 2, jointColor)
		rl.DrawCircleV(pa, 3, anchorColor)
		rl.DrawCircleV(pb, 3, anchorColor)
	}
}

func (g *Game) drawStretchPanel() {
	doll := g.puppet.Ragdoll()
	names := make([]string, len(doll.Joints))
	for i, j := range doll.Joints {
		names[i] = j.B.String()
	}
	g.stretchPanel.Draw(names, doll.Stretches(), g.cfg.Ragdoll.Scale*stretchFullBar)
}
