package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tacodoll/ui"
)

const controlsLegend = "T: Taco | B: Burrito | D: Dance | R: Reset | P: Snapshot | M: Mute | Space: Pause | Drag: grab | Right-click: inspect | O/J/S/F/H: Overlays"

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()

	g.background.Draw(float32(g.realTime))
	g.figure.Draw(g.puppet)
	g.drawActiveOverlays()
	g.inspector.Draw(g.puppet)

	data := ui.HUDData{
		Title:      "Taco Doll",
		Tick:       g.puppet.Ticks(),
		SimTime:    g.puppet.World().Time(),
		FPS:        rl.GetFPS(),
		Paused:     g.paused,
		Dancing:    g.puppet.Dancing(),
		Singing:    g.puppet.Singing(),
		MaxStretch: g.puppet.Ragdoll().MaxStretch(),
	}
	if d, ok := g.puppet.Drag(); ok {
		data.Dragging = d.Label.String()
	}
	g.hud.Draw(data)

	sw, sh := int32(g.screenWidth), int32(g.screenHeight)
	g.applyActions(g.hud.Buttons(sw, data.Dancing))
	g.hud.DrawControls(sw, sh, controlsLegend)

	rl.EndDrawing()
}
