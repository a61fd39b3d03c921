package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tacodoll/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyT) {
		g.puppet.SingTaco(false)
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.puppet.SingBurrito(false)
	}
	if rl.IsKeyPressed(rl.KeyD) {
		g.puppet.ToggleDance()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.rebuild()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.saveSnapshot(nil)
	}
	if rl.IsKeyPressed(rl.KeyM) && g.voice != nil {
		g.voice.Muted = !g.voice.Muted
	}

	g.handleOverlayKeys()
	g.handlePointer()
	g.handleCameraInput()
}

// handlePointer routes the left mouse button into the drag handlers.
func (g *Game) handlePointer() {
	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)
	_, dragging := g.puppet.Drag()

	if !dragging && g.inspector.HandleInput(pos.X, pos.Y, g.puppet.PartAt) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !dragging {
		if g.hud.OverButtons(int32(g.screenWidth), pos.X, pos.Y) {
			return
		}
		g.puppet.Press(x, y)
		return
	}
	if !dragging {
		return
	}

	switch {
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		if g.camera.InViewport(x, y) {
			g.puppet.Release(x, y)
		} else {
			g.puppet.ReleaseOutside(x, y)
		}
	case !rl.IsMouseButtonDown(rl.MouseButtonLeft):
		// The release happened while the cursor was outside the window.
		g.puppet.ReleaseOutside(x, y)
	default:
		g.puppet.Move(x, y)
	}
}

// applyActions performs the HUD button clicks of this frame.
func (g *Game) applyActions(a ui.Actions) {
	if a.Taco {
		g.puppet.SingTaco(false)
	}
	if a.Burrito {
		g.puppet.SingBurrito(false)
	}
	if a.Dance {
		g.puppet.ToggleDance()
	}
	if a.Reset {
		g.rebuild()
	}
}

func (g *Game) rebuild() {
	if err := g.puppet.Rebuild(); err != nil {
		slog.Error("rebuild failed", "error", err)
	}
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

	if g.camera != nil {
		g.camera.Resize(float64(w), float64(h))
	}
	if g.background != nil {
		g.background.Resize(int32(w), int32(h))
	}
	if g.inspector != nil {
		g.inspector.Resize(int32(w))
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := 8.0 / g.camera.Zoom

	// Arrow key panning
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

	// Zoom controls: mouse wheel or +/- keys
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1.0 + float64(wheelMove)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
