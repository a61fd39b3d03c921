package puppet

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/physics"
	"github.com/pthm-cable/tacodoll/ragdoll"
	"github.com/pthm-cable/tacodoll/telemetry"
)

// dragState tracks the one body under the pointer.
type dragState struct {
	body   *cp.Body
	label  ragdoll.Label
	mass   float64   // mass before the drag started
	moment float64   // moment of inertia before the drag started
	target cp.Vector // last world point the body was moved to
}

func (d *dragState) active() bool { return d.body != nil }

// DragInfo describes a drag in progress.
type DragInfo struct {
	Label ragdoll.Label
	X, Y  float64 // world position the body is held at
}

// Drag returns the current drag, if any.
func (c *Controller) Drag() (DragInfo, bool) {
	if !c.drag.active() {
		return DragInfo{}, false
	}
	return DragInfo{Label: c.drag.label, X: c.drag.target.X, Y: c.drag.target.Y}, true
}

// PartAt returns the label of the body under the screen point (x, y).
func (c *Controller) PartAt(x, y float64) (ragdoll.Label, bool) {
	if c.doll == nil {
		return ragdoll.NumLabels, false
	}
	wx, wy := c.view.ScreenToWorld(x, y)
	shape := physics.QueryPoint(cp.Vector{X: wx, Y: wy}, c.doll.Shapes())
	if shape == nil {
		return ragdoll.NumLabels, false
	}
	label, ok := shape.Body().UserData.(ragdoll.Label)
	return label, ok
}

// Press starts dragging the body under the screen point (x, y). It reports
// whether a body was picked up. A press while already dragging is ignored.
func (c *Controller) Press(x, y float64) bool {
	if c.drag.active() {
		return false
	}
	label, ok := c.PartAt(x, y)
	if !ok {
		return false
	}
	body := c.doll.Parts[label].Body
	wx, wy := c.view.ScreenToWorld(x, y)

	c.drag = dragState{
		body:   body,
		label:  label,
		mass:   body.Mass(),
		moment: body.Moment(),
		target: body.Position(),
	}
	// Inertia scales with mass so the held part resists spin as much as
	// it resists being shoved.
	body.SetMass(c.drag.mass * c.cfg.Drag.MassMultiplier)
	body.SetMoment(c.drag.moment * c.cfg.Drag.MassMultiplier)

	slog.Debug("drag start", "label", label.String(), "x", wx, "y", wy)
	c.emit(telemetry.NewDragEvent(c.tick, label, true))
	return true
}

// Move teleports the dragged body to the screen point (x, y), kept a margin
// inside the visible area. Without a drag it does nothing.
func (c *Controller) Move(x, y float64) {
	if !c.drag.active() {
		return
	}
	wx, wy := c.view.ScreenToWorld(x, y)
	wx, wy = c.view.ClampToView(wx, wy, c.cfg.Drag.Margin)
	c.drag.target = cp.Vector{X: wx, Y: wy}
	c.drag.body.SetPosition(c.drag.target)
	c.drag.body.SetVelocity(0, 0)
}

// Release drops the dragged body and restores its mass and moment.
func (c *Controller) Release(x, y float64) {
	if !c.drag.active() {
		return
	}
	c.drag.body.SetMass(c.drag.mass)
	c.drag.body.SetMoment(c.drag.moment)
	label := c.drag.label
	c.drag = dragState{}

	slog.Debug("drag end", "label", label.String())
	c.emit(telemetry.NewDragEvent(c.tick, label, false))
}

// ReleaseOutside handles a release that happened outside the window. It
// restores the body exactly like Release.
func (c *Controller) ReleaseOutside(x, y float64) {
	c.Release(x, y)
}
