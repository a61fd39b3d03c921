// Package physics wraps a chipmunk space with the fixed step, gravity and
// collision-group bookkeeping the figure needs.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/config"
)

// World owns one cp.Space and steps it at a fixed dt.
type World struct {
	space *cp.Space
	dt    float64
	steps int64

	lastGroup uint
	walls     []*cp.Shape
}

// NewWorld creates a space from the physics section of the config.
// Gravity is given in engine units and multiplied by GravityScale.
func NewWorld(cfg config.PhysicsConfig) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{
		X: cfg.Gravity.X * cfg.GravityScale,
		Y: cfg.Gravity.Y * cfg.GravityScale,
	})
	if cfg.Damping > 0 && cfg.Damping <= 1 {
		space.SetDamping(cfg.Damping)
	}
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}

	dt := cfg.DT
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	return &World{space: space, dt: dt}
}

// Space returns the underlying space.
func (w *World) Space() *cp.Space { return w.space }

// DT returns the fixed step in seconds.
func (w *World) DT() float64 { return w.dt }

// Steps returns how many times Step has run.
func (w *World) Steps() int64 { return w.steps }

// Time returns simulated seconds.
func (w *World) Time() float64 { return float64(w.steps) * w.dt }

// Step advances the space by exactly one fixed step.
func (w *World) Step() {
	w.space.Step(w.dt)
	w.steps++
}

// NextGroup returns a collision group no earlier call has returned.
// Group 0 means "no group" to the engine and is never handed out.
func (w *World) NextGroup() uint {
	w.lastGroup++
	return w.lastGroup
}

// GroupFilter returns a filter that keeps shapes in the same group from
// colliding while letting them hit everything else.
func GroupFilter(group uint) cp.ShapeFilter {
	return cp.NewShapeFilter(group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
}

// NewTether creates a zero-length pivot between two body-local anchors.
// Stiffness is the fraction of the positional error removed each step of
// length dt; the engine wants the fraction left after one second.
func NewTether(a, b *cp.Body, anchorA, anchorB cp.Vector, stiffness, dt float64) *cp.Constraint {
	joint := cp.NewPivotJoint2(a, b, anchorA, anchorB)
	joint.SetErrorBias(ErrorBias(stiffness, dt))
	joint.SetCollideBodies(false)
	return joint
}

// ErrorBias converts a per-step stiffness to the engine's per-second error
// bias.
func ErrorBias(stiffness, dt float64) float64 {
	if stiffness >= 1 {
		return 0
	}
	if stiffness <= 0 {
		return 1
	}
	return math.Pow(1-stiffness, 1/dt)
}
