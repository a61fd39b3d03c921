package physics

import "github.com/jakecoffman/cp"

// AddWalls surrounds the w×h viewport with four static walls of the given
// thickness, placed just outside the visible area. Calling it again
// replaces the previous walls.
func (w *World) AddWalls(width, height, thickness, friction float64) {
	w.RemoveWalls()

	r := thickness / 2
	static := w.space.StaticBody
	segments := [4][2]cp.Vector{
		{{X: -r, Y: -r}, {X: width + r, Y: -r}},                 // top
		{{X: -r, Y: height + r}, {X: width + r, Y: height + r}}, // bottom
		{{X: -r, Y: -r}, {X: -r, Y: height + r}},                // left
		{{X: width + r, Y: -r}, {X: width + r, Y: height + r}},  // right
	}
	for _, s := range segments {
		shape := cp.NewSegment(static, s[0], s[1], r)
		shape.SetFriction(friction)
		w.walls = append(w.walls, w.space.AddShape(shape))
	}
}

// RemoveWalls removes any walls added by AddWalls.
func (w *World) RemoveWalls() {
	for _, s := range w.walls {
		w.space.RemoveShape(s)
	}
	w.walls = nil
}

// Walls returns the current wall shapes.
func (w *World) Walls() []*cp.Shape { return w.walls }

// Hanger is a fixed point in the world with a soft tether to one body.
type Hanger struct {
	Position  cp.Vector // world position of the fixed point
	AnchorA   cp.Vector // offset from Position where the tether starts
	AnchorB   cp.Vector // body-local anchor on the hung body
	Stiffness float64

	body  *cp.Body
	joint *cp.Constraint
}

// NewHanger describes a hanger at pos. Nothing is attached yet.
func NewHanger(pos, anchorA, anchorB cp.Vector, stiffness float64) *Hanger {
	return &Hanger{Position: pos, AnchorA: anchorA, AnchorB: anchorB, Stiffness: stiffness}
}

// Attach tethers body to the hanger, detaching whatever hung there before.
func (w *World) Attach(h *Hanger, body *cp.Body) {
	w.Detach(h)
	anchor := h.Position.Add(h.AnchorA)
	h.joint = w.space.AddConstraint(NewTether(w.space.StaticBody, body, anchor, h.AnchorB, h.Stiffness, w.dt))
	h.body = body
}

// Detach removes the hanger's tether. It is a no-op if nothing is attached.
func (w *World) Detach(h *Hanger) {
	if h.joint == nil {
		return
	}
	w.space.RemoveConstraint(h.joint)
	h.joint = nil
	h.body = nil
}

// Attached reports whether a body currently hangs from h.
func (h *Hanger) Attached() bool { return h.joint != nil }

// Ends returns the two world points the tether connects. ok is false when
// nothing is attached.
func (h *Hanger) Ends() (top, bottom cp.Vector, ok bool) {
	if h.body == nil {
		return cp.Vector{}, cp.Vector{}, false
	}
	return h.Position.Add(h.AnchorA), h.body.LocalToWorld(h.AnchorB), true
}
