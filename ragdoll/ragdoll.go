package ragdoll

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Part is one rigid body of the figure.
type Part struct {
	Label Label
	Body  *cp.Body
	Shape *cp.Shape

	Width, Height float64     // full extents
	Radii         [4]float64  // corner radii after clamping
	Outline       []cp.Vector // body-local polygon
}

// Joint is a soft pivot between two parts. Anchors are body-local.
type Joint struct {
	A, B             Label
	AnchorA, AnchorB cp.Vector
	Stiffness        float64
	Constraint       *cp.Constraint
}

// Ragdoll is a built figure. Parts is indexed by Label.
type Ragdoll struct {
	Anchor cp.Vector
	Scale  float64
	Group  uint

	Parts  [NumLabels]Part
	Joints [NumJoints]Joint
}

// Part returns the part with label l, or nil if l is not a body label.
func (r *Ragdoll) Part(l Label) *Part {
	if !l.Valid() {
		return nil
	}
	return &r.Parts[l]
}

// Bodies returns the bodies in build order.
func (r *Ragdoll) Bodies() []*cp.Body {
	out := make([]*cp.Body, len(r.Parts))
	for i := range r.Parts {
		out[i] = r.Parts[i].Body
	}
	return out
}

// Shapes returns the collision shapes in build order.
func (r *Ragdoll) Shapes() []*cp.Shape {
	out := make([]*cp.Shape, len(r.Parts))
	for i := range r.Parts {
		out[i] = r.Parts[i].Shape
	}
	return out
}

// Owns reports whether body belongs to this figure.
func (r *Ragdoll) Owns(body *cp.Body) bool {
	for i := range r.Parts {
		if r.Parts[i].Body == body {
			return true
		}
	}
	return false
}

// AddTo registers every body, shape and joint with space.
func (r *Ragdoll) AddTo(space *cp.Space) {
	for i := range r.Parts {
		space.AddBody(r.Parts[i].Body)
		space.AddShape(r.Parts[i].Shape)
	}
	for i := range r.Joints {
		space.AddConstraint(r.Joints[i].Constraint)
	}
}

// RemoveFrom undoes AddTo. Joints go first so no constraint is left
// pointing at a removed body.
func (r *Ragdoll) RemoveFrom(space *cp.Space) {
	for i := range r.Joints {
		space.RemoveConstraint(r.Joints[i].Constraint)
	}
	for i := range r.Parts {
		space.RemoveShape(r.Parts[i].Shape)
		space.RemoveBody(r.Parts[i].Body)
	}
}

// Separation is the world distance between the joint's two anchors.
// A perfectly satisfied joint has separation zero.
func (r *Ragdoll) Separation(j *Joint) float64 {
	a := r.Parts[j.A].Body.LocalToWorld(j.AnchorA)
	b := r.Parts[j.B].Body.LocalToWorld(j.AnchorB)
	return a.Distance(b)
}

// Stretches returns the anchor separation of every joint, in joint order.
func (r *Ragdoll) Stretches() []float64 {
	out := make([]float64, len(r.Joints))
	for i := range r.Joints {
		out[i] = r.Separation(&r.Joints[i])
	}
	return out
}

// MaxStretch returns the largest anchor separation over all joints.
func (r *Ragdoll) MaxStretch() float64 {
	var m float64
	for i := range r.Joints {
		m = math.Max(m, r.Separation(&r.Joints[i]))
	}
	return m
}

// KineticEnergy sums the kinetic energy of every part.
func (r *Ragdoll) KineticEnergy() float64 {
	var e float64
	for i := range r.Parts {
		e += r.Parts[i].Body.KineticEnergy()
	}
	return e
}
