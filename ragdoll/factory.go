package ragdoll

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/physics"
)

var (
	// ErrInvalidScale is returned for a scale that is not a positive finite number.
	ErrInvalidScale = errors.New("ragdoll: scale must be positive and finite")
	// ErrInvalidAnchor is returned for an anchor with a NaN or infinite coordinate.
	ErrInvalidAnchor = errors.New("ragdoll: anchor must be finite")
	// ErrNoGroup is returned when the group source hands out group 0, which
	// would let the figure's parts collide with each other.
	ErrNoGroup = errors.New("ragdoll: collision group must be non-zero")
)

// GroupSource hands out collision groups. Every call must return a group
// no other figure is using.
type GroupSource interface {
	NextGroup() uint
}

// Options holds the construction parameters that do not depend on where the
// figure is placed.
type Options struct {
	Stiffness  float64 // joint stiffness in (0, 1]
	LimbRadius float64 // corner radius for arms and legs, before scaling
	Density    float64 // mass per px²
	Friction   float64
	DT         float64 // step the joint stiffness is calibrated against

	// ScaleKneeOffsets scales the x offset of the two knee anchors on the
	// upper leg. Left false, they stay at ±20 px whatever the scale.
	ScaleKneeOffsets bool
}

// DefaultOptions returns the stock construction parameters.
func DefaultOptions() Options {
	return Options{
		Stiffness:  0.6,
		LimbRadius: 10,
		Density:    0.001,
		Friction:   0.1,
		DT:         1.0 / 60.0,
	}
}

// OptionsFromConfig reads construction parameters from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Stiffness:  cfg.Ragdoll.Stiffness,
		LimbRadius: cfg.Ragdoll.LimbRadius,
		Density:    cfg.Physics.Density,
		Friction:   cfg.Physics.Friction,
		DT:         cfg.Physics.DT,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Build creates the ten bodies and nine joints of a figure centred on anchor.
// Nothing is added to a space; call AddTo for that. All parts share one
// collision group taken from groups, so they never collide with each other
// but still collide with anything outside the figure.
func Build(anchor cp.Vector, scale float64, opts Options, groups GroupSource) (*Ragdoll, error) {
	if !finite(scale) || scale <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidScale, scale)
	}
	if !finite(anchor.X) || !finite(anchor.Y) {
		return nil, fmt.Errorf("%w: got (%v, %v)", ErrInvalidAnchor, anchor.X, anchor.Y)
	}
	if opts.DT <= 0 {
		opts.DT = DefaultOptions().DT
	}

	group := groups.NextGroup()
	if group == 0 {
		return nil, ErrNoGroup
	}

	r := &Ragdoll{
		Anchor: anchor,
		Scale:  scale,
		Group:  group,
	}
	filter := physics.GroupFilter(group)

	for i, spec := range partTable {
		label := Label(i)
		w, h := spec.size.X*scale, spec.size.Y*scale

		var radii [4]float64
		for c := range radii {
			rad := spec.radii[c]
			if rad == 0 {
				rad = opts.LimbRadius
			}
			radii[c] = ClampRadius(rad*scale, w, h)
		}

		verts := roundedRect(w, h, radii)
		area := math.Abs(cp.AreaForPoly(len(verts), verts, 0))
		mass := area * opts.Density
		moment := cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0)

		body := cp.NewBody(mass, moment)
		body.SetPosition(anchor.Add(spec.offset.Mult(scale)))
		body.UserData = label

		shape := cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
		shape.SetFilter(filter)
		shape.SetFriction(opts.Friction)
		shape.UserData = label

		r.Parts[i] = Part{
			Label:   label,
			Body:    body,
			Shape:   shape,
			Width:   w,
			Height:  h,
			Radii:   radii,
			Outline: verts,
		}
	}

	for i, spec := range jointTable {
		a, b := r.Parts[spec.a].Body, r.Parts[spec.b].Body
		anchorA := spec.anchorA.at(scale, opts.ScaleKneeOffsets)
		anchorB := spec.anchorB.at(scale, opts.ScaleKneeOffsets)
		r.Joints[i] = Joint{
			A:          spec.a,
			B:          spec.b,
			AnchorA:    anchorA,
			AnchorB:    anchorB,
			Stiffness:  opts.Stiffness,
			Constraint: physics.NewTether(a, b, anchorA, anchorB, opts.Stiffness, opts.DT),
		}
	}

	return r, nil
}
