package ragdoll

import "github.com/jakecoffman/cp"

// Corner indices for per-corner radii, in screen orientation (y grows down).
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// partSpec is one row of the body table. Offset and size are multiplied by
// the build scale. Size is the full width and height of the body.
type partSpec struct {
	offset cp.Vector
	size   cp.Vector
	radii  [4]float64 // unscaled; zero means use the limb radius
}

var partTable = [NumLabels]partSpec{
	Chest:         {offset: cp.Vector{X: 0, Y: 0}, size: cp.Vector{X: 55, Y: 80}, radii: [4]float64{20, 20, 26, 26}},
	Head:          {offset: cp.Vector{X: 0, Y: -60}, size: cp.Vector{X: 34, Y: 40}, radii: [4]float64{70, 70, 70, 70}},
	LeftArmLower:  {offset: cp.Vector{X: -39, Y: 25}, size: cp.Vector{X: 20, Y: 60}},
	LeftArm:       {offset: cp.Vector{X: -39, Y: -15}, size: cp.Vector{X: 20, Y: 40}},
	RightArmLower: {offset: cp.Vector{X: 39, Y: 25}, size: cp.Vector{X: 20, Y: 60}},
	RightArm:      {offset: cp.Vector{X: 39, Y: -20}, size: cp.Vector{X: 20, Y: 40}},
	LeftLegLower:  {offset: cp.Vector{X: -20, Y: 97}, size: cp.Vector{X: 20, Y: 60}},
	RightLegLower: {offset: cp.Vector{X: 20, Y: 97}, size: cp.Vector{X: 20, Y: 60}},
	LeftLeg:       {offset: cp.Vector{X: -20, Y: 57}, size: cp.Vector{X: 20, Y: 40}},
	RightLeg:      {offset: cp.Vector{X: 20, Y: 57}, size: cp.Vector{X: 20, Y: 40}},
}

// anchorSpec is a joint anchor in body-local coordinates, before scaling.
// FixedX marks the knee anchors whose x offset has always been an absolute
// pixel value rather than a scaled one.
type anchorSpec struct {
	x, y   float64
	fixedX bool
}

func (a anchorSpec) at(scale float64, scaleFixed bool) cp.Vector {
	x := a.x * scale
	if a.fixedX && !scaleFixed {
		x = a.x
	}
	return cp.Vector{X: x, Y: a.y * scale}
}

type jointSpec struct {
	a, b             Label
	anchorA, anchorB anchorSpec
}

// NumJoints is the number of joints in a figure.
const NumJoints = 9

var jointTable = [NumJoints]jointSpec{
	{a: LeftArm, b: LeftArmLower, anchorA: anchorSpec{x: 0, y: 15}, anchorB: anchorSpec{x: 0, y: -25}},
	{a: RightArm, b: RightArmLower, anchorA: anchorSpec{x: 0, y: 15}, anchorB: anchorSpec{x: 0, y: -25}},
	{a: Chest, b: LeftArm, anchorA: anchorSpec{x: -30, y: -40}, anchorB: anchorSpec{x: 0, y: -8}},
	{a: Chest, b: RightArm, anchorA: anchorSpec{x: 30, y: -40}, anchorB: anchorSpec{x: 0, y: -8}},
	{a: Head, b: Chest, anchorA: anchorSpec{x: 0, y: 40}, anchorB: anchorSpec{x: 0, y: -35}},
	{a: LeftLeg, b: LeftLegLower, anchorA: anchorSpec{x: -20, y: 25, fixedX: true}, anchorB: anchorSpec{x: 0, y: -20}},
	{a: RightLeg, b: RightLegLower, anchorA: anchorSpec{x: 20, y: 25, fixedX: true}, anchorB: anchorSpec{x: 0, y: -20}},
	{a: Chest, b: LeftLeg, anchorA: anchorSpec{x: -20, y: 30}, anchorB: anchorSpec{x: 0, y: -10}},
	{a: Chest, b: RightLeg, anchorA: anchorSpec{x: 20, y: 30}, anchorB: anchorSpec{x: 0, y: -10}},
}

// Parent returns the label l hangs from, or false for the chest.
func Parent(l Label) (Label, bool) {
	for _, j := range jointTable {
		if j.b == l && j.a != Head {
			return j.a, true
		}
		if j.a == l && l == Head {
			return j.b, true
		}
	}
	return NumLabels, false
}
