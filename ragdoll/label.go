// Package ragdoll builds the jointed figure: ten rounded rigid bodies tied
// together by nine soft pivot joints.
package ragdoll

// Label identifies one body of the figure. The numeric value is the body's
// position in build order, so a [NumLabels] array indexed by Label is always
// in the same order as the bodies were created.
type Label uint8

const (
	Chest Label = iota
	Head
	LeftArmLower
	LeftArm
	RightArmLower
	RightArm
	LeftLegLower
	RightLegLower
	LeftLeg
	RightLeg

	NumLabels
)

var labelNames = [NumLabels]string{
	Chest:         "chest",
	Head:          "head",
	LeftArmLower:  "left-arm-lower",
	LeftArm:       "left-arm",
	RightArmLower: "right-arm-lower",
	RightArm:      "right-arm",
	LeftLegLower:  "left-leg-lower",
	RightLegLower: "right-leg-lower",
	LeftLeg:       "left-leg",
	RightLeg:      "right-leg",
}

// String returns the stable label name used in config files and logs.
func (l Label) String() string {
	if l >= NumLabels {
		return "unknown"
	}
	return labelNames[l]
}

// Valid reports whether l is one of the ten body labels.
func (l Label) Valid() bool {
	return l < NumLabels
}

// ParseLabel maps a label name back to its Label.
func ParseLabel(s string) (Label, bool) {
	for i, name := range labelNames {
		if name == s {
			return Label(i), true
		}
	}
	return NumLabels, false
}

// Labels returns all labels in build order.
func Labels() []Label {
	out := make([]Label, NumLabels)
	for i := range out {
		out[i] = Label(i)
	}
	return out
}
