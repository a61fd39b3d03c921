package inspector

import (
	"fmt"

	"github.com/pthm-cable/tacodoll/ragdoll"
)

// rowKind selects the widget a row is drawn with.
type rowKind int

const (
	rowText rowKind = iota
	rowAngle
	rowFlag
	rowGaps
)

// Row is one line of the panel.
type Row struct {
	Name  string
	Kind  rowKind
	Text  string     // rowText
	Angle float64    // rowAngle, radians
	On    bool       // rowFlag
	Gaps  []JointGap // rowGaps
}

// JointGap is the anchor separation of one joint on the inspected body.
type JointGap struct {
	Other ragdoll.Label // body on the far side of the joint
	Gap   float64       // px
}

// Rows lays the view out top to bottom.
func (v PartView) Rows() []Row {
	texture := v.Texture
	if v.Placeholder {
		texture = "placeholder"
	}
	return []Row{
		{Name: "Position", Text: fmt.Sprintf("(%.0f, %.0f)", v.X, v.Y)},
		{Name: "Velocity", Text: fmt.Sprintf("(%.1f, %.1f)", v.VX, v.VY)},
		{Name: "Angle", Kind: rowAngle, Angle: v.Angle},
		{Name: "Spin", Text: fmt.Sprintf("%.2f rad/s", v.Spin)},
		{Name: "Mass", Text: fmt.Sprintf("%.3f", v.Mass)},
		{Name: "Size", Text: fmt.Sprintf("%.0f x %.0f", v.Width, v.Height)},
		{Name: "Layer", Text: fmt.Sprintf("z %d, mirror %+.0f", v.ZIndex, v.Mirror)},
		{Name: "Texture", Text: texture},
		{Name: "Held", Kind: rowFlag, On: v.Held},
		{Name: "Joints", Kind: rowGaps, Gaps: v.Gaps},
	}
}
