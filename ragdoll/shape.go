package ragdoll

import (
	"math"

	"github.com/jakecoffman/cp"
)

// cornerSegments is how many straight edges approximate each rounded corner.
const cornerSegments = 5

// maxRadiusFraction caps a corner radius relative to the shorter side so
// that neighbouring arcs never meet.
const maxRadiusFraction = 0.49

// ClampRadius limits r to just under half the shorter side of a w×h box.
func ClampRadius(r, w, h float64) float64 {
	limit := maxRadiusFraction * math.Min(w, h)
	if r > limit {
		return limit
	}
	if r < 0 {
		return 0
	}
	return r
}

// roundedRect returns the outline of a w×h box centred on the origin with
// each corner replaced by a circular arc. Radii are indexed by TopLeft,
// TopRight, BottomRight, BottomLeft. Vertices go around in order of
// increasing angle.
func roundedRect(w, h float64, radii [4]float64) []cp.Vector {
	hw, hh := w/2, h/2
	type corner struct {
		cx, cy float64 // sign of the corner
		start  float64 // arc start angle
	}
	corners := [4]corner{
		TopLeft:     {-1, -1, math.Pi},
		TopRight:    {1, -1, 1.5 * math.Pi},
		BottomRight: {1, 1, 0},
		BottomLeft:  {-1, 1, 0.5 * math.Pi},
	}

	verts := make([]cp.Vector, 0, 4*(cornerSegments+1))
	for i, c := range corners {
		r := ClampRadius(radii[i], w, h)
		if r == 0 {
			verts = append(verts, cp.Vector{X: c.cx * hw, Y: c.cy * hh})
			continue
		}
		centre := cp.Vector{X: c.cx * (hw - r), Y: c.cy * (hh - r)}
		for s := 0; s <= cornerSegments; s++ {
			a := c.start + float64(s)*(math.Pi/2)/cornerSegments
			verts = append(verts, cp.Vector{
				X: centre.X + r*math.Cos(a),
				Y: centre.Y + r*math.Sin(a),
			})
		}
	}
	return verts
}
