package physics

import "github.com/jakecoffman/cp"

// QueryPoint returns the first shape in shapes that contains p, testing
// against each shape's current transform. Shapes earlier in the slice win
// when several overlap. It returns nil on a miss.
func QueryPoint(p cp.Vector, shapes []*cp.Shape) *cp.Shape {
	for _, shape := range shapes {
		if shape == nil {
			continue
		}
		shape.CacheBB()
		if info := shape.PointQuery(p); info.Distance <= 0 {
			return shape
		}
	}
	return nil
}

// ContactsWithin counts active collision pairs where both bodies are in
// bodies. A figure whose parts share a collision group always reports zero.
func ContactsWithin(bodies []*cp.Body) int {
	index := make(map[*cp.Body]int, len(bodies))
	for i, b := range bodies {
		index[b] = i
	}
	count := 0
	for _, b := range bodies {
		b.EachArbiter(func(arb *cp.Arbiter) {
			a, o := arb.Bodies()
			ia, okA := index[a]
			io, okO := index[o]
			// Each pair is seen from both sides; count it once.
			if okA && okO && ia < io {
				count++
			}
		})
	}
	return count
}
