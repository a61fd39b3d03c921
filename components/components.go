// Package components defines ECS components for the figure.
package components

import (
	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/ragdoll"
	"github.com/pthm-cable/tacodoll/visual"
)

// Part ties an entity to one rigid body of the figure. The entity also
// carries the Sprite drawn for that body, so the two are created and
// removed together.
type Part struct {
	Label ragdoll.Label
	Body  *cp.Body
	Shape *cp.Shape
}

// Sprite is the drawable proxy for a Part. Pose fields are overwritten from
// the body after every physics step.
type Sprite struct {
	visual.Descriptor

	X, Y     float64 // world position of the body centre
	Rotation float64 // radians

	Width, Height float64     // body extents, used to size placeholders
	Outline       []cp.Vector // body-local polygon for placeholder drawing
}

// Mouth marks the head entity and holds the two textures it swaps between.
type Mouth struct {
	Open   bool
	Opened string
	Closed string
}

// Texture returns the texture for the current mouth state.
func (m *Mouth) Texture() string {
	if m.Open {
		return m.Opened
	}
	return m.Closed
}
