// Package visual maps each body label to how it is drawn.
package visual

import (
	"image/color"

	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/ragdoll"
)

// Fallback is the shape drawn when a part has no usable texture.
type Fallback uint8

const (
	RoundedRect Fallback = iota
	Circle
)

func (f Fallback) String() string {
	switch f {
	case Circle:
		return "circle"
	default:
		return "rounded-rect"
	}
}

// Descriptor says how one part is drawn.
type Descriptor struct {
	Texture  string // empty means draw the fallback shape
	ZIndex   int
	Mirror   float64 // +1 or -1 horizontal scale
	Fallback Fallback
	Color    color.RGBA
}

// Placeholder reports whether d has no texture.
func (d Descriptor) Placeholder() bool { return d.Texture == "" }

var (
	skin      = color.RGBA{R: 0xFF, G: 0xBC, B: 0x42, A: 0xFF}
	shirt     = color.RGBA{R: 0xE0, G: 0xA4, B: 0x23, A: 0xFF}
	lowerLimb = color.RGBA{R: 0xE5, G: 0x9B, B: 0x12, A: 0xFF}
)

// Default returns the built-in descriptor for l. The switch covers every
// label; anything else gets a plain placeholder.
func Default(l ragdoll.Label) Descriptor {
	switch l {
	case ragdoll.Head:
		return Descriptor{ZIndex: 5, Mirror: 1, Fallback: Circle, Color: skin}
	case ragdoll.Chest:
		return Descriptor{ZIndex: 2, Mirror: 1, Color: shirt}
	case ragdoll.LeftArm:
		return Descriptor{ZIndex: 2, Mirror: 1, Color: skin}
	case ragdoll.RightArm:
		return Descriptor{ZIndex: 2, Mirror: -1, Color: skin}
	case ragdoll.LeftArmLower:
		return Descriptor{ZIndex: 3, Mirror: 1, Color: lowerLimb}
	case ragdoll.RightArmLower:
		return Descriptor{ZIndex: 3, Mirror: -1, Color: lowerLimb}
	case ragdoll.LeftLeg:
		return Descriptor{ZIndex: 1, Mirror: 1, Color: skin}
	case ragdoll.RightLeg:
		return Descriptor{ZIndex: 1, Mirror: -1, Color: skin}
	case ragdoll.LeftLegLower:
		return Descriptor{ZIndex: 1, Mirror: 1, Color: lowerLimb}
	case ragdoll.RightLegLower:
		return Descriptor{ZIndex: 1, Mirror: -1, Color: lowerLimb}
	}
	return Descriptor{Mirror: 1, Color: color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}}
}

// Table holds one descriptor per label.
type Table [ragdoll.NumLabels]Descriptor

// NewTable starts from Default for every label and overlays the textures,
// z-order and mirroring found in sprites. Entries with unknown label names
// are ignored and returned so the caller can log them.
func NewTable(sprites map[string]config.SpriteConfig) (Table, []string) {
	var t Table
	for _, l := range ragdoll.Labels() {
		t[l] = Default(l)
	}
	var unknown []string
	for name, s := range sprites {
		l, ok := ragdoll.ParseLabel(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		d := t[l]
		d.Texture = s.Texture
		d.ZIndex = s.ZIndex
		if s.Mirror != 0 {
			d.Mirror = float64(s.Mirror)
		}
		t[l] = d
	}
	return t, unknown
}

// Lookup returns the descriptor for l, or the generic placeholder if l is
// out of range.
func (t *Table) Lookup(l ragdoll.Label) Descriptor {
	if !l.Valid() {
		return Default(l)
	}
	return t[l]
}
