package ragdoll

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/physics"
)

type counter struct{ n uint }

func (c *counter) NextGroup() uint {
	c.n++
	return c.n
}

type zeroGroups struct{}

func (zeroGroups) NextGroup() uint { return 0 }

func mustBuild(t *testing.T, anchor cp.Vector, scale float64, opts Options, groups GroupSource) *Ragdoll {
	t.Helper()
	r, err := Build(anchor, scale, opts, groups)
	if err != nil {
		t.Fatalf("Build(%v, %v) error: %v", anchor, scale, err)
	}
	return r
}

func TestBuildTopology(t *testing.T) {
	for _, scale := range []float64{0.5, 1, 2.5} {
		r := mustBuild(t, cp.Vector{X: 400, Y: 300}, scale, DefaultOptions(), &counter{})

		seen := make(map[Label]bool)
		bodies := make(map[*cp.Body]bool)
		for i, p := range r.Parts {
			if p.Label != Label(i) {
				t.Errorf("scale %v: part %d has label %v", scale, i, p.Label)
			}
			if seen[p.Label] {
				t.Errorf("scale %v: label %v appears twice", scale, p.Label)
			}
			seen[p.Label] = true
			bodies[p.Body] = true

			if got, ok := p.Body.UserData.(Label); !ok || got != p.Label {
				t.Errorf("scale %v: body user data = %v, want %v", scale, p.Body.UserData, p.Label)
			}
			if p.Shape.Body() != p.Body {
				t.Errorf("scale %v: shape of %v is not attached to its body", scale, p.Label)
			}
		}
		if len(seen) != int(NumLabels) {
			t.Errorf("scale %v: %d distinct labels, want %d", scale, len(seen), NumLabels)
		}

		if len(r.Joints) != 9 {
			t.Fatalf("scale %v: %d joints, want 9", scale, len(r.Joints))
		}
		if len(bodies) != int(NumLabels) {
			t.Errorf("scale %v: %d distinct bodies, want %d", scale, len(bodies), NumLabels)
		}

		// Constraint lists are only linked once the figure is in a space.
		r.AddTo(cp.NewSpace())
		for _, j := range r.Joints {
			for _, l := range []Label{j.A, j.B} {
				attached := false
				r.Parts[l].Body.EachConstraint(func(c *cp.Constraint) {
					if c == j.Constraint {
						attached = true
					}
				})
				if !attached {
					t.Errorf("scale %v: joint %v-%v is not attached to %v", scale, j.A, j.B, l)
				}
			}
		}
		degree := make(map[Label]int)
		for _, j := range r.Joints {
			degree[j.A]++
			degree[j.B]++
		}
		for _, p := range r.Parts {
			n := 0
			p.Body.EachConstraint(func(*cp.Constraint) { n++ })
			if n != degree[p.Label] {
				t.Errorf("scale %v: %v has %d constraints, want %d", scale, p.Label, n, degree[p.Label])
			}
		}
	}
}

func TestJointsFormTreeRootedAtChest(t *testing.T) {
	for _, l := range Labels() {
		if l == Chest {
			if _, ok := Parent(l); ok {
				t.Errorf("chest should have no parent")
			}
			continue
		}
		// Every part reaches the chest within two hops.
		cur, hops := l, 0
		for cur != Chest && hops < 3 {
			p, ok := Parent(cur)
			if !ok {
				t.Fatalf("%v has no parent", cur)
			}
			cur = p
			hops++
		}
		if cur != Chest {
			t.Errorf("%v does not reach the chest", l)
		}
	}
}

func TestLabelRoundtrip(t *testing.T) {
	for _, l := range Labels() {
		got, ok := ParseLabel(l.String())
		if !ok || got != l {
			t.Errorf("ParseLabel(%q) = %v, %v", l.String(), got, ok)
		}
	}
	if _, ok := ParseLabel("tail"); ok {
		t.Error("ParseLabel should reject unknown names")
	}
	if NumLabels.Valid() {
		t.Error("NumLabels should not be a valid label")
	}
}

func TestBuildScalesGeometry(t *testing.T) {
	const eps = 1e-9
	base := mustBuild(t, cp.Vector{}, 1, DefaultOptions(), &counter{})

	for _, scale := range []float64{1, 2, 2.5} {
		r := mustBuild(t, cp.Vector{}, scale, DefaultOptions(), &counter{})

		for i := range r.Parts {
			p, b := r.Parts[i], base.Parts[i]
			if math.Abs(p.Width-b.Width*scale) > eps || math.Abs(p.Height-b.Height*scale) > eps {
				t.Errorf("scale %v: %v size %vx%v, want %vx%v",
					scale, p.Label, p.Width, p.Height, b.Width*scale, b.Height*scale)
			}
			want := b.Body.Position().Mult(scale)
			if got := p.Body.Position(); got.Distance(want) > eps {
				t.Errorf("scale %v: %v position %v, want %v", scale, p.Label, got, want)
			}
		}

		for i := range r.Joints {
			j, b := r.Joints[i], base.Joints[i]
			if math.Abs(j.AnchorB.X-b.AnchorB.X*scale) > eps || math.Abs(j.AnchorB.Y-b.AnchorB.Y*scale) > eps {
				t.Errorf("scale %v: joint %d anchor B %v not scaled", scale, i, j.AnchorB)
			}
			if math.Abs(j.AnchorA.Y-b.AnchorA.Y*scale) > eps {
				t.Errorf("scale %v: joint %d anchor A y %v not scaled", scale, i, j.AnchorA.Y)
			}
			knee := j.B == LeftLegLower || j.B == RightLegLower
			wantX := b.AnchorA.X * scale
			if knee {
				wantX = b.AnchorA.X
			}
			if math.Abs(j.AnchorA.X-wantX) > eps {
				t.Errorf("scale %v: joint %v-%v anchor A x = %v, want %v", scale, j.A, j.B, j.AnchorA.X, wantX)
			}
		}
	}
}

func TestKneeAnchors(t *testing.T) {
	tests := []struct {
		name       string
		scale      float64
		scaleKnees bool
		wantLeft   float64
		wantRight  float64
	}{
		{"unit scale", 1, false, -20, 20},
		{"stock scale keeps pixels", 2.5, false, -20, 20},
		{"unit scale scaled", 1, true, -20, 20},
		{"stock scale scaled", 2.5, true, -50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.ScaleKneeOffsets = tt.scaleKnees
			r := mustBuild(t, cp.Vector{X: 100, Y: 100}, tt.scale, opts, &counter{})

			for _, j := range r.Joints {
				switch j.B {
				case LeftLegLower:
					if j.AnchorA.X != tt.wantLeft {
						t.Errorf("left knee x = %v, want %v", j.AnchorA.X, tt.wantLeft)
					}
				case RightLegLower:
					if j.AnchorA.X != tt.wantRight {
						t.Errorf("right knee x = %v, want %v", j.AnchorA.X, tt.wantRight)
					}
				}
			}
		})
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		anchor cp.Vector
		scale  float64
		want   error
	}{
		{"zero scale", cp.Vector{}, 0, ErrInvalidScale},
		{"negative scale", cp.Vector{}, -1, ErrInvalidScale},
		{"NaN scale", cp.Vector{}, math.NaN(), ErrInvalidScale},
		{"infinite scale", cp.Vector{}, math.Inf(1), ErrInvalidScale},
		{"NaN anchor", cp.Vector{X: math.NaN()}, 1, ErrInvalidAnchor},
		{"infinite anchor", cp.Vector{Y: math.Inf(-1)}, 1, ErrInvalidAnchor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := &counter{}
			_, err := Build(tt.anchor, tt.scale, DefaultOptions(), groups)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if groups.n != 0 {
				t.Error("a rejected build should not consume a collision group")
			}
		})
	}

	if _, err := Build(cp.Vector{}, 1, DefaultOptions(), zeroGroups{}); !errors.Is(err, ErrNoGroup) {
		t.Errorf("zero group error = %v, want %v", err, ErrNoGroup)
	}
}

func TestBuildAnchorIsChestCentre(t *testing.T) {
	anchor := cp.Vector{X: 640, Y: 360}
	r := mustBuild(t, anchor, 2.5, DefaultOptions(), &counter{})
	if got := r.Part(Chest).Body.Position(); got != anchor {
		t.Errorf("chest at %v, want %v", got, anchor)
	}
	if r.Anchor != anchor {
		t.Errorf("anchor changed to %v", r.Anchor)
	}
}

func TestCornerRadiiClamped(t *testing.T) {
	r := mustBuild(t, cp.Vector{}, 2.5, DefaultOptions(), &counter{})
	for _, p := range r.Parts {
		limit := maxRadiusFraction * math.Min(p.Width, p.Height)
		for c, rad := range p.Radii {
			if rad > limit+1e-9 {
				t.Errorf("%v corner %d radius %v exceeds %v", p.Label, c, rad, limit)
			}
		}
	}
	head := r.Part(Head)
	if head.Radii[TopLeft] != head.Radii[BottomRight] {
		t.Errorf("head corners should match, got %v", head.Radii)
	}
	chest := r.Part(Chest)
	if chest.Radii[TopLeft] >= chest.Radii[BottomLeft] {
		t.Errorf("chest bottom corners should be rounder than top, got %v", chest.Radii)
	}
}

func TestMassFollowsArea(t *testing.T) {
	opts := DefaultOptions()
	r := mustBuild(t, cp.Vector{}, 2, opts, &counter{})
	for _, p := range r.Parts {
		box := p.Width * p.Height * opts.Density
		m := p.Body.Mass()
		if m <= 0.75*box || m > box {
			t.Errorf("%v mass %v outside (%v, %v]", p.Label, m, 0.75*box, box)
		}
	}
	if r.Part(Chest).Body.Mass() <= r.Part(LeftArm).Body.Mass() {
		t.Error("chest should be heavier than an upper arm")
	}
}

func TestEachFigureGetsItsOwnGroup(t *testing.T) {
	world := physics.NewWorld(config.Default().Physics)
	a := mustBuild(t, cp.Vector{X: 200, Y: 200}, 1, DefaultOptions(), world)
	b := mustBuild(t, cp.Vector{X: 600, Y: 200}, 1, DefaultOptions(), world)

	if a.Group == 0 || b.Group == 0 {
		t.Fatalf("groups must be non-zero, got %d and %d", a.Group, b.Group)
	}
	if a.Group == b.Group {
		t.Errorf("two figures share group %d", a.Group)
	}
	for _, p := range a.Parts {
		if got := p.Shape.Filter.Group; got != a.Group {
			t.Errorf("%v group = %d, want %d", p.Label, got, a.Group)
		}
	}
}

func TestNoSelfCollision(t *testing.T) {
	cfg := config.Default()
	cfg.Physics.Gravity = config.Vec{}
	world := physics.NewWorld(cfg.Physics)

	// The stock pose already has overlapping parts at the shoulders and hips.
	r := mustBuild(t, cp.Vector{X: 400, Y: 300}, 2, OptionsFromConfig(cfg), world)
	r.AddTo(world.Space())

	// A loose box dropped on the chest proves contacts are being generated.
	box := world.Space().AddBody(cp.NewBody(1, cp.MomentForBox(1, 40, 40)))
	box.SetPosition(cp.Vector{X: 400, Y: 300})
	world.Space().AddShape(cp.NewBox(box, 40, 40, 0))

	touched := false
	for i := 0; i < 10; i++ {
		world.Step()
		if n := physics.ContactsWithin(r.Bodies()); n != 0 {
			t.Fatalf("step %d: %d contacts between parts of one figure", i, n)
		}
		if physics.ContactsWithin(append(r.Bodies(), box)) > 0 {
			touched = true
		}
	}
	if !touched {
		t.Error("expected the loose box to touch the figure")
	}
}

func TestFallingFigureStaysTogether(t *testing.T) {
	const scale = 2
	cfg := config.Default()
	world := physics.NewWorld(cfg.Physics)
	r := mustBuild(t, cp.Vector{X: 400, Y: 300}, scale, OptionsFromConfig(cfg), world)
	r.AddTo(world.Space())

	chest := r.Part(Chest).Body
	start := chest.Position().Y
	prev := start
	var sumDelta float64

	for tick := 0; tick < 60; tick++ {
		world.Step()
		y := chest.Position().Y
		sumDelta += y - prev
		prev = y

		stretch := r.MaxStretch()
		if math.IsNaN(stretch) || stretch > 30*scale {
			t.Fatalf("tick %d: max joint stretch %v", tick, stretch)
		}
	}

	if prev <= start {
		t.Errorf("chest y went from %v to %v, expected it to fall", start, prev)
	}
	if sumDelta/60 <= 0 {
		t.Errorf("mean chest dy per tick = %v, want positive", sumDelta/60)
	}
	if s := r.MaxStretch(); s > 10*scale {
		t.Errorf("joints did not settle: max stretch %v", s)
	}
	if math.Abs(world.Time()-1) > 1e-9 {
		t.Errorf("simulated time = %v, want 1s", world.Time())
	}
}

func TestRemoveFromSpace(t *testing.T) {
	world := physics.NewWorld(config.Default().Physics)
	r := mustBuild(t, cp.Vector{X: 400, Y: 300}, 1, DefaultOptions(), world)
	r.AddTo(world.Space())
	r.RemoveFrom(world.Space())

	count := 0
	world.Space().EachBody(func(b *cp.Body) {
		if r.Owns(b) {
			count++
		}
	})
	if count != 0 {
		t.Errorf("%d bodies left in space after RemoveFrom", count)
	}
	world.Step()
}
