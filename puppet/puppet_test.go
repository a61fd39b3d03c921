package puppet

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/components"
	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/ragdoll"
	"github.com/pthm-cable/tacodoll/telemetry"
)

type eventLog struct {
	events []telemetry.Event
}

func (l *eventLog) RecordEvent(e telemetry.Event) { l.events = append(l.events, e) }

func (l *eventLog) count(t telemetry.EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// stillConfig has no gravity and no hanger, so nothing moves unless pushed.
func stillConfig() *config.Config {
	cfg := config.Default()
	cfg.Physics.Gravity = config.Vec{}
	cfg.Ragdoll.Hanger.Enabled = false
	cfg.Physics.Bounds.Enabled = false
	cfg.Head = config.HeadConfig{Opened: "open.png", Closed: "closed.png"}
	return cfg
}

// looseFigure turns off joint error correction so a figure at rest stays
// exactly where it was built.
func looseFigure() *ragdoll.Options {
	o := ragdoll.DefaultOptions()
	o.Stiffness = 0
	return &o
}

func newController(t *testing.T, cfg *config.Config, opts Options) *Controller {
	t.Helper()
	c, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewCreatesOneSpritePerBody(t *testing.T) {
	cfg := stillConfig()
	c := newController(t, cfg, Options{})

	seen := map[ragdoll.Label]bool{}
	c.EachSprite(func(p components.Part, s *components.Sprite) {
		if seen[p.Label] {
			t.Errorf("%v has two sprites", p.Label)
		}
		seen[p.Label] = true
		if p.Body != c.Ragdoll().Part(p.Label).Body {
			t.Errorf("%v sprite is paired with the wrong body", p.Label)
		}
		pos := p.Body.Position()
		if s.X != pos.X || s.Y != pos.Y || s.Rotation != p.Body.Angle() {
			t.Errorf("%v sprite at (%v, %v) but body at %v", p.Label, s.X, s.Y, pos)
		}
	})
	if len(seen) != int(ragdoll.NumLabels) {
		t.Fatalf("got %d sprites, want %d", len(seen), ragdoll.NumLabels)
	}

	chest := c.Ragdoll().Part(ragdoll.Chest).Body.Position()
	if chest.X != cfg.Derived.ScreenW/2 || chest.Y != cfg.Derived.ScreenH/2 {
		t.Errorf("chest at %v, want screen centre", chest)
	}
	if got := c.Sprite(ragdoll.Head).Texture; got != "open.png" {
		t.Errorf("head texture = %q, want open.png", got)
	}
}

func TestMissingVisualsFallBackToPlaceholders(t *testing.T) {
	cfg := stillConfig()
	cfg.Sprites = nil
	cfg.Head = config.HeadConfig{}
	c := newController(t, cfg, Options{})

	for _, l := range ragdoll.Labels() {
		s := c.Sprite(l)
		if s == nil {
			t.Fatalf("no sprite for %v", l)
		}
		if !s.Placeholder() {
			t.Errorf("%v has texture %q, want placeholder", l, s.Texture)
		}
		if s.Width <= 0 || s.Height <= 0 || len(s.Outline) == 0 {
			t.Errorf("%v placeholder has no size", l)
		}
	}
}

func TestDrawListOrder(t *testing.T) {
	c := newController(t, stillConfig(), Options{})
	items := c.DrawList()
	if len(items) != int(ragdoll.NumLabels) {
		t.Fatalf("draw list has %d items", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Sprite.ZIndex < items[i-1].Sprite.ZIndex {
			t.Errorf("%v (z %d) drawn after %v (z %d)",
				items[i].Label, items[i].Sprite.ZIndex, items[i-1].Label, items[i-1].Sprite.ZIndex)
		}
	}
	if last := items[len(items)-1].Label; last != ragdoll.Head {
		t.Errorf("last drawn = %v, want head", last)
	}
}

func TestSyncIdempotentAtRest(t *testing.T) {
	c := newController(t, stillConfig(), Options{Figure: looseFigure()})

	before := map[ragdoll.Label]components.Sprite{}
	c.EachSprite(func(p components.Part, s *components.Sprite) { before[p.Label] = *s })

	for i := 0; i < 120; i++ {
		c.Tick(16 * time.Millisecond)
	}

	c.EachSprite(func(p components.Part, s *components.Sprite) {
		b := before[p.Label]
		if math.Abs(s.X-b.X) > 1e-9 || math.Abs(s.Y-b.Y) > 1e-9 || math.Abs(s.Rotation-b.Rotation) > 1e-9 {
			t.Errorf("%v moved from (%v, %v, %v) to (%v, %v, %v)",
				p.Label, b.X, b.Y, b.Rotation, s.X, s.Y, s.Rotation)
		}
	})
	if c.Ticks() != 120 {
		t.Errorf("ticks = %d, want 120", c.Ticks())
	}
}

func TestTickFollowsFallingBodies(t *testing.T) {
	cfg := config.Default()
	cfg.Ragdoll.Hanger.Enabled = false
	c := newController(t, cfg, Options{})

	startY := c.Sprite(ragdoll.Chest).Y
	for i := 0; i < 30; i++ {
		c.Tick(cfg.Derived.Step)
	}
	s := c.Sprite(ragdoll.Chest)
	if s.Y <= startY {
		t.Errorf("chest sprite y = %v, want below %v", s.Y, startY)
	}
	if pos := c.Ragdoll().Part(ragdoll.Chest).Body.Position(); s.Y != pos.Y {
		t.Errorf("sprite y %v lags body y %v", s.Y, pos.Y)
	}
}

type phaseLog []telemetry.Phase

func (l *phaseLog) StartPhase(ph telemetry.Phase) { *l = append(*l, ph) }

func TestTickReportsPhasesInOrder(t *testing.T) {
	cfg := stillConfig()
	var log phaseLog
	c := newController(t, cfg, Options{Phases: &log})

	c.Tick(cfg.Derived.Step)
	c.Tick(cfg.Derived.Step)

	want := []telemetry.Phase{
		telemetry.PhaseSchedule, telemetry.PhasePhysics, telemetry.PhaseSync,
		telemetry.PhaseSchedule, telemetry.PhasePhysics, telemetry.PhaseSync,
	}
	if len(log) != len(want) {
		t.Fatalf("phases = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("phase %d = %v, want %v", i, log[i], want[i])
		}
	}
}

func TestDragRestoresMass(t *testing.T) {
	tests := []struct {
		name    string
		release func(c *Controller, x, y float64)
		moveX   float64
		moveY   float64
	}{
		{"release inside", (*Controller).Release, 700, 420},
		{"release outside", (*Controller).ReleaseOutside, -400, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := stillConfig()
			events := &eventLog{}
			c := newController(t, cfg, Options{Events: events})
			chest := c.Ragdoll().Part(ragdoll.Chest).Body
			mass, moment := chest.Mass(), chest.Moment()

			if !c.Press(cfg.Derived.ScreenW/2, cfg.Derived.ScreenH/2) {
				t.Fatal("press on the chest missed")
			}
			info, ok := c.Drag()
			if !ok || info.Label != ragdoll.Chest {
				t.Fatalf("dragging %v, want chest", info.Label)
			}
			if math.Abs(chest.Mass()-mass*cfg.Drag.MassMultiplier) > 1e-9 {
				t.Errorf("mass while dragging = %v, want %v", chest.Mass(), mass*cfg.Drag.MassMultiplier)
			}
			if math.Abs(chest.Moment()-moment*cfg.Drag.MassMultiplier) > 1e-9*moment {
				t.Errorf("moment while dragging = %v, want %v", chest.Moment(), moment*cfg.Drag.MassMultiplier)
			}

			c.Move(tt.moveX, tt.moveY)
			for i := 0; i < 10; i++ {
				c.Tick(cfg.Derived.Step)
				c.Move(tt.moveX, tt.moveY)
			}
			tt.release(c, tt.moveX, tt.moveY)

			if chest.Mass() != mass {
				t.Errorf("mass after release = %v, want %v", chest.Mass(), mass)
			}
			if chest.Moment() != moment {
				t.Errorf("moment after release = %v, want %v", chest.Moment(), moment)
			}
			if _, ok := c.Drag(); ok {
				t.Error("still dragging after release")
			}
			if events.count(telemetry.EventDragStart) != 1 || events.count(telemetry.EventDragEnd) != 1 {
				t.Errorf("events = %+v", events.events)
			}
		})
	}
}

func TestMoveClampsInsideViewport(t *testing.T) {
	cfg := stillConfig()
	c := newController(t, cfg, Options{})
	if !c.Press(cfg.Derived.ScreenW/2, cfg.Derived.ScreenH/2) {
		t.Fatal("press missed")
	}
	c.Move(-1000, cfg.Derived.ScreenH+1000)

	pos := c.Ragdoll().Part(ragdoll.Chest).Body.Position()
	want := cp.Vector{X: cfg.Drag.Margin, Y: cfg.Derived.ScreenH - cfg.Drag.Margin}
	if pos.Distance(want) > 1e-9 {
		t.Errorf("dragged body at %v, want %v", pos, want)
	}
	if v := c.Ragdoll().Part(ragdoll.Chest).Body.Velocity(); v.X != 0 || v.Y != 0 {
		t.Errorf("dragged body velocity = %v, want zero", v)
	}
}

func TestPressMissAndSecondPress(t *testing.T) {
	cfg := stillConfig()
	c := newController(t, cfg, Options{})

	if c.Press(5, 5) {
		t.Error("press in an empty corner picked up a body")
	}
	if !c.Press(cfg.Derived.ScreenW/2, cfg.Derived.ScreenH/2) {
		t.Fatal("press on the chest missed")
	}
	chest := c.Ragdoll().Part(ragdoll.Chest).Body
	heavy := chest.Mass()
	if c.Press(cfg.Derived.ScreenW/2, cfg.Derived.ScreenH/2) {
		t.Error("second press should be ignored")
	}
	if chest.Mass() != heavy {
		t.Error("second press changed the mass again")
	}
	c.Release(0, 0)
	c.Release(0, 0)
}

// mouthTrace advances the clock 1 ms at a time and records when the mouth
// changes state.
func mouthTrace(c *Controller, total time.Duration) []time.Duration {
	var changes []time.Duration
	open := c.MouthOpen()
	for c.Scheduler().Now() < total {
		c.Scheduler().Advance(time.Millisecond)
		if now := c.MouthOpen(); now != open {
			open = now
			changes = append(changes, c.Scheduler().Now())
		}
	}
	return changes
}

func TestSingReentrancy(t *testing.T) {
	var played []string
	events := &eventLog{}
	c := newController(t, stillConfig(), Options{
		Voice:  VoiceFunc(func(name string) { played = append(played, name) }),
		Events: events,
	})

	if !c.SingTaco(false) {
		t.Fatal("first sing rejected")
	}
	if c.MouthOpen() || c.Sprite(ragdoll.Head).Texture != "closed.png" {
		t.Error("sequence should start with the mouth closed")
	}
	if c.SingBurrito(false) {
		t.Error("second sing should be rejected while the first runs")
	}
	if c.SingTaco(false) {
		t.Error("same song should be rejected too")
	}

	changes := mouthTrace(c, 500*time.Millisecond)
	want := []time.Duration{80 * time.Millisecond, 150 * time.Millisecond, 200 * time.Millisecond}
	if len(changes) != len(want) {
		t.Fatalf("mouth changed at %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d at %v, want %v", i, changes[i], want[i])
		}
	}
	if !c.MouthOpen() || c.Singing() {
		t.Error("sequence should end idle with the mouth open")
	}
	if len(played) != 1 || played[0] != SongTaco {
		t.Errorf("played %v, want [taco]", played)
	}
	if events.count(telemetry.EventSing) != 1 || events.count(telemetry.EventSingRejected) != 2 {
		t.Errorf("sing events = %+v", events.events)
	}

	if !c.SingBurrito(true) {
		t.Error("sing after the sequence ended should start")
	}
	if len(played) != 1 {
		t.Error("muted sing played a sound")
	}
	if got := mouthTrace(c, c.Scheduler().Now()+time.Second); len(got) != len(c.cfg.Sing.Burrito) {
		t.Errorf("burrito toggled %d times, want %d", len(got), len(c.cfg.Sing.Burrito))
	}
}

func TestDanceStopLeavesNoTimer(t *testing.T) {
	cfg := stillConfig()
	events := &eventLog{}
	c := newController(t, cfg, Options{Seed: 7, Figure: looseFigure(), Events: events})
	chest := c.Ragdoll().Part(ragdoll.Chest).Body

	c.StopDance() // idle stop is a no-op
	c.Dance()
	c.Dance()
	if !c.Dancing() || c.Scheduler().Pending() != 1 {
		t.Fatalf("dancing=%v pending=%d, want one pending kick", c.Dancing(), c.Scheduler().Pending())
	}

	c.Scheduler().Advance(time.Duration(cfg.Dance.PeriodMax) * time.Millisecond)
	if c.DanceKicks() != 1 {
		t.Fatalf("kicks = %d after one period, want 1", c.DanceKicks())
	}
	if v := chest.Velocity(); math.Abs(v.X-cfg.Dance.ChestKick) > 1e-6 {
		t.Errorf("chest velocity after first kick = %v, want x %v", v, cfg.Dance.ChestKick)
	}

	c.StopDance()
	c.StopDance()
	if c.Dancing() || c.Scheduler().Pending() != 0 {
		t.Fatalf("dancing=%v pending=%d after stop", c.Dancing(), c.Scheduler().Pending())
	}
	c.Scheduler().Advance(10 * time.Second)
	if c.DanceKicks() != 1 {
		t.Errorf("kicks = %d after stop, want 1", c.DanceKicks())
	}
	if n := events.count(telemetry.EventDanceKick); n != 1 {
		t.Errorf("kick events = %d, want 1", n)
	}
}

func TestKickPushesLimbWithChest(t *testing.T) {
	cfg := stillConfig()
	cfg.Dance.Parts = []string{"left-arm-lower"}
	c := newController(t, cfg, Options{Seed: 5, Figure: looseFigure()})
	chest := c.Ragdoll().Part(ragdoll.Chest).Body
	limb := c.Ragdoll().Part(ragdoll.LeftArmLower).Body
	period := time.Duration(cfg.Dance.PeriodMax) * time.Millisecond

	tests := []struct {
		chestX, limbX, limbY float64
	}{
		{cfg.Dance.ChestKick, cfg.Dance.LimbKick, cfg.Dance.LimbLift},
		{0, 0, 2 * cfg.Dance.LimbLift}, // second kick goes back the other way
	}

	c.Dance()
	for i, tt := range tests {
		c.Scheduler().Advance(period)
		if c.DanceKicks() != i+1 {
			t.Fatalf("kicks = %d, want %d", c.DanceKicks(), i+1)
		}
		if v := chest.Velocity(); math.Abs(v.X-tt.chestX) > 1e-6 {
			t.Errorf("kick %d: chest vx = %v, want %v", i+1, v.X, tt.chestX)
		}
		v := limb.Velocity()
		if math.Abs(v.X-tt.limbX) > 1e-6 || math.Abs(v.Y-tt.limbY) > 1e-6 {
			t.Errorf("kick %d: limb velocity = %v, want (%v, %v)", i+1, v, tt.limbX, tt.limbY)
		}
	}
	c.StopDance()
}

func TestDancePeriodWithinRange(t *testing.T) {
	cfg := stillConfig()
	c := newController(t, cfg, Options{Seed: 3, Figure: looseFigure()})
	lo := time.Duration(cfg.Dance.PeriodMin) * time.Millisecond
	hi := time.Duration(cfg.Dance.PeriodMax) * time.Millisecond
	for i := 0; i < 200; i++ {
		if d := c.dancePeriod(); d < lo || d > hi {
			t.Fatalf("period %v outside [%v, %v]", d, lo, hi)
		}
	}

	c.Dance()
	c.Scheduler().Advance(20 * hi)
	if k := c.DanceKicks(); k < 20 {
		t.Errorf("kicks = %d over 20 max periods, want at least 20", k)
	}
	c.StopDance()
}

func TestRebuild(t *testing.T) {
	cfg := config.Default()
	events := &eventLog{}
	c := newController(t, cfg, Options{Events: events})
	old := c.Ragdoll()

	c.Press(cfg.Derived.ScreenW/2, cfg.Derived.ScreenH/2)
	c.Dance()
	c.SingTaco(true)
	for i := 0; i < 20; i++ {
		c.Tick(cfg.Derived.Step)
	}

	if err := c.Rebuild(); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	r := c.Ragdoll()
	if r == old || r.Group == old.Group {
		t.Error("rebuild should make a new figure in a new group")
	}
	if _, ok := c.Drag(); ok || c.Dancing() || c.Singing() {
		t.Error("rebuild should stop drag, dance and sing")
	}
	if c.Scheduler().Pending() != 0 {
		t.Errorf("pending timers after rebuild = %d", c.Scheduler().Pending())
	}
	if !c.Hanger().Attached() {
		t.Error("hanger should hold the new head")
	}

	owned, stale := 0, 0
	c.World().Space().EachBody(func(b *cp.Body) {
		switch {
		case r.Owns(b):
			owned++
		case old.Owns(b):
			stale++
		}
	})
	if owned != int(ragdoll.NumLabels) || stale != 0 {
		t.Errorf("space holds %d new and %d old bodies", owned, stale)
	}

	sprites := 0
	c.EachSprite(func(p components.Part, _ *components.Sprite) {
		sprites++
		if !r.Owns(p.Body) {
			t.Errorf("%v sprite still points at the old figure", p.Label)
		}
	})
	if sprites != int(ragdoll.NumLabels) {
		t.Errorf("sprites = %d after rebuild", sprites)
	}
	if events.count(telemetry.EventRebuild) != 1 {
		t.Error("missing rebuild event")
	}
}

func TestSnapshotRestore(t *testing.T) {
	cfg := config.Default()
	cfg.Ragdoll.Hanger.Enabled = false
	c := newController(t, cfg, Options{})
	for i := 0; i < 15; i++ {
		c.Tick(cfg.Derived.Step)
	}
	snap := c.Snapshot()
	saved := *c.Sprite(ragdoll.Chest)

	for i := 0; i < 30; i++ {
		c.Tick(cfg.Derived.Step)
	}
	if n := c.Restore(snap); n != int(ragdoll.NumLabels) {
		t.Fatalf("restored %d parts", n)
	}
	s := c.Sprite(ragdoll.Chest)
	if math.Abs(s.X-saved.X) > 1e-9 || math.Abs(s.Y-saved.Y) > 1e-9 {
		t.Errorf("chest sprite at (%v, %v), want (%v, %v)", s.X, s.Y, saved.X, saved.Y)
	}
}

func TestSample(t *testing.T) {
	c := newController(t, stillConfig(), Options{})
	c.Tick(16 * time.Millisecond)
	s := c.Sample()
	if s.Tick != 1 || len(s.Stretches) != ragdoll.NumJoints || s.Dragging {
		t.Errorf("sample = %+v", s)
	}
}
