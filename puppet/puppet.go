// Package puppet drives a ragdoll figure: it steps the physics world, keeps
// one sprite per body in step with it, and layers pointer drag, singing and
// dancing on top.
//
// A Controller is not safe for concurrent use. Every method is expected to
// be called from the render loop.
package puppet

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tacodoll/camera"
	"github.com/pthm-cable/tacodoll/components"
	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/physics"
	"github.com/pthm-cable/tacodoll/ragdoll"
	"github.com/pthm-cable/tacodoll/schedule"
	"github.com/pthm-cable/tacodoll/telemetry"
	"github.com/pthm-cable/tacodoll/visual"
)

// Options configures a Controller beyond what the config file holds.
type Options struct {
	Seed int64 // dance randomness

	Voice   Voice               // nil means silent
	View    *camera.Camera      // nil means screen and world coincide
	Events  telemetry.EventSink // nil means events are dropped
	Visuals *visual.Table       // nil means built from cfg.Sprites
	Figure  *ragdoll.Options    // nil means ragdoll.OptionsFromConfig(cfg)
	Phases  PhaseTimer          // nil means ticks are not timed
}

// PhaseTimer is told when each part of a tick begins.
type PhaseTimer interface {
	StartPhase(telemetry.Phase)
}

// Controller owns the physics world, the figure, and its sprites.
type Controller struct {
	cfg   *config.Config
	opts  ragdoll.Options
	world *physics.World
	doll  *ragdoll.Ragdoll

	hanger *physics.Hanger

	store     *ecs.World
	partMap   *ecs.Map2[components.Part, components.Sprite]
	partQuery *ecs.Filter2[components.Part, components.Sprite]
	spriteMap *ecs.Map[components.Sprite]
	mouthMap  *ecs.Map[components.Mouth]
	entities  [ragdoll.NumLabels]ecs.Entity
	head      ecs.Entity

	sched   *schedule.Scheduler
	rng     *rand.Rand
	view    *camera.Camera
	visuals visual.Table
	voice   Voice
	events  telemetry.EventSink
	phases  PhaseTimer

	drag   dragState
	singer singer
	dancer dancer

	tick int64
}

// New builds the world and the figure described by cfg. The figure is
// anchored at the centre of the screen.
func New(cfg *config.Config, opts Options) (*Controller, error) {
	c := &Controller{
		cfg:    cfg,
		world:  physics.NewWorld(cfg.Physics),
		sched:  schedule.New(),
		rng:    rand.New(rand.NewSource(opts.Seed)),
		view:   opts.View,
		voice:  opts.Voice,
		events: opts.Events,
		phases: opts.Phases,
	}
	if c.view == nil {
		c.view = camera.New(cfg.Derived.ScreenW, cfg.Derived.ScreenH, cfg.Derived.ScreenW, cfg.Derived.ScreenH)
	}

	if opts.Figure != nil {
		c.opts = *opts.Figure
	} else {
		c.opts = ragdoll.OptionsFromConfig(cfg)
	}

	if opts.Visuals != nil {
		c.visuals = *opts.Visuals
	} else {
		var unknown []string
		c.visuals, unknown = visual.NewTable(cfg.Sprites)
		for _, name := range unknown {
			slog.Warn("sprite entry for unknown body label", "label", name)
		}
	}

	c.store = ecs.NewWorld()
	c.partMap = ecs.NewMap2[components.Part, components.Sprite](c.store)
	c.partQuery = ecs.NewFilter2[components.Part, components.Sprite](c.store)
	c.spriteMap = ecs.NewMap[components.Sprite](c.store)
	c.mouthMap = ecs.NewMap[components.Mouth](c.store)

	if cfg.Physics.Bounds.Enabled {
		c.world.AddWalls(cfg.Derived.ScreenW, cfg.Derived.ScreenH, cfg.Physics.Bounds.Thickness, cfg.Physics.Friction)
	}
	if h := cfg.Ragdoll.Hanger; h.Enabled {
		c.hanger = physics.NewHanger(
			cp.Vector{X: cfg.Derived.ScreenW / 2, Y: h.Y},
			cp.Vector{X: h.AnchorA.X, Y: h.AnchorA.Y},
			cp.Vector{X: h.AnchorB.X, Y: h.AnchorB.Y},
			h.Stiffness,
		)
	}

	c.singer.init(c)

	if err := c.spawn(); err != nil {
		return nil, err
	}
	return c, nil
}

// spawn builds a figure at the screen centre, adds it to the space and
// creates one entity per body.
func (c *Controller) spawn() error {
	anchor := cp.Vector{X: c.cfg.Derived.ScreenW / 2, Y: c.cfg.Derived.ScreenH / 2}
	doll, err := ragdoll.Build(anchor, c.cfg.Ragdoll.Scale, c.opts, c.world)
	if err != nil {
		return fmt.Errorf("building figure: %w", err)
	}
	doll.AddTo(c.world.Space())
	c.doll = doll

	for i := range doll.Parts {
		p := &doll.Parts[i]
		part := components.Part{Label: p.Label, Body: p.Body, Shape: p.Shape}
		sprite := components.Sprite{
			Descriptor: c.visuals.Lookup(p.Label),
			Width:      p.Width,
			Height:     p.Height,
			Outline:    p.Outline,
		}
		e := c.partMap.NewEntity(&part, &sprite)
		c.entities[p.Label] = e
	}

	c.head = c.entities[ragdoll.Head]
	c.mouthMap.Add(c.head, &components.Mouth{
		Open:   true,
		Opened: c.cfg.Head.Opened,
		Closed: c.cfg.Head.Closed,
	})
	c.applyMouth()

	if c.hanger != nil {
		c.world.Attach(c.hanger, doll.Part(ragdoll.Head).Body)
	}
	c.sync()

	slog.Info("ragdoll built",
		"scale", doll.Scale,
		"group", doll.Group,
		"anchor_x", anchor.X,
		"anchor_y", anchor.Y,
	)
	return nil
}

// despawn removes the figure from the space and drops its entities.
func (c *Controller) despawn() {
	if c.doll == nil {
		return
	}
	if c.hanger != nil {
		c.world.Detach(c.hanger)
	}
	c.doll.RemoveFrom(c.world.Space())
	for _, e := range c.entities {
		if c.store.Alive(e) {
			c.store.RemoveEntity(e)
		}
	}
	c.entities = [ragdoll.NumLabels]ecs.Entity{}
	c.doll = nil
}

// Tick runs due timers, advances the physics by one fixed step and copies
// the new body poses onto the sprites. elapsed is the wall-clock time since
// the previous tick; it only drives the timers.
func (c *Controller) Tick(elapsed time.Duration) {
	c.phase(telemetry.PhaseSchedule)
	c.sched.Advance(elapsed)
	c.phase(telemetry.PhasePhysics)
	c.world.Step()
	c.phase(telemetry.PhaseSync)
	c.sync()
	c.tick++
}

func (c *Controller) phase(ph telemetry.Phase) {
	if c.phases != nil {
		c.phases.StartPhase(ph)
	}
}

// sync copies each body's position and angle onto its sprite.
func (c *Controller) sync() {
	query := c.partQuery.Query()
	for query.Next() {
		part, sprite := query.Get()
		if part.Body == nil {
			continue
		}
		pos := part.Body.Position()
		sprite.X, sprite.Y = pos.X, pos.Y
		sprite.Rotation = part.Body.Angle()
	}
}

// EachSprite calls fn for every body part and its sprite.
func (c *Controller) EachSprite(fn func(components.Part, *components.Sprite)) {
	query := c.partQuery.Query()
	for query.Next() {
		part, sprite := query.Get()
		fn(*part, sprite)
	}
}

// DrawItem is one sprite in draw order.
type DrawItem struct {
	Label  ragdoll.Label
	Sprite components.Sprite
}

// DrawList returns copies of all sprites sorted back to front by z-index.
// Sprites with equal z-index keep body order.
func (c *Controller) DrawList() []DrawItem {
	items := make([]DrawItem, 0, ragdoll.NumLabels)
	c.EachSprite(func(p components.Part, s *components.Sprite) {
		items = append(items, DrawItem{Label: p.Label, Sprite: *s})
	})
	slices.SortStableFunc(items, func(a, b DrawItem) int {
		if a.Sprite.ZIndex != b.Sprite.ZIndex {
			return a.Sprite.ZIndex - b.Sprite.ZIndex
		}
		return int(a.Label) - int(b.Label)
	})
	return items
}

// Sprite returns the sprite for l, or nil if the figure has no such part.
func (c *Controller) Sprite(l ragdoll.Label) *components.Sprite {
	if !l.Valid() || c.doll == nil {
		return nil
	}
	e := c.entities[l]
	if !c.store.Alive(e) {
		return nil
	}
	return c.spriteMap.Get(e)
}

// Ragdoll returns the current figure.
func (c *Controller) Ragdoll() *ragdoll.Ragdoll { return c.doll }

// World returns the physics world.
func (c *Controller) World() *physics.World { return c.world }

// Hanger returns the hanger, or nil when disabled.
func (c *Controller) Hanger() *physics.Hanger { return c.hanger }

// View returns the camera used for pointer mapping.
func (c *Controller) View() *camera.Camera { return c.view }

// Scheduler returns the timer queue driven by Tick.
func (c *Controller) Scheduler() *schedule.Scheduler { return c.sched }

// Ticks returns the number of ticks run so far.
func (c *Controller) Ticks() int64 { return c.tick }

// Sample returns the figure's current state for telemetry.
func (c *Controller) Sample() telemetry.Sample {
	if c.doll == nil {
		return telemetry.Sample{Tick: c.tick}
	}
	chest := c.doll.Part(ragdoll.Chest).Body.Position()
	return telemetry.Sample{
		Tick:      c.tick,
		ChestX:    chest.X,
		ChestY:    chest.Y,
		Stretches: c.doll.Stretches(),
		Kinetic:   c.doll.KineticEnergy(),
		Dragging:  c.drag.active(),
	}
}

// Snapshot captures the current pose.
func (c *Controller) Snapshot() *telemetry.Snapshot {
	return telemetry.NewSnapshot(c.tick, c.doll)
}

// Restore moves the figure to a saved pose and returns the number of parts
// that were placed. Any drag in progress is released first.
func (c *Controller) Restore(s *telemetry.Snapshot) int {
	c.Release(0, 0)
	n := s.Apply(c.doll)
	c.sync()
	return n
}

// Rebuild throws the figure away and builds a fresh one at the screen
// centre. Drag, dance and any sing sequence are stopped.
func (c *Controller) Rebuild() error {
	c.Release(0, 0)
	c.StopDance()
	c.singer.abort()
	c.despawn()
	if err := c.spawn(); err != nil {
		return err
	}
	c.emit(telemetry.NewRebuildEvent(c.tick))
	return nil
}

func (c *Controller) emit(e telemetry.Event) {
	if c.events != nil {
		c.events.RecordEvent(e)
	}
}
