package puppet

import (
	"log/slog"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/ragdoll"
	"github.com/pthm-cable/tacodoll/schedule"
	"github.com/pthm-cable/tacodoll/telemetry"
)

// dancer holds the dance loop state. token is the pending kick, zero when
// the loop is stopped.
type dancer struct {
	token schedule.Token
	dir   float64
	kicks int
}

// Dancing reports whether the dance loop is running.
func (c *Controller) Dancing() bool { return c.dancer.token != 0 }

// DanceKicks returns how many kicks the loop has applied since New.
func (c *Controller) DanceKicks() int { return c.dancer.kicks }

// Dance starts the dance loop: every period_min..period_max ms the chest is
// pushed sideways, alternating direction, and one random limb is pushed the
// same way as the chest with a vertical LimbLift (positive Y, so downward on
// screen). Calling Dance while dancing does nothing.
func (c *Controller) Dance() {
	if c.Dancing() {
		return
	}
	if c.dancer.dir == 0 {
		c.dancer.dir = 1
	}
	c.scheduleKick()
	slog.Info("dance started")
}

// StopDance cancels the pending kick. It is a no-op when not dancing.
func (c *Controller) StopDance() {
	if !c.Dancing() {
		return
	}
	c.sched.Cancel(c.dancer.token)
	c.dancer.token = 0
	slog.Info("dance stopped", "kicks", c.dancer.kicks)
}

// ToggleDance starts or stops the loop.
func (c *Controller) ToggleDance() {
	if c.Dancing() {
		c.StopDance()
		return
	}
	c.Dance()
}

func (c *Controller) scheduleKick() {
	c.dancer.token = c.sched.After(c.dancePeriod(), c.kick)
}

func (c *Controller) dancePeriod() time.Duration {
	lo, hi := c.cfg.Dance.PeriodMin, c.cfg.Dance.PeriodMax
	ms := lo
	if hi > lo {
		ms += c.rng.Intn(hi - lo + 1)
	}
	return time.Duration(ms) * time.Millisecond
}

// kick applies one dance impulse and schedules the next.
func (c *Controller) kick() {
	c.dancer.token = 0
	if c.doll == nil {
		return
	}

	chest := c.doll.Part(ragdoll.Chest).Body
	push(chest, cp.Vector{X: c.dancer.dir * c.cfg.Dance.ChestKick})
	c.dancer.dir = -c.dancer.dir

	limb := ragdoll.NumLabels
	if parts := c.cfg.Dance.Parts; len(parts) > 0 {
		if l, ok := ragdoll.ParseLabel(parts[c.rng.Intn(len(parts))]); ok {
			limb = l
			push(c.doll.Part(l).Body, cp.Vector{
				X: -c.dancer.dir * c.cfg.Dance.LimbKick,
				Y: c.cfg.Dance.LimbLift,
			})
		}
	}
	c.dancer.kicks++
	c.emit(telemetry.NewKickEvent(c.tick, limb))

	c.scheduleKick()
}

// push changes body's velocity by dv through an impulse at its centre.
func push(body *cp.Body, dv cp.Vector) {
	body.ApplyImpulseAtWorldPoint(dv.Mult(body.Mass()), body.Position())
}
