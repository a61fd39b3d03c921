package telemetry

// Sample is the per-tick state the collector aggregates.
type Sample struct {
	Tick      int64
	ChestX    float64
	ChestY    float64
	Stretches []float64 // anchor separation per joint
	Kinetic   float64
	Dragging  bool
}

// Collector accumulates samples and events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64
	startChestY     float64
	haveStart       bool
	last            Sample
	samples         int

	stretches []float64
	kinetic   []float64
	dragTicks int

	// Event counters for current window
	drags         int
	sings         int
	singsRejected int
	danceKicks    int
	rebuilds      int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec/dt + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record adds one tick's sample to the current window.
func (c *Collector) Record(s Sample) {
	if !c.haveStart {
		c.startChestY = s.ChestY
		c.haveStart = true
	}
	c.stretches = append(c.stretches, s.Stretches...)
	c.kinetic = append(c.kinetic, s.Kinetic)
	if s.Dragging {
		c.dragTicks++
	}
	c.last = s
	c.samples++
}

// RecordEvent counts an interaction event.
func (c *Collector) RecordEvent(e Event) {
	switch e.Type {
	case EventDragStart:
		c.drags++
	case EventSing:
		c.sings++
	case EventSingRejected:
		c.singsRejected++
	case EventDanceKick:
		c.danceKicks++
	case EventRebuild:
		c.rebuilds++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// ok is false when no sample was recorded since the last flush.
func (c *Collector) Flush() (stats WindowStats, ok bool) {
	if c.samples == 0 {
		return WindowStats{}, false
	}

	stretch := ComputeStretchStats(c.stretches)
	kinetic := ComputeStretchStats(c.kinetic)
	end := c.last.Tick

	stats = WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   end,
		SimTimeSec:      float64(end) * c.dt,

		ChestX:  c.last.ChestX,
		ChestY:  c.last.ChestY,
		ChestDY: c.last.ChestY - c.startChestY,

		StretchMean: stretch.Mean,
		StretchStd:  stretch.Std,
		StretchP50:  stretch.P50,
		StretchP90:  stretch.P90,
		StretchMax:  stretch.Max,

		KineticMean: kinetic.Mean,
		KineticMax:  kinetic.Max,

		DragTicks:     c.dragTicks,
		Drags:         c.drags,
		Sings:         c.sings,
		SingsRejected: c.singsRejected,
		DanceKicks:    c.danceKicks,
		Rebuilds:      c.rebuilds,
	}

	// Reset for next window
	c.windowStartTick = end
	c.startChestY = c.last.ChestY
	c.samples = 0
	c.stretches = c.stretches[:0]
	c.kinetic = c.kinetic[:0]
	c.dragTicks = 0
	c.drags = 0
	c.sings = 0
	c.singsRejected = 0
	c.danceKicks = 0
	c.rebuilds = 0

	return stats, true
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
