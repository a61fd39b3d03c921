package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a simulation tick.
type Phase int

// Phases in the order a tick runs them.
const (
	PhaseSchedule Phase = iota
	PhasePhysics
	PhaseSync
	PhaseTelemetry
	NumPhases
)

var phaseNames = [NumPhases]string{"schedule", "physics", "sync", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= NumPhases {
		return "none"
	}
	return phaseNames[p]
}

// tickTiming is the wall-clock cost of one tick.
type tickTiming struct {
	total  time.Duration
	phases [NumPhases]time.Duration
}

// PerfCollector times ticks phase by phase and keeps the last window of
// them in a ring.
type PerfCollector struct {
	now func() time.Time

	ring   []tickTiming
	next   int
	filled int

	current    tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase // NumPhases when no phase is open

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last window ticks; window < 1 means 60.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		now:   time.Now,
		ring:  make([]tickTiming, window),
		phase: NumPhases,
	}
}

// StartTick opens a new tick. No phase is open until StartPhase.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = tickTiming{}
	p.phase = NumPhases
}

// StartPhase closes the open phase, if any, and opens ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = ph
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 && p.phase < NumPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = NumPhases
}

// EndTick closes the tick and stores it in the ring, evicting the oldest
// once the window is full.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame marks the start of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the ticks in the window.
type PerfStats struct {
	Ticks int

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // share of the average tick, 0..100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window. Frame timing is reported even when
// no tick has been recorded yet.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.filled, FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [NumPhases]time.Duration
	for i, t := range p.ring[:p.filled] {
		total += t.total
		if i == 0 || t.total < s.MinTickDuration {
			s.MinTickDuration = t.total
		}
		if t.total > s.MaxTickDuration {
			s.MaxTickDuration = t.total
		}
		for ph, d := range t.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = total / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// Slowest returns the phase with the largest average cost.
func (s PerfStats) Slowest() Phase {
	slowest := PhaseSchedule
	for ph := PhaseSchedule; ph < NumPhases; ph++ {
		if s.PhaseAvg[ph] > s.PhaseAvg[slowest] {
			slowest = ph
		}
	}
	return slowest
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	attrs := []any{
		"ticks", s.Ticks,
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph := PhaseSchedule; ph < NumPhases; ph++ {
		attrs = append(attrs, ph.String()+"_pct", float64(int(s.PhasePct[ph]*10))/10)
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	SchedulePct  float64 `csv:"schedule_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	SyncPct      float64 `csv:"sync_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at tick windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		SchedulePct:  s.PhasePct[PhaseSchedule],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		SyncPct:      s.PhasePct[PhaseSync],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
