package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Chest pose at window end
	ChestX  float64 `csv:"chest_x"`
	ChestY  float64 `csv:"chest_y"`
	ChestDY float64 `csv:"chest_dy"` // change over the window, positive is down

	// Joint stretch distribution over every joint and tick in the window
	StretchMean float64 `csv:"stretch_mean"`
	StretchStd  float64 `csv:"stretch_std"`
	StretchP50  float64 `csv:"stretch_p50"`
	StretchP90  float64 `csv:"stretch_p90"`
	StretchMax  float64 `csv:"stretch_max"`

	// Motion
	KineticMean float64 `csv:"kinetic_mean"`
	KineticMax  float64 `csv:"kinetic_max"`

	// Interaction during window
	DragTicks     int `csv:"drag_ticks"`
	Drags         int `csv:"drags"`
	Sings         int `csv:"sings"`
	SingsRejected int `csv:"sings_rejected"`
	DanceKicks    int `csv:"dance_kicks"`
	Rebuilds      int `csv:"rebuilds"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// StretchSummary describes a set of joint separations.
type StretchSummary struct {
	Mean, Std, P50, P90, Max float64
}

// ComputeStretchStats calculates mean, population std, median, p90 and max.
func ComputeStretchStats(values []float64) StretchSummary {
	if len(values) == 0 {
		return StretchSummary{}
	}

	mean := stat.Mean(values, nil)
	std := stat.PopStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return StretchSummary{
		Mean: mean,
		Std:  std,
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(sorted),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("chest_x", s.ChestX),
		slog.Float64("chest_y", s.ChestY),
		slog.Float64("chest_dy", s.ChestDY),
		slog.Float64("stretch_mean", s.StretchMean),
		slog.Float64("stretch_std", s.StretchStd),
		slog.Float64("stretch_p50", s.StretchP50),
		slog.Float64("stretch_p90", s.StretchP90),
		slog.Float64("stretch_max", s.StretchMax),
		slog.Float64("kinetic_mean", s.KineticMean),
		slog.Float64("kinetic_max", s.KineticMax),
		slog.Int("drag_ticks", s.DragTicks),
		slog.Int("drags", s.Drags),
		slog.Int("sings", s.Sings),
		slog.Int("sings_rejected", s.SingsRejected),
		slog.Int("dance_kicks", s.DanceKicks),
		slog.Int("rebuilds", s.Rebuilds),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"chest_y", s.ChestY,
		"chest_dy", s.ChestDY,
		"stretch_mean", s.StretchMean,
		"stretch_p90", s.StretchP90,
		"stretch_max", s.StretchMax,
		"kinetic_mean", s.KineticMean,
		"drags", s.Drags,
		"sings", s.Sings,
		"dance_kicks", s.DanceKicks,
	)
}
