package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/tacodoll/ragdoll"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeStretchStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	s := ComputeStretchStats(values)

	if math.Abs(s.Mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", s.Mean)
	}
	// Population std of 1..10 is sqrt(8.25)
	if math.Abs(s.Std-math.Sqrt(8.25)) > 0.001 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(8.25))
	}
	if math.Abs(s.P50-5.5) > 0.001 {
		t.Errorf("p50 = %v, want 5.5", s.P50)
	}
	if math.Abs(s.P90-9.1) > 0.001 {
		t.Errorf("p90 = %v, want 9.1", s.P90)
	}
	if s.Max != 10 {
		t.Errorf("max = %v, want 10", s.Max)
	}
	if values[0] != 1 || values[9] != 10 {
		t.Error("input slice should not be reordered")
	}
}

func TestComputeStretchStatsEmpty(t *testing.T) {
	if s := ComputeStretchStats(nil); s != (StretchSummary{}) {
		t.Errorf("empty input should return zeros, got %+v", s)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	if c.WindowDurationTicks() != 60 {
		t.Fatalf("window = %d ticks, want 60", c.WindowDurationTicks())
	}
	if _, ok := c.Flush(); ok {
		t.Error("flush with no samples should report !ok")
	}

	for tick := int64(1); tick <= 60; tick++ {
		c.Record(Sample{
			Tick:      tick,
			ChestX:    400,
			ChestY:    300 + float64(tick),
			Stretches: []float64{1, 3},
			Kinetic:   float64(tick),
			Dragging:  tick > 50,
		})
	}
	c.RecordEvent(NewDragEvent(51, ragdoll.Chest, true))
	c.RecordEvent(NewDragEvent(58, ragdoll.Chest, false))
	c.RecordEvent(NewSingEvent(10, "taco", false))
	c.RecordEvent(NewSingEvent(11, "taco", true))
	c.RecordEvent(NewKickEvent(20, ragdoll.LeftArmLower))

	if !c.ShouldFlush(60) {
		t.Fatal("window should be full at tick 60")
	}
	stats, ok := c.Flush()
	if !ok {
		t.Fatal("flush reported no data")
	}

	if stats.WindowEndTick != 60 || math.Abs(stats.SimTimeSec-1) > 1e-9 {
		t.Errorf("window end = %d at %v s", stats.WindowEndTick, stats.SimTimeSec)
	}
	if stats.ChestY != 360 || stats.ChestDY != 59 {
		t.Errorf("chest y = %v dy = %v, want 360 and 59", stats.ChestY, stats.ChestDY)
	}
	if stats.StretchMean != 2 || stats.StretchMax != 3 {
		t.Errorf("stretch mean %v max %v, want 2 and 3", stats.StretchMean, stats.StretchMax)
	}
	if stats.DragTicks != 10 || stats.Drags != 1 {
		t.Errorf("drag ticks %d drags %d, want 10 and 1", stats.DragTicks, stats.Drags)
	}
	if stats.Sings != 1 || stats.SingsRejected != 1 || stats.DanceKicks != 1 {
		t.Errorf("sings %d rejected %d kicks %d", stats.Sings, stats.SingsRejected, stats.DanceKicks)
	}

	// Counters reset for the next window.
	c.Record(Sample{Tick: 61, ChestY: 361})
	next, _ := c.Flush()
	if next.Drags != 0 || next.Sings != 0 || next.DragTicks != 0 {
		t.Errorf("counters carried over: %+v", next)
	}
	if next.ChestDY != 1 {
		t.Errorf("next window dy = %v, want 1", next.ChestDY)
	}
	if c.ShouldFlush(100) {
		t.Error("window starting at 61 should not be full at 100")
	}
}
