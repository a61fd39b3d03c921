package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/telemetry"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: %v became %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestApplyClampsAndRounds(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	pv.ApplyToConfig(cfg, []float64{2, -1, 7.6, 0.5})

	if cfg.Ragdoll.Stiffness != 1 {
		t.Errorf("stiffness = %v, want clamped to 1", cfg.Ragdoll.Stiffness)
	}
	if cfg.Ragdoll.Hanger.Stiffness != 0.05 {
		t.Errorf("hanger stiffness = %v, want clamped to 0.05", cfg.Ragdoll.Hanger.Stiffness)
	}
	if cfg.Physics.Iterations != 8 {
		t.Errorf("iterations = %d, want 8", cfg.Physics.Iterations)
	}

	got := pv.ExtractFromConfig(cfg)
	if len(got) != pv.Dim() {
		t.Fatalf("extracted %d values for %d specs", len(got), pv.Dim())
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	from := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if math.Abs(from[i]-spec.Default) > 1e-9 {
			t.Errorf("%s default %v, config has %v", spec.Path, spec.Default, from[i])
		}
	}
}

func TestFitnessPrefersFewerIterations(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 0, 0, nil, config.Default())
	r := &runResult{dance: []telemetry.WindowStats{{StretchP90: 2}}}

	cheap := config.Default()
	cheap.Physics.Iterations = 5
	costly := config.Default()
	costly.Physics.Iterations = 20

	a, _ := fe.computeFitness(cheap, r)
	b, _ := fe.computeFitness(costly, r)
	if a >= b {
		t.Errorf("fitness with 5 iterations %v, with 20 %v", a, b)
	}

	if f, _ := fe.computeFitness(cheap, &runResult{}); !math.IsInf(f, 1) {
		t.Errorf("empty run scored %v", f)
	}
}
