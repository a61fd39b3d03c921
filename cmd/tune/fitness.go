package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/puppet"
	"github.com/pthm-cable/tacodoll/telemetry"
)

// Weights of the secondary fitness terms. The main term is the mean p90
// joint gap in px.
const (
	iterationCost = 0.05 // per solver iteration
	restWeight    = 0.5  // per unit of log kinetic energy after the dance stops
)

// FitnessEvaluator runs headless dances and scores how well the figure
// holds together.
type FitnessEvaluator struct {
	params      *ParamVector
	danceTicks  int
	settleTicks int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastStretch float64 // mean p90 gap from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, danceTicks, settleTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		danceTicks:  danceTicks,
		settleTicks: settleTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 2.0,
	}
}

// LastStretch returns the mean p90 joint gap of the most recent evaluation.
func (fe *FitnessEvaluator) LastStretch() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStretch
}

// runResult holds the windows of one run, split by phase.
type runResult struct {
	dance  []telemetry.WindowStats
	settle []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	fitness := make([]float64, len(fe.seeds))
	stretch := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r, err := fe.runSimulation(cfg, s)
			if err != nil {
				fitness[idx] = math.Inf(1)
				return
			}
			fitness[idx], stretch[idx] = fe.computeFitness(cfg, r)
		}(i, seed)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastStretch = stat.Mean(stretch, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation dances for danceTicks and then lets the figure come to
// rest for settleTicks.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	collector := telemetry.NewCollector(fe.statsWindow, cfg.Physics.DT)
	ctrl, err := puppet.New(cfg, puppet.Options{Seed: seed, Events: collector})
	if err != nil {
		return nil, err
	}

	r := &runResult{}
	run := func(ticks int, into *[]telemetry.WindowStats) {
		for range ticks {
			ctrl.Tick(cfg.Derived.Step)
			collector.Record(ctrl.Sample())
			if collector.ShouldFlush(ctrl.Ticks()) {
				if stats, ok := collector.Flush(); ok {
					*into = append(*into, stats)
				}
			}
		}
		if stats, ok := collector.Flush(); ok {
			*into = append(*into, stats)
		}
	}

	ctrl.Dance()
	run(fe.danceTicks, &r.dance)
	ctrl.StopDance()
	run(fe.settleTicks, &r.settle)
	return r, nil
}

// copyConfig returns a copy of the base config that runs can modify.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness combines the joint gap during the dance, the solver cost
// and how still the figure is at the end.
func (fe *FitnessEvaluator) computeFitness(cfg *config.Config, r *runResult) (fitness, stretch float64) {
	if len(r.dance) == 0 {
		return math.Inf(1), 0
	}
	p90 := make([]float64, len(r.dance))
	for i, w := range r.dance {
		p90[i] = w.StretchP90
	}
	stretch = stat.Mean(p90, nil)
	if math.IsNaN(stretch) || math.IsInf(stretch, 0) {
		return math.Inf(1), 0
	}

	fitness = stretch + iterationCost*float64(cfg.Physics.Iterations)
	if n := len(r.settle); n > 0 {
		fitness += restWeight * math.Log1p(r.settle[n-1].KineticMean)
	}
	return fitness, stretch
}
