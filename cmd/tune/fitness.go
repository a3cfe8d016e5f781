package main

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/quadsoup/config"
	"github.com/pthm-cable/quadsoup/game"
	"github.com/pthm-cable/quadsoup/telemetry"
)

// FitnessEvaluator runs headless simulations and scores index settings by
// how fast the simulation ticks.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu         sync.Mutex
	lastTickUS float64
	lastShape  float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
	}
}

// Last returns the mean tick time and shape score of the most recent
// evaluation.
func (fe *FitnessEvaluator) Last() (tickUS, shape float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastTickUS, fe.lastShape
}

// runResult holds the results from a single simulation run.
type runResult struct {
	tickUS []float64               // mean tick time per stats window
	shape  []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better). It
// fails when any run leaves the index in an invalid state.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]*runResult, len(fe.seeds))
	var eg errgroup.Group
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			r, err := fe.runSimulation(cfg, seed)
			results[i] = r
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return math.Inf(1), err
	}

	var tickUS, shape []float64
	for _, r := range results {
		tickUS = append(tickUS, stat.Mean(r.tickUS, nil))
		shape = append(shape, shapeScore(r.shape))
	}
	meanTick := stat.Mean(tickUS, nil)
	meanShape := stat.Mean(shape, nil)

	fe.mu.Lock()
	fe.lastTickUS = meanTick
	fe.lastShape = meanShape
	fe.mu.Unlock()

	return meanTick * (1 + 0.2*meanShape), nil
}

// runSimulation executes a single headless simulation run.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	result := &runResult{}

	var g *game.Game
	g = game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.shape = append(result.shape, stats)
			result.tickUS = append(result.tickUS, float64(g.PerfStats().AvgTickDuration.Microseconds()))
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	if !g.Index().Validate() {
		return result, fmt.Errorf("seed %d: index invalid after %d ticks", seed, g.Tick())
	}
	if len(result.tickUS) == 0 {
		return result, fmt.Errorf("seed %d: no stats window completed in %d ticks", seed, fe.maxTicks)
	}
	return result, nil
}

// copyConfig returns a copy of the base config. Config holds only values, so
// a shallow copy is independent.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// Windows skipped while the population settles.
const shapeWarmupWindows = 2

// shapeScore measures how unevenly items are spread over leaves: the mean
// coefficient of variation of leaf occupancy. 0 means every leaf holds the
// same number of items.
func shapeScore(windows []telemetry.WindowStats) float64 {
	if len(windows) > shapeWarmupWindows {
		windows = windows[shapeWarmupWindows:]
	}
	var cvs []float64
	for _, w := range windows {
		if w.OccupancyMean > 0 {
			cvs = append(cvs, w.OccupancyStd/w.OccupancyMean)
		}
	}
	if len(cvs) == 0 {
		return 0
	}
	return stat.Mean(cvs, nil)
}
