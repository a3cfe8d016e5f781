package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/quadsoup/quadtree"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	Grazers    int `csv:"grazers"`
	Pellets    int `csv:"pellets"`
	Dispensers int `csv:"dispensers"`

	// Events during window
	Births         int `csv:"births"`
	Starved        int `csv:"starved"`
	Respawned      int `csv:"respawned"`
	PelletsSpawned int `csv:"pellets_spawned"`
	PelletsEaten   int `csv:"pellets_eaten"`

	// Grazer energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Index shape at window end
	IndexItems     int     `csv:"index_items"`
	IndexNodes     int     `csv:"index_nodes"`
	IndexLeaves    int     `csv:"index_leaves"`
	IndexMaxDepth  int     `csv:"index_max_depth"`
	OccupancyMean  float64 `csv:"occupancy_mean"`
	OccupancyStd   float64 `csv:"occupancy_std"`
	OccupancyMax   int     `csv:"occupancy_max"`
	RootWidth      float64 `csv:"root_width"`
	RootHeight     float64 `csv:"root_height"`
	RootGrowth     int     `csv:"root_growth"`
	CollisionReach float64 `csv:"reach"`
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

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// setIndex copies the index summary into the window.
func (s *WindowStats) setIndex(idx quadtree.Stats, reach float64) {
	s.IndexItems = idx.Items
	s.IndexNodes = idx.Nodes
	s.IndexLeaves = idx.Leaves
	s.IndexMaxDepth = idx.MaxDepth
	s.OccupancyMean = idx.OccupancyMean
	s.OccupancyStd = idx.OccupancyStdDev
	s.OccupancyMax = idx.OccupancyMax
	s.RootWidth = idx.Region.Width()
	s.RootHeight = idx.Region.Height()
	s.RootGrowth = idx.RootGrowth
	s.CollisionReach = reach
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("grazers", s.Grazers),
		slog.Int("pellets", s.Pellets),
		slog.Int("dispensers", s.Dispensers),
		slog.Int("births", s.Births),
		slog.Int("starved", s.Starved),
		slog.Int("respawned", s.Respawned),
		slog.Int("pellets_spawned", s.PelletsSpawned),
		slog.Int("pellets_eaten", s.PelletsEaten),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Int("index_items", s.IndexItems),
		slog.Int("index_nodes", s.IndexNodes),
		slog.Int("index_leaves", s.IndexLeaves),
		slog.Int("index_max_depth", s.IndexMaxDepth),
		slog.Float64("occupancy_mean", s.OccupancyMean),
		slog.Float64("occupancy_std", s.OccupancyStd),
		slog.Int("occupancy_max", s.OccupancyMax),
		slog.Float64("root_width", s.RootWidth),
		slog.Float64("root_height", s.RootHeight),
		slog.Int("root_growth", s.RootGrowth),
		slog.Float64("reach", s.CollisionReach),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"grazers", s.Grazers,
		"pellets", s.Pellets,
		"births", s.Births,
		"starved", s.Starved,
		"respawned", s.Respawned,
		"pellets_spawned", s.PelletsSpawned,
		"pellets_eaten", s.PelletsEaten,
		"energy_mean", s.EnergyMean,
		"energy_p50", s.EnergyP50,
		"index_nodes", s.IndexNodes,
		"index_max_depth", s.IndexMaxDepth,
		"occupancy_mean", s.OccupancyMean,
		"occupancy_max", s.OccupancyMax,
		"root_growth", s.RootGrowth,
	)
}
