package telemetry

import "github.com/pthm-cable/quadsoup/quadtree"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births         int
	starved        int
	respawned      int
	pelletsSpawned int
	pelletsEaten   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// TickCounts are the events of a single tick.
type TickCounts struct {
	Births         int
	Starved        int
	Respawned      int
	PelletsSpawned int
	PelletsEaten   int
}

// Record adds one tick's events to the current window.
func (c *Collector) Record(tc TickCounts) {
	c.births += tc.Births
	c.starved += tc.Starved
	c.respawned += tc.Respawned
	c.pelletsSpawned += tc.PelletsSpawned
	c.pelletsEaten += tc.PelletsEaten
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Population holds the entity counts sampled at window end.
type Population struct {
	Grazers    int
	Pellets    int
	Dispensers int
}

// Flush produces a WindowStats and resets counters for the next window.
// energies are the grazer energy values used for the percentiles; idx and
// reach describe the spatial index at window end.
func (c *Collector) Flush(
	currentTick int32,
	pop Population,
	energies []float64,
	idx quadtree.Stats,
	reach float64,
) WindowStats {
	mean, p10, p50, p90 := ComputeEnergyStats(energies)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Grazers:    pop.Grazers,
		Pellets:    pop.Pellets,
		Dispensers: pop.Dispensers,

		Births:         c.births,
		Starved:        c.starved,
		Respawned:      c.respawned,
		PelletsSpawned: c.pelletsSpawned,
		PelletsEaten:   c.pelletsEaten,

		EnergyMean: mean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,
	}
	stats.setIndex(idx, reach)

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.starved = 0
	c.respawned = 0
	c.pelletsSpawned = 0
	c.pelletsEaten = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
