package telemetry

import (
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/quadsoup/quadtree"
)

// Phase names for the simulation step.
const (
	PhaseMovement   = "movement"
	PhaseFeeding    = "feeding"
	PhaseDispensers = "dispensers"
	PhaseCleanup    = "cleanup"
	PhaseTelemetry  = "telemetry"
)

var phaseNames = [...]string{
	PhaseMovement, PhaseFeeding, PhaseDispensers, PhaseCleanup, PhaseTelemetry,
}

// Phases lists every phase in step order.
var Phases = phaseNames[:]

// perfSample is one tick: phase timings plus what the index did during it.
type perfSample struct {
	tick   time.Duration
	phases [len(phaseNames)]time.Duration
	index  quadtree.Work
}

// PerfCollector times the phases of each tick over a rolling window. The
// index's own settle and rebalance time is taken from its Work totals, so it
// is reported on its own and also counted inside whichever phase ran the
// traversal.
type PerfCollector struct {
	window []perfSample
	next   int
	filled int

	cur        perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into Phases, -1 outside a phase
	workStart  quadtree.Work

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		window: make([]perfSample, windowSize),
		phase:  -1,
	}
}

// StartTick begins a tick. work is the index's running total at this point.
func (p *PerfCollector) StartTick(work quadtree.Work) {
	p.cur = perfSample{}
	p.phase = -1
	p.workStart = work
	p.tickStart = time.Now()
}

// StartPhase closes the running phase, if any, and starts timing name.
// Unknown names are ignored.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseIndex(name)
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = -1
}

func phaseIndex(name string) int {
	for i, ph := range phaseNames {
		if ph == name {
			return i
		}
	}
	return -1
}

// EndTick records the tick. work is the index's running total at this point.
func (p *PerfCollector) EndTick(work quadtree.Work) {
	now := time.Now()
	p.closePhase(now)
	p.cur.tick = now.Sub(p.tickStart)
	p.cur.index = work.Sub(p.workStart)

	p.window[p.next] = p.cur
	p.next = (p.next + 1) % len(p.window)
	p.filled = min(p.filled+1, len(p.window))
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// IndexPerf is the per-tick average of the index's restructuring work.
type IndexPerf struct {
	SettleAvg    time.Duration
	RebalanceAvg time.Duration
	SettlePct    float64 // of the average tick
	RebalancePct float64

	RehomedPerTick   float64
	SplitsPerTick    float64
	CollapsesPerTick float64
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	// Keyed by phase name
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	Index IndexPerf

	// Graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, len(Phases)),
		PhasePct:      make(map[string]float64, len(Phases)),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total perfSample
	s.MinTickDuration = time.Duration(math.MaxInt64)
	for _, sample := range p.window[:p.filled] {
		total.tick += sample.tick
		s.MinTickDuration = min(s.MinTickDuration, sample.tick)
		s.MaxTickDuration = max(s.MaxTickDuration, sample.tick)
		for i := range phaseNames {
			total.phases[i] += sample.phases[i]
		}
		total.index = addWork(total.index, sample.index)
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = total.tick / n
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	pct := func(d time.Duration) float64 {
		if s.AvgTickDuration <= 0 {
			return 0
		}
		return float64(d) / float64(s.AvgTickDuration) * 100
	}

	for i, name := range phaseNames {
		if total.phases[i] == 0 {
			continue
		}
		s.PhaseAvg[name] = total.phases[i] / n
		s.PhasePct[name] = pct(s.PhaseAvg[name])
	}

	ticks := float64(p.filled)
	s.Index = IndexPerf{
		SettleAvg:        total.index.SettleTime / n,
		RebalanceAvg:     total.index.RebalanceTime / n,
		RehomedPerTick:   float64(total.index.Rehomed) / ticks,
		SplitsPerTick:    float64(total.index.Splits) / ticks,
		CollapsesPerTick: float64(total.index.Collapses) / ticks,
	}
	s.Index.SettlePct = pct(s.Index.SettleAvg)
	s.Index.RebalancePct = pct(s.Index.RebalanceAvg)
	return s
}

func addWork(a, b quadtree.Work) quadtree.Work {
	return quadtree.Work{
		Settles:       a.Settles + b.Settles,
		SettleTime:    a.SettleTime + b.SettleTime,
		Rebalances:    a.Rebalances + b.Rebalances,
		RebalanceTime: a.RebalanceTime + b.RebalanceTime,
		Splits:        a.Splits + b.Splits,
		Collapses:     a.Collapses + b.Collapses,
		Rehomed:       a.Rehomed + b.Rehomed,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range phaseNames {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", math.Round(pct*10)/10))
		}
	}
	attrs = append(attrs,
		slog.Float64("settle_pct", math.Round(s.Index.SettlePct*10)/10),
		slog.Float64("rebalance_pct", math.Round(s.Index.RebalancePct*10)/10),
		slog.Float64("rehomed_per_tick", s.Index.RehomedPerTick),
		slog.Float64("splits_per_tick", s.Index.SplitsPerTick),
		slog.Float64("collapses_per_tick", s.Index.CollapsesPerTick),
	)
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	MovementPct   float64 `csv:"movement_pct"`
	FeedingPct    float64 `csv:"feeding_pct"`
	DispensersPct float64 `csv:"dispensers_pct"`
	CleanupPct    float64 `csv:"cleanup_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`

	SettleUS         int64   `csv:"index_settle_us"`
	RebalanceUS      int64   `csv:"index_rebalance_us"`
	SettlePct        float64 `csv:"index_settle_pct"`
	RebalancePct     float64 `csv:"index_rebalance_pct"`
	RehomedPerTick   float64 `csv:"index_rehomed_per_tick"`
	SplitsPerTick    float64 `csv:"index_splits_per_tick"`
	CollapsesPerTick float64 `csv:"index_collapses_per_tick"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		MovementPct:   s.PhasePct[PhaseMovement],
		FeedingPct:    s.PhasePct[PhaseFeeding],
		DispensersPct: s.PhasePct[PhaseDispensers],
		CleanupPct:    s.PhasePct[PhaseCleanup],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],

		SettleUS:         s.Index.SettleAvg.Microseconds(),
		RebalanceUS:      s.Index.RebalanceAvg.Microseconds(),
		SettlePct:        s.Index.SettlePct,
		RebalancePct:     s.Index.RebalancePct,
		RehomedPerTick:   s.Index.RehomedPerTick,
		SplitsPerTick:    s.Index.SplitsPerTick,
		CollapsesPerTick: s.Index.CollapsesPerTick,
	}
}
