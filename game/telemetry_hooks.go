package game

import (
	"log/slog"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/telemetry"
)

// flushTelemetry closes the current stats window and sends it to every sink.
func (g *Game) flushTelemetry() {
	g.energies = g.energies[:0]
	query := g.sampleFilter.Query()
	for query.Next() {
		sp, en := query.Get()
		if sp.Kind == components.KindGrazer && en.Alive {
			g.energies = append(g.energies, en.Value)
		}
	}

	index := g.Index()
	stats := g.collector.Flush(
		g.tick,
		telemetry.Population{
			Grazers:    g.spatial.Count(components.KindGrazer),
			Pellets:    g.spatial.Count(components.KindPellet),
			Dispensers: g.spatial.Count(components.KindDispenser),
		},
		g.energies,
		index.Stats(),
		index.Reach(),
	)
	perf := g.perfCollector.Stats()

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perf, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	if g.logStats {
		stats.LogStats()
		perf.LogStats()
	}

	if g.history != nil {
		g.history.Update(stats)
	}

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}
}
