package game

import "github.com/pthm-cable/quadsoup/telemetry"

// simulationStep advances the soup by one tick.
func (g *Game) simulationStep() {
	perf := g.perfCollector
	perf.StartTick(g.Index().Work())

	// Integrate motion. Grazers that cross a node boundary are re-homed when
	// the traversal settles.
	perf.StartPhase(telemetry.PhaseMovement)
	g.movement.Update()

	// Eat, starve and split
	perf.StartPhase(telemetry.PhaseFeeding)
	g.feeding.Update()

	// Emit pellets
	perf.StartPhase(telemetry.PhaseDispensers)
	g.dispensers.Update()

	// Remove reaped entities from the world and top up the population
	perf.StartPhase(telemetry.PhaseCleanup)
	g.spatial.Bury()
	g.respawned = g.respawn()

	perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(telemetry.TickCounts{
		Births:         g.feeding.Births,
		Starved:        g.feeding.Starved,
		Respawned:      g.respawned,
		PelletsSpawned: g.dispensers.Spawned,
		PelletsEaten:   g.feeding.Eaten,
	})
	g.tick++
	if g.collector.ShouldFlush(g.tick) {
		g.flushTelemetry()
	}

	perf.EndTick(g.Index().Work())
}
