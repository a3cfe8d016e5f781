package game

import (
	"log/slog"

	"github.com/pthm-cable/quadsoup/components"
)

// spawnInitialPopulation places dispensers, grazers and the starting pellets.
func (g *Game) spawnInitialPopulation() {
	pop := g.cfg.Population
	w, h := g.cfg.Derived.WorldW, g.cfg.Derived.WorldH

	// Keep dispensers far enough from the border that most of their spread
	// lands inside the world.
	inset := min(g.cfg.Dispenser.Spread, w/4, h/4)
	for range pop.Dispensers {
		x := inset + g.rng.Float64()*(w-2*inset)
		y := inset + g.rng.Float64()*(h-2*inset)
		g.factory.Dispenser(x, y)
	}

	for range pop.Grazers {
		g.factory.Grazer(g.rng.Float64()*w, g.rng.Float64()*h, g.cfg.Grazer.InitialEnergy)
	}

	for range pop.InitPellets {
		g.factory.Pellet(g.rng.Float64()*w, g.rng.Float64()*h)
	}

	slog.Info("population spawned",
		"grazers", pop.Grazers,
		"dispensers", pop.Dispensers,
		"pellets", pop.InitPellets,
		"index_nodes", g.Index().Stats().Nodes,
	)
}

// respawn tops the grazer population back up to the configured floor.
// Must be called outside index traversals.
func (g *Game) respawn() int {
	floor := g.cfg.Population.MinGrazers
	n := 0
	for g.spatial.Count(components.KindGrazer) < floor {
		x := g.rng.Float64() * g.cfg.Derived.WorldW
		y := g.rng.Float64() * g.cfg.Derived.WorldH
		g.factory.Grazer(x, y, g.cfg.Grazer.InitialEnergy)
		n++
	}
	return n
}
