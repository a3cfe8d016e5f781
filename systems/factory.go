package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/config"
)

// Factory creates entities and registers them with the spatial index.
// Spawning is legal from inside a mutable traversal: the new entity is
// staged by the index and joins the next traversal.
type Factory struct {
	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Species,
		components.Energy,
	]
	spatial *Spatial
	rng     *rand.Rand

	grazer    config.GrazerConfig
	dispenser config.DispenserConfig
}

// NewFactory creates an entity factory.
func NewFactory(w *ecs.World, spatial *Spatial, cfg *config.Config, rng *rand.Rand) *Factory {
	return &Factory{
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Species,
			components.Energy,
		](w),
		spatial:   spatial,
		rng:       rng,
		grazer:    cfg.Grazer,
		dispenser: cfg.Dispenser,
	}
}

// Grazer spawns a grazer at (x, y) with the given energy.
func (f *Factory) Grazer(x, y, energy float64) ecs.Entity {
	heading := f.rng.Float64() * 2 * math.Pi
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: math.Cos(heading), Y: math.Sin(heading)}
	body := components.Body{Radius: f.grazer.Radius}
	species := components.Species{Kind: components.KindGrazer}
	en := components.Energy{Value: energy, Max: f.grazer.MaxEnergy, Alive: true}

	e := f.mapper.NewEntity(&pos, &vel, &body, &species, &en)
	f.spatial.Track(e, components.KindGrazer, body.Radius)
	return e
}

// Pellet spawns a food pellet at (x, y).
func (f *Factory) Pellet(x, y float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{Radius: f.dispenser.PelletRadius}
	species := components.Species{Kind: components.KindPellet}
	en := components.Energy{Value: f.grazer.PelletEnergy, Max: f.grazer.PelletEnergy, Alive: true}

	e := f.mapper.NewEntity(&pos, &vel, &body, &species, &en)
	f.spatial.Track(e, components.KindPellet, body.Radius)
	return e
}

// Dispenser spawns a static pellet source at (x, y). Its energy value is the
// fractional pellet backlog; a random start desyncs dispensers.
func (f *Factory) Dispenser(x, y float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{Radius: f.dispenser.Radius}
	species := components.Species{Kind: components.KindDispenser}
	en := components.Energy{Value: f.rng.Float64(), Max: 1, Alive: true}

	e := f.mapper.NewEntity(&pos, &vel, &body, &species, &en)
	f.spatial.Track(e, components.KindDispenser, body.Radius)
	return e
}

// Scatter returns a point uniformly distributed in the disc of radius r
// around (x, y).
func (f *Factory) Scatter(x, y, r float64) (float64, float64) {
	angle := f.rng.Float64() * 2 * math.Pi
	dist := r * math.Sqrt(f.rng.Float64())
	return x + math.Cos(angle)*dist, y + math.Sin(angle)*dist
}
