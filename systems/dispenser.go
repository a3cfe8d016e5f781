package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/config"
	"github.com/pthm-cable/quadsoup/quadtree"
)

// DispenserSystem makes dispensers emit pellets at a steady rate. A
// dispenser's Energy.Value holds its fractional backlog of pellets.
type DispenserSystem struct {
	cfg        config.DispenserConfig
	dt         float64
	maxPellets int

	spatial *Spatial
	factory *Factory
	energy  *ecs.Map1[components.Energy]
	pos     *ecs.Map1[components.Position]

	action quadtree.Action

	// Spawned counts pellets emitted by the last Update.
	Spawned int
}

// NewDispenserSystem creates a dispenser system.
func NewDispenserSystem(w *ecs.World, spatial *Spatial, factory *Factory, cfg *config.Config) *DispenserSystem {
	s := &DispenserSystem{
		cfg:        cfg.Dispenser,
		dt:         cfg.Physics.DT,
		maxPellets: cfg.Population.MaxPellets,
		spatial:    spatial,
		factory:    factory,
		energy:     ecs.NewMap1[components.Energy](w),
		pos:        ecs.NewMap1[components.Position](w),
	}
	s.action = quadtree.ForKind(components.KindDispenser, s.emit)
	return s
}

// Update runs one dispenser tick.
func (s *DispenserSystem) Update() {
	s.Spawned = 0
	s.spatial.Index().ForEachMutable(quadtree.NewMutableQuery(s.action))
}

func (s *DispenserSystem) emit(d *SpatialItem) {
	en := s.energy.Get(d.Entity)
	en.Value += s.cfg.Rate * s.dt
	if en.Value < 1 {
		return
	}

	pos := *s.pos.Get(d.Entity)
	n := int(en.Value)
	en.Value -= float64(n)

	// Entity creation may move component storage; en is not used past here.
	for range n {
		if s.spatial.Count(components.KindPellet) >= s.maxPellets {
			return
		}
		x, y := s.factory.Scatter(pos.X, pos.Y, s.cfg.Spread)
		s.factory.Pellet(x, y)
		s.Spawned++
	}
}
