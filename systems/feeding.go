package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/config"
	"github.com/pthm-cable/quadsoup/quadtree"
)

// FeedingSystem lets grazers eat pellets they touch, burns their energy and
// splits well-fed grazers in two. Eaten and starved entities leave the index
// when the traversal settles; call Spatial.Bury afterwards to free them.
type FeedingSystem struct {
	cfg        config.GrazerConfig
	dt         float64
	maxGrazers int

	spatial *Spatial
	factory *Factory
	energy  *ecs.Map1[components.Energy]
	pos     *ecs.Map1[components.Position]

	eater  *components.Energy
	action quadtree.Action
	bite   quadtree.Action

	// Per-tick counters, reset by Update.
	Eaten   int
	Starved int
	Births  int
}

// NewFeedingSystem creates a feeding system.
func NewFeedingSystem(w *ecs.World, spatial *Spatial, factory *Factory, cfg *config.Config) *FeedingSystem {
	s := &FeedingSystem{
		cfg:        cfg.Grazer,
		dt:         cfg.Physics.DT,
		maxGrazers: cfg.Population.MaxGrazers,
		spatial:    spatial,
		factory:    factory,
		energy:     ecs.NewMap1[components.Energy](w),
		pos:        ecs.NewMap1[components.Position](w),
	}
	s.action = quadtree.ForKind(components.KindGrazer, s.feed)
	s.bite = quadtree.ForKind(components.KindPellet, s.eat)
	return s
}

// Update runs one feeding tick.
func (s *FeedingSystem) Update() {
	s.Eaten, s.Starved, s.Births = 0, 0, 0
	q := quadtree.NewMutableQuery(s.action).RemoveWhen(s.spatial.Reap)
	s.spatial.Index().ForEachMutable(q)
}

func (s *FeedingSystem) feed(g *SpatialItem) {
	en := s.energy.Get(g.Entity)
	if !en.Alive {
		return
	}

	s.eater = en
	s.spatial.Index().ForEachColliding(g.CollisionShape(), s.bite)
	s.eater = nil

	en.Age += s.dt
	en.Value -= s.cfg.Metabolism * s.dt
	if en.Value <= 0 {
		en.Value = 0
		en.Alive = false
		s.Starved++
		return
	}

	if en.Value >= s.cfg.BirthEnergy && s.spatial.Count(components.KindGrazer) < s.maxGrazers {
		s.split(g)
	}
}

// eat consumes a pellet touching the current eater.
func (s *FeedingSystem) eat(p *SpatialItem) {
	food := s.energy.Get(p.Entity)
	if !food.Alive || s.eater.Value >= s.eater.Max {
		return
	}
	food.Alive = false
	s.eater.Value = min(s.eater.Value+food.Value, s.eater.Max)
	s.Eaten++
}

// split halves the parent's energy and spawns the child beside it.
func (s *FeedingSystem) split(g *SpatialItem) {
	en := s.energy.Get(g.Entity)
	half := en.Value / 2
	en.Value = half

	pos := s.pos.Get(g.Entity)
	x, y := s.factory.Scatter(pos.X, pos.Y, s.cfg.SpawnOffset)
	s.factory.Grazer(x, y, half)
	s.Births++
}
