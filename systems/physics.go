package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/config"
	"github.com/pthm-cable/quadsoup/geometry"
	"github.com/pthm-cable/quadsoup/quadtree"
)

// MovementSystem steers and moves grazers. It runs as one mutable traversal
// over the index, so entities that cross node boundaries are re-homed when
// the traversal settles.
type MovementSystem struct {
	cfg     config.MovementConfig
	dt      float64
	center  geometry.Point
	sense   float64
	spatial *Spatial
	rng     *rand.Rand

	pos *ecs.Map1[components.Position]
	vel *ecs.Map1[components.Velocity]

	action quadtree.Action
}

// NewMovementSystem creates a movement system. Grazers drift towards center
// and turn towards pellets within sense.
func NewMovementSystem(w *ecs.World, spatial *Spatial, cfg *config.Config, center geometry.Point, rng *rand.Rand) *MovementSystem {
	s := &MovementSystem{
		cfg:     cfg.Movement,
		dt:      cfg.Physics.DT,
		center:  center,
		sense:   cfg.Grazer.Radius * 8,
		spatial: spatial,
		rng:     rng,
		pos:     ecs.NewMap1[components.Position](w),
		vel:     ecs.NewMap1[components.Velocity](w),
	}
	s.action = quadtree.ForKind(components.KindGrazer, s.move)
	return s
}

// SenseRadius is how far a grazer looks for pellets.
func (s *MovementSystem) SenseRadius() float64 { return s.sense }

// Update moves every grazer by one tick.
func (s *MovementSystem) Update() {
	s.spatial.Index().ForEachMutable(quadtree.NewMutableQuery(s.action))
}

func (s *MovementSystem) move(g *SpatialItem) {
	pos := s.pos.Get(g.Entity)
	vel := s.vel.Get(g.Entity)
	dt := s.dt

	// Random wander
	ax := (s.rng.Float64()*2 - 1) * s.cfg.Jitter
	ay := (s.rng.Float64()*2 - 1) * s.cfg.Jitter

	// Weak spring towards the centre keeps the soup from diffusing forever
	ax += (s.center.X - pos.X) * s.cfg.CenterPull
	ay += (s.center.Y - pos.Y) * s.cfg.CenterPull

	// Head for food in sensing range
	if n, ok := s.spatial.Nearest(geometry.Point{X: pos.X, Y: pos.Y}, s.sense, components.KindPellet, g.Entity); ok && n.DistSq > 0 {
		d := math.Sqrt(n.DistSq)
		ax += n.DX / d * s.cfg.Jitter
		ay += n.DY / d * s.cfg.Jitter
	}

	vel.X += ax * dt
	vel.Y += ay * dt

	// Drag is the fraction of velocity kept per second
	keep := math.Pow(s.cfg.Drag, dt)
	vel.X *= keep
	vel.Y *= keep

	limitSpeed(vel, s.cfg.MaxSpeed)

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
}

// limitSpeed scales vel down to at most maxSpeed.
func limitSpeed(vel *components.Velocity, maxSpeed float64) {
	speedSq := vel.X*vel.X + vel.Y*vel.Y
	if speedSq <= maxSpeed*maxSpeed || speedSq == 0 {
		return
	}
	scale := maxSpeed / math.Sqrt(speedSq)
	vel.X *= scale
	vel.Y *= scale
}
