// Package systems provides ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/config"
	"github.com/pthm-cable/quadsoup/geometry"
	"github.com/pthm-cable/quadsoup/quadtree"
)

// SpatialItem is the index's view of an entity. Its location is read from
// the ECS world on every call, so moving an entity only means writing its
// Position from inside a mutable traversal.
type SpatialItem struct {
	Entity ecs.Entity
	kind   quadtree.Kind
	radius float64
	pos    *ecs.Map1[components.Position]
}

// Location implements quadtree.Item.
func (s *SpatialItem) Location() geometry.Point {
	p := s.pos.Get(s.Entity)
	return geometry.Point{X: p.X, Y: p.Y}
}

// CollisionShape implements quadtree.Item.
func (s *SpatialItem) CollisionShape() geometry.Circle {
	p := s.pos.Get(s.Entity)
	return geometry.Circle{X: p.X, Y: p.Y, R: s.radius}
}

// Kind implements quadtree.Kinded.
func (s *SpatialItem) Kind() quadtree.Kind { return s.kind }

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	Item   *SpatialItem
	DX, DY float64 // delta from the query origin
	DistSq float64
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
// This prevents density spikes from causing unbounded work.
const MaxQueryResults = 128

// Spatial owns the quadtree index holding every entity and the bookkeeping
// that keeps the index and the ECS world in step.
type Spatial struct {
	world  *ecs.World
	index  *quadtree.Index
	pos    *ecs.Map1[components.Position]
	energy *ecs.Map1[components.Energy]
	body   *ecs.Map1[components.Body]

	counts    map[quadtree.Kind]int
	graveyard []ecs.Entity
	neighbors []Neighbor
}

// NewSpatial creates an index covering region with the configured tuning.
func NewSpatial(w *ecs.World, cfg config.IndexConfig, region geometry.Rect) *Spatial {
	return &Spatial{
		world:  w,
		index:  quadtree.New(region, cfg.ItemCountTarget, cfg.ItemCountLeeway, cfg.MinNodeDiameter),
		pos:    ecs.NewMap1[components.Position](w),
		energy: ecs.NewMap1[components.Energy](w),
		body:   ecs.NewMap1[components.Body](w),
		counts: make(map[quadtree.Kind]int),
	}
}

// Index returns the underlying quadtree.
func (s *Spatial) Index() *quadtree.Index { return s.index }

// Count returns how many live entities of kind are indexed.
func (s *Spatial) Count(kind quadtree.Kind) int { return s.counts[kind] }

// Position returns the location of e.
func (s *Spatial) Position(e ecs.Entity) geometry.Point {
	p := s.pos.Get(e)
	return geometry.Point{X: p.X, Y: p.Y}
}

// Radius returns the collision radius of e.
func (s *Spatial) Radius(e ecs.Entity) float64 {
	return s.body.Get(e).Radius
}

// Track inserts an existing entity into the index. During a mutable
// traversal the entity becomes visible once the traversal settles.
func (s *Spatial) Track(e ecs.Entity, kind quadtree.Kind, radius float64) *SpatialItem {
	item := &SpatialItem{Entity: e, kind: kind, radius: radius, pos: s.pos}
	s.index.Insert(item)
	s.counts[kind]++
	return item
}

// Reap is a removal predicate for mutable traversals. It drops entities whose
// Energy is no longer alive and remembers them for Bury.
func (s *Spatial) Reap(item quadtree.Item) bool {
	si := item.(*SpatialItem)
	if s.energy.Get(si.Entity).Alive {
		return false
	}
	s.graveyard = append(s.graveyard, si.Entity)
	s.counts[si.kind]--
	return true
}

// Bury removes every entity reaped since the last call from the world and
// returns how many there were. Call it outside any traversal.
func (s *Spatial) Bury() int {
	n := len(s.graveyard)
	for _, e := range s.graveyard {
		s.world.RemoveEntity(e)
	}
	clear(s.graveyard)
	s.graveyard = s.graveyard[:0]
	return n
}

// NeighborsInto finds entities of kind whose collision circle touches the
// circle of radius around center, skipping exclude, and appends them to dst
// (up to MaxQueryResults). Reuse dst across calls to avoid allocations.
func (s *Spatial) NeighborsInto(dst []Neighbor, center geometry.Point, radius float64, kind quadtree.Kind, exclude ecs.Entity) []Neighbor {
	area := geometry.Circle{X: center.X, Y: center.Y, R: radius}
	q := quadtree.NewQuery(func(item quadtree.Item) {
		si := item.(*SpatialItem)
		if si.Entity == exclude || len(dst) >= MaxQueryResults {
			return
		}
		p := si.Location()
		dx, dy := p.X-center.X, p.Y-center.Y
		dst = append(dst, Neighbor{Item: si, DX: dx, DY: dy, DistSq: dx*dx + dy*dy})
	}).Colliding(area, s.index.Reach()).Kinds(kind)

	s.index.ForEachConst(q)
	return dst
}

// Nearest returns the closest neighbor of kind within radius of center, or
// false when there is none.
func (s *Spatial) Nearest(center geometry.Point, radius float64, kind quadtree.Kind, exclude ecs.Entity) (Neighbor, bool) {
	s.neighbors = s.NeighborsInto(s.neighbors[:0], center, radius, kind, exclude)
	if len(s.neighbors) == 0 {
		return Neighbor{}, false
	}
	best := s.neighbors[0]
	for _, n := range s.neighbors[1:] {
		if n.DistSq < best.DistSq {
			best = n
		}
	}
	return best, true
}
