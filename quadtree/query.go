package quadtree

import "github.com/pthm-cable/quadsoup/geometry"

// Action is run for each item a traversal visits.
type Action func(item Item)

// ItemFilter is an exact per-item predicate.
type ItemFilter func(item Item) bool

// RegionFilter decides whether a node's region (and everything below it) is
// worth visiting. It only prunes, so it may be conservative.
type RegionFilter func(region geometry.Rect) bool

// Query bundles what a read-only traversal does and which items it visits.
// Nil filters accept everything.
type Query struct {
	Action Action
	Region RegionFilter
	Filter ItemFilter
}

// NewQuery returns a query running action on every item.
func NewQuery(action Action) Query {
	return Query{Action: action}
}

// InRegion prunes nodes whose region does not collide with shape.
func (q Query) InRegion(shape geometry.Shape) Query {
	q.Region = RegionCollides(shape)
	return q
}

// WithRegionFilter replaces the region filter.
func (q Query) WithRegionFilter(f RegionFilter) Query {
	q.Region = f
	return q
}

// Where adds an item filter; an item must pass every filter added.
func (q Query) Where(f ItemFilter) Query {
	q.Filter = And(q.Filter, f)
	return q
}

// Kinds restricts the query to items tagged with one of kinds.
func (q Query) Kinds(kinds ...Kind) Query {
	return q.Where(OfKind(kinds...))
}

// Colliding restricts the query to items whose collision shape collides with
// shape. Items are stored by location while their collision circle may poke
// into neighbouring nodes, so region pruning is widened by reach, the largest
// collision radius expected.
func (q Query) Colliding(shape geometry.Shape, reach float64) Query {
	q.Region = RegionCollides(shape.Bounds().Expand(reach))
	return q.Where(ItemCollides(shape))
}

// MutableQuery is a Query for ForEachMutable, which can also drop items.
type MutableQuery struct {
	Query
	Remove ItemFilter
}

// NewMutableQuery returns a mutable query running action on every item.
func NewMutableQuery(action Action) MutableQuery {
	return MutableQuery{Query: NewQuery(action)}
}

// RemoveWhen drops every item matching pred once the traversal's actions
// have run, whether or not the item was visited. pred must not modify the
// index.
func (q MutableQuery) RemoveWhen(pred ItemFilter) MutableQuery {
	q.Remove = pred
	return q
}

// InRegion is Query.InRegion for mutable queries.
func (q MutableQuery) InRegion(shape geometry.Shape) MutableQuery {
	q.Query = q.Query.InRegion(shape)
	return q
}

// Where is Query.Where for mutable queries.
func (q MutableQuery) Where(f ItemFilter) MutableQuery {
	q.Query = q.Query.Where(f)
	return q
}

// Kinds is Query.Kinds for mutable queries.
func (q MutableQuery) Kinds(kinds ...Kind) MutableQuery {
	q.Query = q.Query.Kinds(kinds...)
	return q
}

// Colliding is Query.Colliding for mutable queries.
func (q MutableQuery) Colliding(shape geometry.Shape, reach float64) MutableQuery {
	q.Query = q.Query.Colliding(shape, reach)
	return q
}

// RegionCollides returns a region filter accepting regions that collide
// with shape.
func RegionCollides(shape geometry.Shape) RegionFilter {
	return func(region geometry.Rect) bool {
		return geometry.Collides(shape, region)
	}
}

// ItemCollides returns a filter accepting items whose collision shape
// collides with shape.
func ItemCollides(shape geometry.Shape) ItemFilter {
	return func(item Item) bool {
		return geometry.Collides(shape, item.CollisionShape())
	}
}

// ItemAt returns a filter accepting items located exactly at p.
func ItemAt(p geometry.Point) ItemFilter {
	return func(item Item) bool { return item.Location() == p }
}

// ItemWithin returns a filter accepting items located inside r.
func ItemWithin(r geometry.Rect) ItemFilter {
	return func(item Item) bool {
		return geometry.Contains(r, item.Location())
	}
}

// And combines filters; nil filters are skipped.
func And(a, b ItemFilter) ItemFilter {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(item Item) bool { return a(item) && b(item) }
}

// Not inverts f.
func Not(f ItemFilter) ItemFilter {
	return func(item Item) bool { return !f(item) }
}
