package quadtree

import (
	"slices"

	"github.com/pthm-cable/quadsoup/geometry"
)

// Item is anything the index can store. Location may change between calls,
// but only from inside a ForEachMutable action; the index notices the move
// when that traversal settles.
//
// Items are shared: the index holds one reference and removing an item from
// the index never affects other holders.
type Item interface {
	Location() geometry.Point
	CollisionShape() geometry.Circle
}

// Kind tags an item with its concrete type so queries can narrow a visit
// without probing every item's dynamic type.
type Kind uint16

// KindNone is reported for items that carry no kind tag.
const KindNone Kind = 0

// Kinded is implemented by items that carry a kind tag.
type Kinded interface {
	Item
	Kind() Kind
}

// KindOf returns the item's kind tag, or KindNone if it has none.
func KindOf(item Item) Kind {
	if k, ok := item.(Kinded); ok {
		return k.Kind()
	}
	return KindNone
}

// OfKind returns a filter accepting items tagged with any of kinds.
func OfKind(kinds ...Kind) ItemFilter {
	if len(kinds) == 1 {
		want := kinds[0]
		return func(item Item) bool { return KindOf(item) == want }
	}
	set := slices.Clone(kinds)
	return func(item Item) bool { return slices.Contains(set, KindOf(item)) }
}

// ForKind adapts a typed action into an Action that only runs for items
// tagged kind. The narrowing conversion happens after the tag matched, so
// items of other kinds cost a single method call.
func ForKind[T Item](kind Kind, action func(T)) Action {
	return func(item Item) {
		if KindOf(item) != kind {
			return
		}
		if v, ok := item.(T); ok {
			action(v)
		}
	}
}

// WhereKind adapts a typed predicate into an ItemFilter that rejects items of
// other kinds.
func WhereKind[T Item](kind Kind, pred func(T) bool) ItemFilter {
	return func(item Item) bool {
		if KindOf(item) != kind {
			return false
		}
		v, ok := item.(T)
		return ok && pred(v)
	}
}
