// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/quadsoup/quadtree"

// Kind tags of the entities the soup indexes.
const (
	KindGrazer quadtree.Kind = iota + 1
	KindPellet
	KindDispenser
)

// KindName returns a short label for logging and CSV columns.
func KindName(k quadtree.Kind) string {
	switch k {
	case KindGrazer:
		return "grazer"
	case KindPellet:
		return "pellet"
	case KindDispenser:
		return "dispenser"
	}
	return "none"
}

// Position represents an entity's world position.
type Position struct {
	X, Y float64 `inspect:"label,fmt:%.0f"`
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	X, Y float64 `inspect:"label,fmt:%.1f"`
}

// Body holds physical properties of an entity.
type Body struct {
	Radius float64 `inspect:"label,fmt:%.1f"`
}

// Species tags an entity with the index kind it is stored under.
type Species struct {
	Kind quadtree.Kind `inspect:"skip"`
}

// Energy tracks an entity's metabolic state. Pellets carry the energy a
// grazer gains by eating them; dispensers use Value as their spawn timer.
type Energy struct {
	Value float64 `inspect:"label,fmt:%.1f"`
	Max   float64 `inspect:"label,fmt:%.0f"`
	Age   float64 `inspect:"label,fmt:%.1fs"` // seconds alive
	Alive bool    `inspect:"bool"`
}

// Fraction returns Value/Max, or 0 when Max is unset.
func (e *Energy) Fraction() float64 {
	if e.Max <= 0 {
		return 0
	}
	return e.Value / e.Max
}
