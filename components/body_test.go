package components

import (
	"testing"

	"github.com/pthm-cable/quadsoup/quadtree"
)

func TestEnergyFraction(t *testing.T) {
	tests := []struct {
		name string
		e    Energy
		want float64
	}{
		{"half", Energy{Value: 50, Max: 100}, 0.5},
		{"full", Energy{Value: 100, Max: 100}, 1},
		{"no capacity", Energy{Value: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Fraction(); got != tt.want {
				t.Errorf("Fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindNamesDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range []quadtree.Kind{KindGrazer, KindPellet, KindDispenser} {
		name := KindName(k)
		if seen[name] || name == "none" {
			t.Errorf("kind %d has duplicate or missing name %q", k, name)
		}
		seen[name] = true
	}
}
