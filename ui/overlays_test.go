package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	if reg.IsEnabled(OverlayPartition) {
		t.Fatal("overlays should start disabled")
	}
	if !reg.Toggle(OverlayPartition) {
		t.Error("Toggle should report the new enabled state")
	}
	if reg.Toggle(OverlayPartition) {
		t.Error("second Toggle should disable")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.SetEnabled(OverlayPartition, true)
	reg.SetEnabled(OverlayRootRegion, true)

	if reg.IsEnabled(OverlayPartition) {
		t.Error("enabling root region should disable partition")
	}
	got := reg.EnabledOverlays()
	if len(got) != 1 || got[0] != OverlayRootRegion {
		t.Errorf("EnabledOverlays() = %v, want [%s]", got, OverlayRootRegion)
	}
}

func TestOverlayKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyQ)
	if !ok || id != OverlaySensing || !on {
		t.Errorf("HandleKeyPress(Q) = %q, %v, %v", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key toggled an overlay")
	}

	seen := map[int32]OverlayID{}
	for _, desc := range reg.All() {
		if prev, dup := seen[desc.Key]; dup {
			t.Errorf("key %s bound to both %s and %s", desc.KeyLabel, prev, desc.ID)
		}
		seen[desc.Key] = desc.ID
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()
	cats := reg.Categories()
	want := []string{"index", "query", "debug"}
	if len(cats) != len(want) {
		t.Fatalf("Categories() = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, cats[i], want[i])
		}
	}
	if n := len(reg.ByCategory("index")); n != 2 {
		t.Errorf("index category has %d overlays, want 2", n)
	}
}
