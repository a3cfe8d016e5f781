package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsParse(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Index.ItemCountTarget <= 0 {
		t.Errorf("item_count_target = %d, want > 0", cfg.Index.ItemCountTarget)
	}
	if cfg.Index.ItemCountLeeway > cfg.Index.ItemCountTarget {
		t.Errorf("item_count_leeway %d exceeds target %d", cfg.Index.ItemCountLeeway, cfg.Index.ItemCountTarget)
	}
	if cfg.Physics.DT <= 0 {
		t.Errorf("dt = %v, want > 0", cfg.Physics.DT)
	}
	if cfg.Grazer.BirthEnergy > cfg.Grazer.MaxEnergy {
		t.Errorf("birth_energy %v unreachable with max_energy %v", cfg.Grazer.BirthEnergy, cfg.Grazer.MaxEnergy)
	}
	if cfg.Derived.MaxRadius != cfg.Dispenser.Radius {
		t.Errorf("Derived.MaxRadius = %v, want dispenser radius %v", cfg.Derived.MaxRadius, cfg.Dispenser.Radius)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("index:\n  item_count_target: 3\nworld:\n  width: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	defaults, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Index.ItemCountTarget != 3 {
		t.Errorf("item_count_target = %d, want 3", cfg.Index.ItemCountTarget)
	}
	if cfg.Index.ItemCountLeeway != defaults.Index.ItemCountLeeway {
		t.Errorf("item_count_leeway = %d, want default %d", cfg.Index.ItemCountLeeway, defaults.Index.ItemCountLeeway)
	}
	if cfg.Derived.WorldW != float64(cfg.Screen.Width) {
		t.Errorf("Derived.WorldW = %v, want screen width %d", cfg.Derived.WorldW, cfg.Screen.Width)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("index: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Index.MinNodeDiameter = 12.5
	cfg.Population.Grazers = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Index.MinNodeDiameter != 12.5 || got.Population.Grazers != 42 {
		t.Errorf("round trip lost values: %+v %+v", got.Index, got.Population)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
