// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Index      IndexConfig      `yaml:"index"`
	Population PopulationConfig `yaml:"population"`
	Movement   MovementConfig   `yaml:"movement"`
	Grazer     GrazerConfig     `yaml:"grazer"`
	Dispenser  DispenserConfig  `yaml:"dispenser"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the area entities are seeded into.
// The index grows past it when entities wander off.
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // 0 = use screen width
	Height float64 `yaml:"height"` // 0 = use screen height
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// IndexConfig holds quadtree tuning knobs.
type IndexConfig struct {
	ItemCountTarget int     `yaml:"item_count_target"`
	ItemCountLeeway int     `yaml:"item_count_leeway"`
	MinNodeDiameter float64 `yaml:"min_node_diameter"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Grazers     int `yaml:"grazers"`      // initial grazer count
	MaxGrazers  int `yaml:"max_grazers"`  // births stop at this count
	MinGrazers  int `yaml:"min_grazers"`  // respawn when below
	Dispensers  int `yaml:"dispensers"`   // static pellet sources
	MaxPellets  int `yaml:"max_pellets"`  // dispensers pause at this count
	InitPellets int `yaml:"init_pellets"` // pellets scattered at start
}

// MovementConfig holds grazer steering parameters.
type MovementConfig struct {
	MaxSpeed   float64 `yaml:"max_speed"`   // world units per second
	Jitter     float64 `yaml:"jitter"`      // random acceleration per second
	CenterPull float64 `yaml:"center_pull"` // acceleration towards the world centre per unit of distance
	Drag       float64 `yaml:"drag"`        // fraction of velocity kept per second
}

// GrazerConfig holds grazer energy parameters.
type GrazerConfig struct {
	Radius        float64 `yaml:"radius"`
	InitialEnergy float64 `yaml:"initial_energy"`
	MaxEnergy     float64 `yaml:"max_energy"`
	Metabolism    float64 `yaml:"metabolism"`    // energy drain per second
	BirthEnergy   float64 `yaml:"birth_energy"`  // split when energy reaches this
	SpawnOffset   float64 `yaml:"spawn_offset"`  // child distance from parent
	PelletEnergy  float64 `yaml:"pellet_energy"` // energy gained per pellet
}

// DispenserConfig holds pellet source parameters.
type DispenserConfig struct {
	Radius       float64 `yaml:"radius"`
	Rate         float64 `yaml:"rate"`   // pellets per second per dispenser
	Spread       float64 `yaml:"spread"` // max pellet distance from the dispenser
	PelletRadius float64 `yaml:"pellet_radius"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW, WorldH float64 // effective seeding area
	ScreenW32      float32
	ScreenH32      float32
	MaxRadius      float64 // largest collision radius of any entity kind
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.WorldW = c.World.Width
	if c.Derived.WorldW <= 0 {
		c.Derived.WorldW = float64(c.Screen.Width)
	}
	c.Derived.WorldH = c.World.Height
	if c.Derived.WorldH <= 0 {
		c.Derived.WorldH = float64(c.Screen.Height)
	}

	c.Derived.MaxRadius = max(c.Grazer.Radius, c.Dispenser.Radius, c.Dispenser.PelletRadius)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
