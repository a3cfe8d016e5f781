// Package game wires the soup together: ECS world, spatial index, systems,
// telemetry and the optional raylib front end.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadsoup/camera"
	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/config"
	"github.com/pthm-cable/quadsoup/geometry"
	"github.com/pthm-cable/quadsoup/inspector"
	"github.com/pthm-cable/quadsoup/quadtree"
	"github.com/pthm-cable/quadsoup/renderer"
	"github.com/pthm-cable/quadsoup/systems"
	"github.com/pthm-cable/quadsoup/telemetry"
	"github.com/pthm-cable/quadsoup/ui"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	Headless       bool
	StepsPerUpdate int

	// Config overrides the global configuration when set.
	Config *config.Config

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	// Spatial index and systems
	spatial    *systems.Spatial
	factory    *systems.Factory
	movement   *systems.MovementSystem
	feeding    *systems.FeedingSystem
	dispensers *systems.DispenserSystem

	// Telemetry sampling
	sampleFilter *ecs.Filter2[components.Species, components.Energy]
	energies     []float64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Rendering (nil when headless)
	camera    *camera.Camera
	entities  *renderer.EntityRenderer
	nodes     *renderer.NodeRenderer
	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	inspector *inspector.Inspector
	history   *inspector.HistoryPanel

	// Component access for the inspector
	posMap     *ecs.Map1[components.Position]
	velMap     *ecs.Map1[components.Velocity]
	bodyMap    *ecs.Map1[components.Body]
	energyMap  *ecs.Map1[components.Energy]
	speciesMap *ecs.Map1[components.Species]

	// Selection
	selected     ecs.Entity
	hasSelection bool
	picked       []quadtree.Item
	sensed       []systems.Neighbor

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	respawned      int

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	area := geometry.Rect{Right: cfg.Derived.WorldW, Bottom: cfg.Derived.WorldH}

	spatial := systems.NewSpatial(world, cfg.Index, area)
	factory := systems.NewFactory(world, spatial, cfg, rng)

	g := &Game{
		world:      world,
		rng:        rng,
		cfg:        cfg,
		spatial:    spatial,
		factory:    factory,
		movement:   systems.NewMovementSystem(world, spatial, cfg, area.Center(), rng),
		feeding:    systems.NewFeedingSystem(world, spatial, factory, cfg),
		dispensers: systems.NewDispenserSystem(world, spatial, factory, cfg),

		sampleFilter: ecs.NewFilter2[components.Species, components.Energy](world),

		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		headless:       opts.Headless,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Physics.DT)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	if !opts.Headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, float32(area.Width()), float32(area.Height()))
		g.entities = renderer.NewEntityRenderer(world)
		g.nodes = renderer.NewNodeRenderer()
		g.overlays = ui.NewOverlayRegistry()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-260, 10)
		g.inspector = inspector.NewInspector(int32(g.screenWidth), int32(g.screenHeight))
		g.history = inspector.NewHistoryPanel(int32(g.screenWidth), int32(g.screenHeight))
		g.posMap = ecs.NewMap1[components.Position](world)
		g.velMap = ecs.NewMap1[components.Velocity](world)
		g.bodyMap = ecs.NewMap1[components.Body](world)
		g.energyMap = ecs.NewMap1[components.Energy](world)
		g.speciesMap = ecs.NewMap1[components.Species](world)
	}

	g.spawnInitialPopulation()
	return g
}

// Update handles input and runs one or more simulation steps.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for range g.stepsPerUpdate {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without input handling.
func (g *Game) UpdateHeadless() {
	for range g.stepsPerUpdate {
		g.simulationStep()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Index returns the spatial index holding every entity.
func (g *Game) Index() *quadtree.Index {
	return g.spatial.Index()
}

// Count returns the number of live entities of kind.
func (g *Game) Count(kind quadtree.Kind) int {
	return g.spatial.Count(kind)
}

// PerfStats returns tick timing over the recent perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Unload flushes output and releases resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
