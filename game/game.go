// Package game drives the simulation in a window or headless.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/tilegrav/camera"
	"github.com/pthm-cable/tilegrav/config"
	"github.com/pthm-cable/tilegrav/renderer"
	"github.com/pthm-cable/tilegrav/sim"
	"github.com/pthm-cable/tilegrav/telemetry"
	"github.com/pthm-cable/tilegrav/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// StatsCallback, when set, receives every closed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete application state.
type Game struct {
	cfg     *config.Config
	sim     *sim.Simulation
	rngSeed int64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	fallbackSeen  bool

	// Rendering (nil in headless mode)
	camera   *camera.Camera
	screen   *renderer.Screen
	tiles    *renderer.TileRenderer
	hud      *ui.HUD
	overlays *ui.OverlayRegistry

	// State
	paused         bool
	headless       bool
	stepsPerUpdate int
	screenWidth    int32
	screenHeight   int32
}

// NewGameWithOptions creates a game from cfg.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	s, err := sim.NewFromConfig(cfg, rand.New(rand.NewSource(opts.Seed)), perf)
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g := &Game{
		cfg:            cfg,
		sim:            s,
		rngSeed:        opts.Seed,
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:  perf,
		outputManager:  om,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		screenWidth:    int32(cfg.Screen.Width),
		screenHeight:   int32(cfg.Screen.Height),
	}

	if !opts.Headless {
		g.camera = camera.New(float32(g.screenWidth), float32(g.screenHeight), float32(g.screenWidth), float32(g.screenHeight))
		g.screen = renderer.NewScreen()
		g.tiles = renderer.NewTileRenderer(g.screenWidth, g.screenHeight, g.camera)
		g.hud = ui.NewHUD()
		g.overlays = ui.NewOverlayRegistry()
		g.overlays.SetEnabled(ui.OverlayGrid, cfg.Overlay.ShowGrid)
	}

	slog.Info("simulation ready",
		"seed", opts.Seed,
		"backend", s.BackendName(),
		"particles", cfg.Simulation.ParticleCount,
		"rows", cfg.Grid.Rows,
		"cols", cfg.Grid.Cols,
		"headless", opts.Headless,
		"output_dir", om.Dir(),
	)
	return g, nil
}

// Update handles input and runs stepsPerUpdate frames unless paused.
func (g *Game) Update() error {
	g.handleInput()

	if g.paused {
		return nil
	}
	return g.runSteps()
}

// UpdateHeadless runs stepsPerUpdate frames without touching raylib.
func (g *Game) UpdateHeadless() error {
	return g.runSteps()
}

func (g *Game) runSteps() error {
	for i := 0; i < g.stepsPerUpdate; i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// step runs one frame and closes the stats window when due.
func (g *Game) step() error {
	g.perfCollector.StartTick()
	defer g.perfCollector.EndTick()

	if err := g.sim.Step(); err != nil {
		g.collector.RecordBackendError()
		return fmt.Errorf("simulation step: %w", err)
	}
	g.collector.RecordFrame()
	if !g.fallbackSeen && g.sim.FallbackCause() != nil {
		g.fallbackSeen = true
		g.collector.RecordBackendError()
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	return nil
}

// Tick returns the number of completed frames.
func (g *Game) Tick() int64 {
	return g.sim.Tick()
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// Unload releases the backend and closes output files.
func (g *Game) Unload() {
	if err := g.sim.Close(); err != nil {
		slog.Error("failed to close force backend", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
