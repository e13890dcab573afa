package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilegrav/config"
	"github.com/pthm-cable/tilegrav/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	particles := flag.Int("particles", -1, "Particle count (-1 = use config)")
	gridOverlay := flag.Bool("grid-overlay", false, "Show the tile grid overlay")
	backend := flag.String("backend", "", "Force backend: sequential, offload, opencl, direct (empty = use config)")
	fallback := flag.Bool("fallback", false, "Switch to the sequential backend after a backend error")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logText := flag.Bool("log-text", false, "Human-readable log output instead of JSON")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")

	flag.Parse()

	setupLogging(*logText)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *particles >= 0 {
		cfg.Simulation.ParticleCount = *particles
	}
	if *gridOverlay {
		cfg.Overlay.ShowGrid = true
	}
	if *backend != "" {
		cfg.Backend.Kind = *backend
	}
	if *fallback {
		cfg.Backend.Fallback = true
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	cfg.ComputeDerived()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *maxTicks))
	}
	os.Exit(runWindow(cfg, opts, *maxTicks))
}

// setupLogging installs the default slog logger: JSON to stdout, or
// charmbracelet/log text output when text is set.
func setupLogging(text bool) {
	if text {
		handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
		})
		slog.SetDefault(slog.New(handler))
		return
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) int {
	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		if err := g.UpdateHeadless(); err != nil {
			slog.Error("simulation stopped", "tick", g.Tick(), "error", err)
			return 1
		}
		if maxTicks > 0 && g.Tick() >= int64(maxTicks) {
			slog.Info("max ticks reached", "tick", g.Tick())
			return 0
		}
	}
}

func runWindow(cfg *config.Config, opts game.Options, maxTicks int) int {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Tiled Gravity")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		return 1
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		if err := g.Update(); err != nil {
			slog.Error("simulation stopped", "tick", g.Tick(), "error", err)
			return 1
		}
		g.Draw()

		if maxTicks > 0 && g.Tick() >= int64(maxTicks) {
			break
		}
	}
	return 0
}
