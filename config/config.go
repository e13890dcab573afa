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
	Simulation SimulationConfig `yaml:"simulation"`
	Grid       GridConfig       `yaml:"grid"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Backend    BackendConfig    `yaml:"backend"`
	Overlay    OverlayConfig    `yaml:"overlay"`
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

// SimulationConfig holds particle field and integrator parameters.
type SimulationConfig struct {
	ParticleCount     int     `yaml:"particle_count"`
	ParticleMass      float64 `yaml:"particle_mass"`
	TimeScale         float64 `yaml:"time_scale"`         // mult: accumulated acceleration -> position delta
	ResetAcceleration bool    `yaml:"reset_acceleration"` // zero the accumulator every frame (corrected variant)
}

// GridConfig holds tile grid dimensions.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// PhysicsConfig holds force law parameters.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"` // combined mass term = gravity * m_i * m_j
	Epsilon float64 `yaml:"epsilon"` // pairs closer than this contribute no force
}

// BackendConfig selects the force backend.
type BackendConfig struct {
	Kind     string `yaml:"kind"`     // sequential, offload, opencl, direct
	Workers  int    `yaml:"workers"`  // offload worker count (0 = GOMAXPROCS)
	Fallback bool   `yaml:"fallback"` // substitute sequential backend after a backend error
}

// OverlayConfig holds debug overlay settings.
type OverlayConfig struct {
	ShowGrid bool `yaml:"show_grid"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // frames per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// Backend kinds.
const (
	BackendSequential = "sequential"
	BackendOffload    = "offload"
	BackendOpenCL     = "opencl"
	BackendDirect     = "direct"
)

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ParticleMass32 float32 // Simulation.ParticleMass as float32
	TimeScale32    float32 // Simulation.TimeScale as float32
	Gravity32      float32 // Physics.Gravity as float32
	Epsilon32      float32 // Physics.Epsilon as float32
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation core cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Simulation.ParticleCount < 0:
		return &ConfigError{Field: "simulation.particle_count", Reason: "must not be negative"}
	case c.Simulation.ParticleMass <= 0:
		return &ConfigError{Field: "simulation.particle_mass", Reason: "must be positive"}
	case c.Grid.Rows < 1:
		return &ConfigError{Field: "grid.rows", Reason: "must be at least 1"}
	case c.Grid.Cols < 1:
		return &ConfigError{Field: "grid.cols", Reason: "must be at least 1"}
	case c.Physics.Epsilon < 0:
		return &ConfigError{Field: "physics.epsilon", Reason: "must not be negative"}
	case c.Backend.Workers < 0:
		return &ConfigError{Field: "backend.workers", Reason: "must not be negative"}
	}

	switch c.Backend.Kind {
	case BackendSequential, BackendOffload, BackendOpenCL, BackendDirect:
	default:
		return &ConfigError{Field: "backend.kind", Reason: fmt.Sprintf("unknown backend %q", c.Backend.Kind)}
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call again after mutating fields in code.
func (c *Config) ComputeDerived() {
	c.Derived.ParticleMass32 = float32(c.Simulation.ParticleMass)
	c.Derived.TimeScale32 = float32(c.Simulation.TimeScale)
	c.Derived.Gravity32 = float32(c.Physics.Gravity)
	c.Derived.Epsilon32 = float32(c.Physics.Epsilon)
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
