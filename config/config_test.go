package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Simulation.ParticleCount != 100 {
		t.Errorf("particle_count = %d, want 100", cfg.Simulation.ParticleCount)
	}
	if cfg.Overlay.ShowGrid {
		t.Error("show_grid should default to false")
	}
	if cfg.Backend.Kind != BackendSequential {
		t.Errorf("backend.kind = %q, want %q", cfg.Backend.Kind, BackendSequential)
	}
	if cfg.Derived.ParticleMass32 != 100 || math.Abs(float64(cfg.Derived.Gravity32)-0.001) > 1e-9 {
		t.Errorf("derived mass/gravity = %v/%v, want 100/0.001", cfg.Derived.ParticleMass32, cfg.Derived.Gravity32)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("simulation:\n  particle_count: 500\ngrid:\n  rows: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Simulation.ParticleCount != 500 {
		t.Errorf("particle_count = %d, want 500", cfg.Simulation.ParticleCount)
	}
	if cfg.Grid.Rows != 4 {
		t.Errorf("rows = %d, want 4", cfg.Grid.Rows)
	}
	// Untouched fields keep their defaults
	if cfg.Grid.Cols != 8 {
		t.Errorf("cols = %d, want default 8", cfg.Grid.Cols)
	}
	if cfg.Simulation.ParticleMass != 100 {
		t.Errorf("particle_mass = %v, want default 100", cfg.Simulation.ParticleMass)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative count", func(c *Config) { c.Simulation.ParticleCount = -1 }, "simulation.particle_count"},
		{"zero mass", func(c *Config) { c.Simulation.ParticleMass = 0 }, "simulation.particle_mass"},
		{"zero rows", func(c *Config) { c.Grid.Rows = 0 }, "grid.rows"},
		{"zero cols", func(c *Config) { c.Grid.Cols = 0 }, "grid.cols"},
		{"negative epsilon", func(c *Config) { c.Physics.Epsilon = -1 }, "physics.epsilon"},
		{"unknown backend", func(c *Config) { c.Backend.Kind = "quantum" }, "backend.kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  rows: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for zero grid rows")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Defaults()
	cfg.Simulation.ParticleCount = 42
	cfg.Overlay.ShowGrid = true

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Simulation.ParticleCount != 42 || !loaded.Overlay.ShowGrid {
		t.Errorf("roundtrip lost values: count=%d show_grid=%v",
			loaded.Simulation.ParticleCount, loaded.Overlay.ShowGrid)
	}
}
