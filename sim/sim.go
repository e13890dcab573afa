// Package sim runs the tiled gravity simulation one frame at a time.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/tilegrav/config"
	"github.com/pthm-cable/tilegrav/field"
	"github.com/pthm-cable/tilegrav/force"
	"github.com/pthm-cable/tilegrav/telemetry"
)

// Options configures a Simulation.
type Options struct {
	Rows              int
	Cols              int
	TimeScale         float32
	ResetAcceleration bool
	ShowGrid          bool

	// Perf receives phase marks when non-nil.
	Perf *telemetry.PerfCollector
}

// OptionsFromConfig extracts simulation options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Rows:              cfg.Grid.Rows,
		Cols:              cfg.Grid.Cols,
		TimeScale:         cfg.Derived.TimeScale32,
		ResetAcceleration: cfg.Simulation.ResetAcceleration,
		ShowGrid:          cfg.Overlay.ShowGrid,
	}
}

// Simulation owns the particle field, the tile grid and the force strategy.
// It is driven from a single goroutine.
type Simulation struct {
	field *field.Field
	grid  *field.Grid

	// Exactly one of these is set.
	tiles     force.Backend
	particles force.ParticleBackend

	integrator Integrator
	contrib    []field.Vec2 // per-unit-mass force, reused each frame

	state    State
	tick     int64
	showGrid bool
	overlay  []Segment

	perf *telemetry.PerfCollector
}

// New creates a simulation that computes forces tile by tile.
func New(f *field.Field, b force.Backend, opts Options) *Simulation {
	s := newSimulation(f, opts)
	s.tiles = b
	return s
}

// NewDirect creates a simulation that computes forces particle by particle.
// The grid is still aggregated for the overlay and statistics.
func NewDirect(f *field.Field, b force.ParticleBackend, opts Options) *Simulation {
	s := newSimulation(f, opts)
	s.particles = b
	return s
}

func newSimulation(f *field.Field, opts Options) *Simulation {
	return &Simulation{
		field: f,
		grid:  field.NewGrid(opts.Rows, opts.Cols),
		integrator: Integrator{
			TimeScale: opts.TimeScale,
			Reset:     opts.ResetAcceleration,
		},
		contrib:  make([]field.Vec2, f.Len()),
		showGrid: opts.ShowGrid,
		perf:     opts.Perf,
	}
}

// NewFromConfig builds the field and backend described by cfg.
func NewFromConfig(cfg *config.Config, rng *rand.Rand, perf *telemetry.PerfCollector) (*Simulation, error) {
	f := field.NewField(cfg.Simulation.ParticleCount, cfg.Derived.ParticleMass32, rng)
	opts := OptionsFromConfig(cfg)
	opts.Perf = perf
	params := force.Params{Gravity: cfg.Derived.Gravity32, Epsilon: cfg.Derived.Epsilon32}

	if cfg.Backend.Kind == config.BackendDirect {
		return NewDirect(f, force.NewDirectBackend(params), opts), nil
	}

	b, err := force.New(force.Options{
		Kind:     cfg.Backend.Kind,
		Rows:     cfg.Grid.Rows,
		Cols:     cfg.Grid.Cols,
		Workers:  cfg.Backend.Workers,
		Fallback: cfg.Backend.Fallback,
	}, params)
	if err != nil {
		return nil, fmt.Errorf("creating force backend: %w", err)
	}
	return New(f, b, opts), nil
}

// Step runs one frame. A force backend error aborts the frame before
// integration, so particle state is left as it was.
// When a PerfCollector is set, Step marks phases only; the caller owns the
// StartTick/EndTick boundaries.
func (s *Simulation) Step() error {
	s.enter(MassAggregation, telemetry.PhaseMass)
	s.grid.Aggregate(s.field)

	s.enter(ForceComputation, telemetry.PhaseForce)
	if err := s.computeContributions(); err != nil {
		s.state = Idle
		return fmt.Errorf("frame %d: %w", s.tick, err)
	}

	s.enter(Integration, telemetry.PhaseIntegrate)
	s.integrator.Apply(s.field, s.contrib)

	if s.showGrid {
		s.enter(DebugOverlayEmission, telemetry.PhaseOverlay)
		s.emitOverlay()
	}

	s.state = Idle
	s.tick++
	return nil
}

func (s *Simulation) enter(state State, phase string) {
	s.state = state
	if s.perf != nil {
		s.perf.StartPhase(phase)
	}
}

// computeContributions fills s.contrib with force per unit mass.
func (s *Simulation) computeContributions() error {
	m := s.field.Mass

	if s.particles != nil {
		if err := s.particles.ComputeParticleForces(s.field, s.contrib); err != nil {
			return err
		}
		for i, fv := range s.contrib {
			s.contrib[i] = field.Vec2{X: fv.X / m, Y: fv.Y / m}
		}
		return nil
	}

	if err := s.tiles.ComputeForces(s.grid); err != nil {
		return err
	}
	// Tile membership is looked up again; positions have not moved since aggregation.
	for i, p := range s.field.Pos {
		fv := s.grid.Force[s.grid.LocateIndex(p)]
		s.contrib[i] = field.Vec2{X: fv.X / m, Y: fv.Y / m}
	}
	return nil
}

// emitOverlay builds the tile edge segments. Grid geometry is fixed, so
// they are built once.
func (s *Simulation) emitOverlay() {
	if s.overlay == nil {
		s.overlay = tileEdges(s.grid)
	}
}

// SetShowGrid toggles the grid overlay.
func (s *Simulation) SetShowGrid(on bool) {
	s.showGrid = on
	if on {
		s.emitOverlay()
	}
}

// ShowGrid reports whether the grid overlay is on.
func (s *Simulation) ShowGrid() bool { return s.showGrid }

// Overlay returns the emitted tile edges, or nil before the first emission.
func (s *Simulation) Overlay() []Segment { return s.overlay }

// State returns the current stage.
func (s *Simulation) State() State { return s.state }

// Field returns the particle field.
func (s *Simulation) Field() *field.Field { return s.field }

// Grid returns the tile grid.
func (s *Simulation) Grid() *field.Grid { return s.grid }

// Tick returns the number of completed frames.
func (s *Simulation) Tick() int64 { return s.tick }

// BackendName names the active force strategy.
func (s *Simulation) BackendName() string {
	if s.particles != nil {
		return s.particles.Name()
	}
	return s.tiles.Name()
}

// FallbackCause returns the backend error that made a fallback strategy
// switch to its reference backend, or nil if no switch has happened.
func (s *Simulation) FallbackCause() error {
	fb, ok := s.tiles.(*force.FallbackBackend)
	if !ok || fb.Cause() == nil {
		return nil
	}
	return fb.Cause()
}

// Close releases the force backend.
func (s *Simulation) Close() error {
	if s.particles != nil {
		return s.particles.Close()
	}
	return s.tiles.Close()
}
