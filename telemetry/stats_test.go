package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/tilegrav/field"
)

func TestSpeedStats(t *testing.T) {
	tests := []struct {
		name                   string
		values                 []float64
		mean, std, p50, maxVal float64
	}{
		{"empty", []float64{}, 0, 0, 0, 0},
		{"single", []float64{5}, 5, 0, 5, 5},
		{"odd", []float64{1, 2, 3, 4, 5}, 3, math.Sqrt(2), 3, 5},
		{"unsorted", []float64{4, 1, 3, 2}, 2.5, math.Sqrt(1.25), 2.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, _, maxV := SpeedStats(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if math.Abs(p50-tt.p50) > 1e-9 {
				t.Errorf("p50 = %v, want %v", p50, tt.p50)
			}
			if maxV != tt.maxVal {
				t.Errorf("max = %v, want %v", maxV, tt.maxVal)
			}
		})
	}
}

func TestWindowStatsSample(t *testing.T) {
	f := field.NewFieldAt([]field.Vec2{{X: 0, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 1, Y: 1}}, 10)
	f.Accel[1] = field.Vec2{X: 3, Y: 4}
	g := field.NewGrid(2, 2)
	g.Aggregate(f)

	var s WindowStats
	s.Sample(f, g)

	if s.Particles != 3 {
		t.Errorf("Particles = %d, want 3", s.Particles)
	}
	if math.Abs(s.TotalMass-30) > 1e-9 || math.Abs(s.MassError) > 1e-9 {
		t.Errorf("TotalMass = %v, MassError = %v", s.TotalMass, s.MassError)
	}
	// (0,0.5) -> tile (1,0); (0.5,0.5) and (1,1) -> tile (1,1)
	if s.OccupiedTiles != 2 {
		t.Errorf("OccupiedTiles = %d, want 2", s.OccupiedTiles)
	}
	if s.MaxTileMass != 20 {
		t.Errorf("MaxTileMass = %v, want 20", s.MaxTileMass)
	}
	if s.SpeedMax != 5 {
		t.Errorf("SpeedMax = %v, want 5", s.SpeedMax)
	}
	if s.Pinned != 2 {
		t.Errorf("Pinned = %d, want 2", s.Pinned)
	}
	if math.Abs(s.CentroidX-0.5) > 1e-6 {
		t.Errorf("CentroidX = %v, want 0.5", s.CentroidX)
	}
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(3)
	f := field.NewFieldAt([]field.Vec2{{X: 0.5, Y: 0.5}}, 1)
	g := field.NewGrid(1, 1)

	var tick int64
	for tick = 1; tick <= 2; tick++ {
		c.RecordFrame()
		if c.ShouldFlush(tick) {
			t.Fatalf("flush requested early at tick %d", tick)
		}
	}
	c.RecordFrame()
	c.RecordBackendError()
	if !c.ShouldFlush(3) {
		t.Fatal("expected flush at tick 3")
	}

	s := c.Flush(3, "sequential", f, g)
	if s.Frames != 3 || s.BackendErrors != 1 || s.WindowEndTick != 3 {
		t.Errorf("unexpected window stats: %+v", s)
	}

	// Counters reset
	if c.ShouldFlush(4) {
		t.Error("new window should not be complete")
	}
	s = c.Flush(6, "sequential", f, g)
	if s.Frames != 0 || s.WindowStartTick != 3 {
		t.Errorf("counters not reset: %+v", s)
	}
}
