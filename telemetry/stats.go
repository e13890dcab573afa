package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tilegrav/field"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartTick int64  `csv:"-"`
	WindowEndTick   int64  `csv:"window_end"`
	Frames          int    `csv:"frames"`
	Backend         string `csv:"backend"`
	BackendErrors   int    `csv:"backend_errors"`

	// Mass bookkeeping (sampled at window end)
	Particles     int     `csv:"particles"`
	TotalMass     float64 `csv:"total_mass"`
	MassError     float64 `csv:"mass_error"` // tile mass sum minus particle mass sum
	OccupiedTiles int     `csv:"occupied_tiles"`
	MaxTileMass   float64 `csv:"max_tile_mass"`

	// Accumulator magnitude distribution; the accumulator doubles as velocity
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	CentroidX float64 `csv:"centroid_x"`
	CentroidY float64 `csv:"centroid_y"`
	Pinned    int     `csv:"pinned"` // particles sitting on the boundary
}

// SpeedStats returns mean, population std, median, p90 and max of values.
// Returns zeros for an empty slice.
func SpeedStats(values []float64) (mean, std, p50, p90, maxV float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.9, stat.LinInterp, sorted, nil)
	maxV = floats.Max(sorted)
	return mean, std, p50, p90, maxV
}

// Sample fills the field and grid derived parts of s.
func (s *WindowStats) Sample(f *field.Field, g *field.Grid) {
	n := f.Len()
	s.Particles = n

	tileMass := make([]float64, len(g.Mass))
	for i, m := range g.Mass {
		tileMass[i] = float64(m)
		if m > 0 {
			s.OccupiedTiles++
		}
	}
	s.TotalMass = floats.Sum(tileMass)
	s.MassError = s.TotalMass - f.TotalMass()
	if len(tileMass) > 0 {
		s.MaxTileMass = floats.Max(tileMass)
	}

	if n == 0 {
		return
	}

	speeds := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range f.Pos {
		a := f.Accel[i]
		speeds[i] = math.Hypot(float64(a.X), float64(a.Y))
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
		if p.X == 0 || p.X == 1 || p.Y == 0 || p.Y == 1 {
			s.Pinned++
		}
	}

	s.SpeedMean, s.SpeedStd, s.SpeedP50, s.SpeedP90, s.SpeedMax = SpeedStats(speeds)
	s.CentroidX = stat.Mean(xs, nil)
	s.CentroidY = stat.Mean(ys, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("frames", s.Frames),
		slog.String("backend", s.Backend),
		slog.Int("backend_errors", s.BackendErrors),
		slog.Int("particles", s.Particles),
		slog.Float64("total_mass", s.TotalMass),
		slog.Float64("mass_error", s.MassError),
		slog.Int("occupied_tiles", s.OccupiedTiles),
		slog.Float64("max_tile_mass", s.MaxTileMass),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("centroid_x", s.CentroidX),
		slog.Float64("centroid_y", s.CentroidY),
		slog.Int("pinned", s.Pinned),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
