package sim

import "github.com/pthm-cable/tilegrav/field"

// Integrator advances particles from per-unit-mass force contributions.
//
// The acceleration accumulator is never cleared unless Reset is set, so it
// behaves as a velocity: acc += contribution, pos += acc * TimeScale.
type Integrator struct {
	TimeScale float32
	Reset     bool
}

// Apply integrates one frame. contrib must have one entry per particle.
func (in Integrator) Apply(f *field.Field, contrib []field.Vec2) {
	if in.Reset {
		f.ResetAcceleration()
	}
	for i := range f.Pos {
		acc := f.Accel[i].Add(contrib[i])
		f.Accel[i] = acc

		p := f.Pos[i].Add(acc.Scale(in.TimeScale))
		f.Pos[i] = field.Vec2{X: clamp01(p.X), Y: clamp01(p.Y)}
	}
}

// clamp01 pins v into [0, 1].
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
