// Package field holds the particle field and the tile grid the force pass works on.
package field

import (
	"math/rand"
)

// Vec2 is a 2D vector in normalized world space.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Field owns particle positions, the shared particle mass and the
// per-particle acceleration accumulator.
type Field struct {
	Pos   []Vec2
	Accel []Vec2 // persists across frames
	Mass  float32
}

// NewField creates n particles with positions drawn uniformly from the unit square.
func NewField(n int, mass float32, rng *rand.Rand) *Field {
	f := &Field{
		Pos:   make([]Vec2, n),
		Accel: make([]Vec2, n),
		Mass:  mass,
	}
	for i := range f.Pos {
		f.Pos[i] = Vec2{X: rng.Float32(), Y: rng.Float32()}
	}
	return f
}

// NewFieldAt creates a field with explicit positions. Accelerations start at zero.
func NewFieldAt(pos []Vec2, mass float32) *Field {
	p := make([]Vec2, len(pos))
	copy(p, pos)
	return &Field{
		Pos:   p,
		Accel: make([]Vec2, len(pos)),
		Mass:  mass,
	}
}

// Len returns the particle count.
func (f *Field) Len() int {
	return len(f.Pos)
}

// TotalMass returns the mass of all particles.
func (f *Field) TotalMass() float64 {
	return float64(len(f.Pos)) * float64(f.Mass)
}

// ResetAcceleration zeroes every accumulator.
func (f *Field) ResetAcceleration() {
	for i := range f.Accel {
		f.Accel[i] = Vec2{}
	}
}
