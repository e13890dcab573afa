package force

import "github.com/pthm-cable/tilegrav/field"

// DirectBackend is the brute-force O(n²) strategy: every particle pair,
// no tiling. Useful as a ground truth for small fields.
type DirectBackend struct {
	params Params
}

// NewDirectBackend creates a particle-particle backend.
func NewDirectBackend(p Params) *DirectBackend {
	return &DirectBackend{params: p}
}

func (b *DirectBackend) Name() string { return "direct" }

// ComputeParticleForces fills out with the net force on each particle.
func (b *DirectBackend) ComputeParticleForces(f *field.Field, out []field.Vec2) error {
	if len(out) != f.Len() {
		return newError(b.Name(), DispatchError, "output has %d slots for %d particles", len(out), f.Len())
	}

	m := f.Mass
	for i, pi := range f.Pos {
		var sum field.Vec2
		for _, pj := range f.Pos {
			fx, fy := pairForce(pi.X, pi.Y, m, pj.X, pj.Y, m, b.params)
			sum.X += fx
			sum.Y += fy
		}
		out[i] = sum
	}
	return nil
}

func (b *DirectBackend) Close() error { return nil }
