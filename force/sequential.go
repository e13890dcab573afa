package force

import "github.com/pthm-cable/tilegrav/field"

// SequentialBackend is the reference backend: a single-threaded loop over all
// ordered tile pairs.
type SequentialBackend struct {
	params Params
}

// NewSequentialBackend creates the reference backend.
func NewSequentialBackend(p Params) *SequentialBackend {
	return &SequentialBackend{params: p}
}

func (b *SequentialBackend) Name() string { return "sequential" }

// ComputeForces fills g.Force. It never fails.
func (b *SequentialBackend) ComputeForces(g *field.Grid) error {
	n := g.Len()
	for i := 0; i < n; i++ {
		pi := g.Pos[i]
		mi := g.Mass[i]

		var sum field.Vec2
		for j := 0; j < n; j++ {
			pj := g.Pos[j]
			fx, fy := pairForce(pi.X, pi.Y, mi, pj.X, pj.Y, g.Mass[j], b.params)
			sum.X += fx
			sum.Y += fy
		}
		g.Force[i] = sum
	}
	return nil
}

func (b *SequentialBackend) Close() error { return nil }
