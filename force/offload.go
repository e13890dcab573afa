package force

import "github.com/pthm-cable/tilegrav/field"

// Device is an external compute device able to run the tile force kernel.
//
// Buffers are flat: positions and out hold interleaved (x, y) pairs,
// masses holds one value per tile. Dispatch blocks until out is filled.
type Device interface {
	Name() string
	// Setup selects the device, builds the kernel and allocates buffers
	// for the given tile count. Called once.
	Setup(tiles int, p Params) error
	Dispatch(positions, masses []float32, rows, cols int, out []float32) error
	Release()
}

// OffloadBackend runs the force pass on a Device. Host buffers are
// allocated once and reused every frame.
type OffloadBackend struct {
	dev   Device
	rows  int
	cols  int
	pos   []float32
	mass  []float32
	out   []float32
	ready bool
}

// NewOffloadBackend sets up dev for a rows×cols grid. On error the device
// has been released.
func NewOffloadBackend(dev Device, rows, cols int, p Params) (*OffloadBackend, error) {
	tiles := rows * cols
	if err := dev.Setup(tiles, p); err != nil {
		dev.Release()
		return nil, err
	}
	return &OffloadBackend{
		dev:   dev,
		rows:  rows,
		cols:  cols,
		pos:   make([]float32, tiles*2),
		mass:  make([]float32, tiles),
		out:   make([]float32, tiles*2),
		ready: true,
	}, nil
}

func (b *OffloadBackend) Name() string {
	return "offload:" + b.dev.Name()
}

// ComputeForces copies tile state into the host buffers, dispatches the
// kernel and copies the result back into g.Force. g.Force is left untouched
// on error.
func (b *OffloadBackend) ComputeForces(g *field.Grid) error {
	if !b.ready {
		return newError(b.Name(), DeviceUnavailable, "backend closed")
	}
	if g.Rows() != b.rows || g.Cols() != b.cols {
		return newError(b.Name(), DispatchError, "grid %dx%d does not match buffers %dx%d",
			g.Rows(), g.Cols(), b.rows, b.cols)
	}

	for i, p := range g.Pos {
		b.pos[2*i] = p.X
		b.pos[2*i+1] = p.Y
	}
	copy(b.mass, g.Mass)

	if err := b.dev.Dispatch(b.pos, b.mass, b.rows, b.cols, b.out); err != nil {
		return err
	}

	for i := range g.Force {
		g.Force[i] = field.Vec2{X: b.out[2*i], Y: b.out[2*i+1]}
	}
	return nil
}

// Close releases the device. Safe to call more than once.
func (b *OffloadBackend) Close() error {
	if !b.ready {
		return nil
	}
	b.ready = false
	b.dev.Release()
	return nil
}

// checkBuffers validates dispatch arguments against the allocated tile count.
func checkBuffers(name string, tiles int, positions, masses []float32, rows, cols int, out []float32) error {
	n := rows * cols
	switch {
	case n != tiles:
		return newError(name, DispatchError, "dispatch for %d tiles, buffers sized for %d", n, tiles)
	case len(positions) != 2*n:
		return newError(name, DispatchError, "positions buffer has %d values, want %d", len(positions), 2*n)
	case len(masses) != n:
		return newError(name, DispatchError, "masses buffer has %d values, want %d", len(masses), n)
	case len(out) != 2*n:
		return newError(name, DispatchError, "output buffer has %d values, want %d", len(out), 2*n)
	}
	return nil
}
