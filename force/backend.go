// Package force computes per-tile net gravitational force from tile positions and masses.
//
// Every backend implements the same force law: for each ordered pair of tiles
// (i, j) at distance d, pairs with d < Epsilon contribute nothing, otherwise
// tile i receives Gravity*m_i*m_j / d * d along the unit vector towards j.
// The magnitude expression is evaluated literally and is not an inverse-square law.
package force

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/tilegrav/field"
)

// Params holds the force law constants shared by all backends.
type Params struct {
	Gravity float32
	Epsilon float32
}

// DefaultEpsilon is the distance below which a pair contributes no force.
const DefaultEpsilon = 1e-7

// Backend computes the net force on every tile of a grid.
// ComputeForces overwrites g.Force; it reads g.Pos and g.Mass only.
type Backend interface {
	Name() string
	ComputeForces(g *field.Grid) error
	Close() error
}

// ParticleBackend computes the net force on every particle directly.
// out must have one slot per particle.
type ParticleBackend interface {
	Name() string
	ComputeParticleForces(f *field.Field, out []field.Vec2) error
	Close() error
}

// ErrorKind classifies backend failures.
type ErrorKind int

const (
	PlatformUnavailable ErrorKind = iota + 1
	DeviceUnavailable
	KernelBuildError
	BufferAllocationError
	DispatchError
)

func (k ErrorKind) String() string {
	switch k {
	case PlatformUnavailable:
		return "platform_unavailable"
	case DeviceUnavailable:
		return "device_unavailable"
	case KernelBuildError:
		return "kernel_build_error"
	case BufferAllocationError:
		return "buffer_allocation_error"
	case DispatchError:
		return "dispatch_error"
	}
	return fmt.Sprintf("error_kind(%d)", int(k))
}

// BackendError reports a failure of the offload path.
type BackendError struct {
	Kind    ErrorKind
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s backend: %s", e.Backend, e.Kind)
	}
	return fmt.Sprintf("%s backend: %s: %v", e.Backend, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a BackendError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == kind
}

func newError(backend string, kind ErrorKind, format string, args ...any) *BackendError {
	return &BackendError{Kind: kind, Backend: backend, Err: fmt.Errorf(format, args...)}
}

// pairForce returns the force exerted on a body at (xi, yi) with mass mi by a
// body at (xj, yj) with mass mj. Shared by the CPU backends so that they agree
// bit for bit.
func pairForce(xi, yi, mi, xj, yj, mj float32, p Params) (fx, fy float32) {
	dx := xj - xi
	dy := yj - yi
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if dist < p.Epsilon {
		return 0, 0
	}
	magnitude := p.Gravity * mi * mj / dist * dist
	return magnitude * (dx / dist), magnitude * (dy / dist)
}
