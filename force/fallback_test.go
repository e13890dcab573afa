package force

import (
	"errors"
	"testing"

	"github.com/pthm-cable/tilegrav/field"
)

// flakyBackend fails with err after ok successful calls.
type flakyBackend struct {
	ok     int
	err    error
	calls  int
	closed bool
}

func (b *flakyBackend) Name() string { return "flaky" }

func (b *flakyBackend) ComputeForces(g *field.Grid) error {
	b.calls++
	if b.calls > b.ok {
		return b.err
	}
	for i := range g.Force {
		g.Force[i] = field.Vec2{X: 1, Y: 1}
	}
	return nil
}

func (b *flakyBackend) Close() error {
	b.closed = true
	return nil
}

func TestFallbackSwitchesOnBackendError(t *testing.T) {
	primary := &flakyBackend{ok: 2, err: &BackendError{Kind: DispatchError, Backend: "flaky"}}
	fb := NewFallbackBackend(primary, NewSequentialBackend(testParams))

	g := field.NewGrid(1, 1)
	g.Mass[0] = 10

	for frame := 0; frame < 2; frame++ {
		if err := fb.ComputeForces(g); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if fb.Name() != "flaky" {
			t.Fatalf("frame %d: active = %q, want flaky", frame, fb.Name())
		}
	}

	// Third frame fails on the primary and is recomputed on the fallback
	if err := fb.ComputeForces(g); err != nil {
		t.Fatalf("failing frame: %v", err)
	}
	if g.Force[0] != (field.Vec2{}) {
		t.Errorf("force = %v, want sequential result (0, 0)", g.Force[0])
	}
	if fb.Name() != "sequential" {
		t.Errorf("active = %q, want sequential", fb.Name())
	}
	if !primary.closed {
		t.Error("failed primary should be closed")
	}
	if fb.Cause() == nil || fb.Cause().Kind != DispatchError {
		t.Errorf("Cause() = %v, want DispatchError", fb.Cause())
	}

	// Primary is never called again
	calls := primary.calls
	_ = fb.ComputeForces(g)
	if primary.calls != calls {
		t.Error("primary called after switch")
	}
}

func TestFallbackPassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("not a backend error")
	primary := &flakyBackend{err: plain}
	fb := NewFallbackBackend(primary, NewSequentialBackend(testParams))

	err := fb.ComputeForces(field.NewGrid(1, 1))
	if !errors.Is(err, plain) {
		t.Fatalf("expected plain error, got %v", err)
	}
	if fb.Name() != "flaky" {
		t.Error("non-backend errors must not trigger the switch")
	}
}
