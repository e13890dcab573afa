package force

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/tilegrav/field"
)

// FallbackBackend runs a primary backend until it reports a BackendError,
// then closes it and uses the fallback for the rest of the run.
// The failed frame is recomputed on the fallback, so no frame is lost.
type FallbackBackend struct {
	primary  Backend
	fallback Backend
	failed   bool
	cause    *BackendError
}

// NewFallbackBackend wraps primary with a fallback.
func NewFallbackBackend(primary, fallback Backend) *FallbackBackend {
	return &FallbackBackend{primary: primary, fallback: fallback}
}

func (b *FallbackBackend) Name() string {
	return b.active().Name()
}

func (b *FallbackBackend) active() Backend {
	if b.failed {
		return b.fallback
	}
	return b.primary
}

// ComputeForces delegates to the active backend. Errors that are not
// BackendErrors are returned unchanged.
func (b *FallbackBackend) ComputeForces(g *field.Grid) error {
	if b.failed {
		return b.fallback.ComputeForces(g)
	}

	err := b.primary.ComputeForces(g)
	if err == nil {
		return nil
	}

	var be *BackendError
	if !errors.As(err, &be) {
		return err
	}

	slog.Warn("force backend failed, switching to fallback",
		"backend", b.primary.Name(),
		"fallback", b.fallback.Name(),
		"kind", be.Kind.String(),
		"error", err,
	)
	b.failed = true
	b.cause = be
	if cerr := b.primary.Close(); cerr != nil {
		slog.Warn("closing failed backend", "backend", b.primary.Name(), "error", cerr)
	}
	return b.fallback.ComputeForces(g)
}

// Cause returns the error that triggered the switch, or nil.
func (b *FallbackBackend) Cause() *BackendError {
	return b.cause
}

// Close closes both backends and returns the first error.
func (b *FallbackBackend) Close() error {
	var firstErr error
	if !b.failed {
		firstErr = b.primary.Close()
	}
	if err := b.fallback.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
