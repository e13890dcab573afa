package force

import (
	"fmt"

	"github.com/pthm-cable/tilegrav/field"
)

// Backend kind names accepted by New.
const (
	KindSequential = "sequential"
	KindOffload    = "offload"
	KindOpenCL     = "opencl"
)

// Options configures New.
type Options struct {
	Kind     string
	Rows     int
	Cols     int
	Workers  int  // offload worker count (0 = GOMAXPROCS)
	Fallback bool // wrap offload backends with a sequential fallback
}

// New builds a tile backend. Setup errors of the offload kinds are returned
// as BackendErrors unless opts.Fallback is set, in which case the sequential
// backend is returned in their place.
func New(opts Options, p Params) (Backend, error) {
	var (
		b   Backend
		err error
	)

	switch opts.Kind {
	case KindSequential:
		return NewSequentialBackend(p), nil
	case KindOffload:
		b, err = NewOffloadBackend(NewWorkerDevice(opts.Workers), opts.Rows, opts.Cols, p)
	case KindOpenCL:
		var dev *OpenCLDevice
		dev, err = NewOpenCLDevice()
		if err == nil {
			b, err = NewOffloadBackend(dev, opts.Rows, opts.Cols, p)
		}
	default:
		return nil, fmt.Errorf("unknown force backend %q", opts.Kind)
	}

	if err != nil {
		if opts.Fallback {
			return NewFallbackBackend(failedBackend{err: err}, NewSequentialBackend(p)), nil
		}
		return nil, err
	}
	if opts.Fallback {
		return NewFallbackBackend(b, NewSequentialBackend(p)), nil
	}
	return b, nil
}

// failedBackend stands in for a backend whose setup failed, so the fallback
// switch is logged on the first frame like any other backend failure.
type failedBackend struct {
	err error
}

func (f failedBackend) Name() string { return "unavailable" }

func (f failedBackend) ComputeForces(*field.Grid) error { return f.err }

func (f failedBackend) Close() error { return nil }
