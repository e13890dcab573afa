//go:build opencl

package force

import (
	"errors"
	"log/slog"

	"github.com/jgillich/go-opencl/cl"
)

// OpenCLAvailable reports whether the binary was built with OpenCL support.
const OpenCLAvailable = true

// OpenCLDevice runs the tile force kernel on an OpenCL GPU (or CPU) device.
type OpenCLDevice struct {
	device  *cl.Device
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel

	posBuf  *cl.MemObject
	massBuf *cl.MemObject
	outBuf  *cl.MemObject

	tiles      int
	deviceName string
}

// NewOpenCLDevice creates an unconfigured OpenCL device. Platform and device
// selection happen in Setup.
func NewOpenCLDevice() (*OpenCLDevice, error) {
	return &OpenCLDevice{}, nil
}

func (d *OpenCLDevice) Name() string {
	if d.deviceName == "" {
		return "opencl"
	}
	return "opencl(" + d.deviceName + ")"
}

// pickDevice returns the first GPU device on any platform, falling back to a CPU device.
func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, newError("opencl", PlatformUnavailable, "querying OpenCL platforms: %w", err)
	}
	if len(platforms) == 0 {
		return nil, newError("opencl", PlatformUnavailable, "no OpenCL platforms available")
	}

	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, newError("opencl", DeviceUnavailable, "no suitable OpenCL devices found")
}

// Setup selects a device, builds the kernel, allocates the three buffers and
// binds the kernel arguments. Partially created resources are left for Release.
func (d *OpenCLDevice) Setup(tiles int, p Params) error {
	device, err := pickDevice()
	if err != nil {
		return err
	}
	d.device = device
	d.deviceName = device.Name()
	d.tiles = tiles

	slog.Info("opencl device selected",
		"name", d.deviceName,
		"global_mem", device.GlobalMemSize(),
		"local_mem", device.LocalMemSize(),
		"max_work_group", device.MaxWorkGroupSize(),
		"max_alloc", device.MaxMemAllocSize(),
	)

	if d.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return newError(d.Name(), DeviceUnavailable, "creating context: %w", err)
	}
	if d.queue, err = d.context.CreateCommandQueue(device, 0); err != nil {
		return newError(d.Name(), DeviceUnavailable, "creating command queue: %w", err)
	}

	if d.program, err = d.context.CreateProgramWithSource([]string{tileForceKernelSource}); err != nil {
		return newError(d.Name(), KernelBuildError, "creating program: %w", err)
	}
	if err := d.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		var buildErr cl.BuildError
		if errors.As(err, &buildErr) {
			return newError(d.Name(), KernelBuildError, "building program: %s", string(buildErr))
		}
		return newError(d.Name(), KernelBuildError, "building program: %w", err)
	}
	if d.kernel, err = d.program.CreateKernel("calculate_force"); err != nil {
		return newError(d.Name(), KernelBuildError, "creating kernel: %w", err)
	}

	const f32 = 4
	if d.posBuf, err = d.context.CreateEmptyBuffer(cl.MemReadOnly, tiles*2*f32); err != nil {
		return newError(d.Name(), BufferAllocationError, "allocating position buffer: %w", err)
	}
	if d.massBuf, err = d.context.CreateEmptyBuffer(cl.MemReadOnly, tiles*f32); err != nil {
		return newError(d.Name(), BufferAllocationError, "allocating mass buffer: %w", err)
	}
	if d.outBuf, err = d.context.CreateEmptyBuffer(cl.MemWriteOnly, tiles*2*f32); err != nil {
		return newError(d.Name(), BufferAllocationError, "allocating force buffer: %w", err)
	}

	if err := d.kernel.SetArgs(d.posBuf, d.massBuf, int32(tiles), p.Gravity, p.Epsilon, d.outBuf); err != nil {
		return newError(d.Name(), KernelBuildError, "setting kernel arguments: %w", err)
	}
	return nil
}

// Dispatch writes the inputs, runs one work item per tile and blocks on the readback.
func (d *OpenCLDevice) Dispatch(positions, masses []float32, rows, cols int, out []float32) error {
	if d.kernel == nil {
		return newError(d.Name(), DeviceUnavailable, "device not set up")
	}
	if err := checkBuffers(d.Name(), d.tiles, positions, masses, rows, cols, out); err != nil {
		return err
	}

	if _, err := d.queue.EnqueueWriteBufferFloat32(d.posBuf, true, 0, positions, nil); err != nil {
		return newError(d.Name(), DispatchError, "writing positions: %w", err)
	}
	if _, err := d.queue.EnqueueWriteBufferFloat32(d.massBuf, true, 0, masses, nil); err != nil {
		return newError(d.Name(), DispatchError, "writing masses: %w", err)
	}

	if _, err := d.queue.EnqueueNDRangeKernel(d.kernel, nil, []int{d.tiles}, nil, nil); err != nil {
		return newError(d.Name(), DispatchError, "enqueueing kernel: %w", err)
	}
	if _, err := d.queue.EnqueueReadBufferFloat32(d.outBuf, true, 0, out, nil); err != nil {
		return newError(d.Name(), DispatchError, "reading forces: %w", err)
	}
	if err := d.queue.Finish(); err != nil {
		return newError(d.Name(), DispatchError, "finishing queue: %w", err)
	}
	return nil
}

// Release frees buffers first, then the kernel, program, queue and context.
func (d *OpenCLDevice) Release() {
	if d.outBuf != nil {
		d.outBuf.Release()
		d.outBuf = nil
	}
	if d.massBuf != nil {
		d.massBuf.Release()
		d.massBuf = nil
	}
	if d.posBuf != nil {
		d.posBuf.Release()
		d.posBuf = nil
	}
	if d.kernel != nil {
		d.kernel.Release()
		d.kernel = nil
	}
	if d.program != nil {
		d.program.Release()
		d.program = nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.context != nil {
		d.context.Release()
		d.context = nil
	}
}
