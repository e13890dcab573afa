//go:build !opencl

package force

// OpenCLAvailable reports whether the binary was built with OpenCL support.
const OpenCLAvailable = false

// OpenCLDevice is unavailable without the opencl build tag.
type OpenCLDevice struct{}

// NewOpenCLDevice always fails: rebuild with -tags opencl to enable the device.
func NewOpenCLDevice() (*OpenCLDevice, error) {
	return nil, newError("opencl", PlatformUnavailable, "built without opencl tag")
}

func (d *OpenCLDevice) Name() string { return "opencl (not available)" }

func (d *OpenCLDevice) Setup(tiles int, p Params) error {
	return newError(d.Name(), PlatformUnavailable, "built without opencl tag")
}

func (d *OpenCLDevice) Dispatch(positions, masses []float32, rows, cols int, out []float32) error {
	return newError(d.Name(), DeviceUnavailable, "built without opencl tag")
}

func (d *OpenCLDevice) Release() {}
