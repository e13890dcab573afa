package telemetry

import "github.com/pthm-cable/tilegrav/field"

// Collector counts frame events within fixed-size windows and produces WindowStats.
type Collector struct {
	windowFrames int64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	frames        int
	backendErrors int
}

// NewCollector creates a collector that closes a window every windowFrames ticks.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordFrame records a completed frame.
func (c *Collector) RecordFrame() {
	c.frames++
}

// RecordBackendError records a failed force pass.
func (c *Collector) RecordBackendError() {
	c.backendErrors++
}

// ShouldFlush returns true if the current window is complete at tick.
func (c *Collector) ShouldFlush(tick int64) bool {
	return tick-c.windowStartTick >= c.windowFrames
}

// Flush closes the window at tick, samples the field and grid, and resets counters.
func (c *Collector) Flush(tick int64, backend string, f *field.Field, g *field.Grid) WindowStats {
	s := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		Frames:          c.frames,
		Backend:         backend,
		BackendErrors:   c.backendErrors,
	}
	s.Sample(f, g)

	c.windowStartTick = tick
	c.frames = 0
	c.backendErrors = 0
	return s
}
