package force

import (
	"fmt"
	"runtime"
	"sync"
)

// parallelThreshold is the minimum tile count to dispatch to the pool.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// workChunk represents a range of tiles for a worker to process.
type workChunk struct {
	start, end int
}

// WorkerDevice is a compute device backed by a pool of persistent goroutines.
// Each worker owns a disjoint range of output tiles per dispatch.
type WorkerDevice struct {
	numWorkers int
	tiles      int
	params     Params

	// Bound for the duration of a dispatch. Workers only read positions and
	// masses and write their own slots of out.
	positions []float32
	masses    []float32
	out       []float32

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// NewWorkerDevice creates a device with the given worker count (0 = GOMAXPROCS).
func NewWorkerDevice(workers int) *WorkerDevice {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &WorkerDevice{numWorkers: workers}
}

func (d *WorkerDevice) Name() string {
	return fmt.Sprintf("workers(%d)", d.numWorkers)
}

// Setup records the kernel parameters and launches the workers.
func (d *WorkerDevice) Setup(tiles int, p Params) error {
	if tiles <= 0 {
		return newError(d.Name(), BufferAllocationError, "cannot allocate buffers for %d tiles", tiles)
	}
	d.tiles = tiles
	d.params = p
	d.startWorkers()
	return nil
}

// startWorkers launches persistent worker goroutines.
func (d *WorkerDevice) startWorkers() {
	if d.running {
		return
	}

	d.workChan = make(chan workChunk, d.numWorkers)
	d.doneChan = make(chan struct{}, d.numWorkers)
	d.stopChan = make(chan struct{})
	d.running = true

	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (d *WorkerDevice) stopWorkers() {
	if !d.running {
		return
	}

	close(d.stopChan)
	d.wg.Wait()
	close(d.workChan)
	close(d.doneChan)
	d.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (d *WorkerDevice) worker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.stopChan:
			return
		case chunk, ok := <-d.workChan:
			if !ok {
				return
			}
			d.computeChunk(chunk.start, chunk.end)
			d.doneChan <- struct{}{}
		}
	}
}

// Dispatch runs the kernel over every tile and blocks until all chunks finish.
func (d *WorkerDevice) Dispatch(positions, masses []float32, rows, cols int, out []float32) error {
	if !d.running {
		return newError(d.Name(), DeviceUnavailable, "device not set up")
	}
	if err := checkBuffers(d.Name(), d.tiles, positions, masses, rows, cols, out); err != nil {
		return err
	}

	d.positions, d.masses, d.out = positions, masses, out
	defer func() { d.positions, d.masses, d.out = nil, nil, nil }()

	n := d.tiles
	if n < parallelThreshold {
		d.computeChunk(0, n)
		return nil
	}

	chunkSize := (n + d.numWorkers - 1) / d.numWorkers

	// Dispatch chunks to workers
	chunksDispatched := 0
	for w := 0; w < d.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		d.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-d.doneChan
	}
	return nil
}

// computeChunk evaluates the kernel for tiles [i0, i1).
func (d *WorkerDevice) computeChunk(i0, i1 int) {
	pos, mass := d.positions, d.masses
	n := len(mass)

	for i := i0; i < i1; i++ {
		xi, yi, mi := pos[2*i], pos[2*i+1], mass[i]

		var sx, sy float32
		for j := 0; j < n; j++ {
			fx, fy := pairForce(xi, yi, mi, pos[2*j], pos[2*j+1], mass[j], d.params)
			sx += fx
			sy += fy
		}
		d.out[2*i] = sx
		d.out[2*i+1] = sy
	}
}

// Release stops the worker pool.
func (d *WorkerDevice) Release() {
	d.stopWorkers()
}
