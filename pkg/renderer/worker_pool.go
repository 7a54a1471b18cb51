package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// TileFunc renders one tile. It is called from worker goroutines, once per
// tile per pass, with disjoint bounds.
type TileFunc func(bounds image.Rectangle)

// pass is one dispatch of a tile grid. It is immutable apart from its two
// counters and is published to workers through an atomic pointer.
type pass struct {
	grid    TileGrid
	render  TileFunc
	next    atomic.Uint32 // claim counter, saturates past TileCount
	retired atomic.Uint32 // tiles fully rendered
}

func (p *pass) drained() bool {
	return p.retired.Load() >= uint32(p.grid.TileCount)
}

// Dispatcher is a persistent pool of render goroutines. Workers park on a
// weighted semaphore; each Dispatch wakes all of them, they claim tiles with
// an atomic fetch-add until the grid is exhausted and then park again.
//
// The semaphore starts fully held by the dispatcher. Dispatch releases one
// token per worker and every woken worker keeps the token it acquired, so
// the pool is parked exactly when no token is left to acquire.
//
// Idle, Dispatch and Close must be called from a single owner goroutine.
type Dispatcher struct {
	threadCount int
	sem         *semaphore.Weighted
	current     atomic.Pointer[pass]
	passes      int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
	logger core.Logger
}

// LogicalCoreCount returns the number of logical CPUs, falling back to
// runtime.NumCPU when the platform query fails
func LogicalCoreCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// NewDispatcher starts threadCount workers, parked until the first Dispatch.
// threadCount <= 0 uses LogicalCoreCount.
func NewDispatcher(threadCount int, logger core.Logger) *Dispatcher {
	if threadCount <= 0 {
		threadCount = LogicalCoreCount()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	sem := semaphore.NewWeighted(int64(threadCount))
	if !sem.TryAcquire(int64(threadCount)) {
		panic("renderer: fresh semaphore could not be acquired")
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		threadCount: threadCount,
		sem:         sem,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
	d.current.Store(&pass{})

	for i := 0; i < threadCount; i++ {
		d.wg.Add(1)
		go d.work()
	}

	logger.Printf("Started %d render workers\n", threadCount)
	return d
}

// ThreadCount returns the number of workers in the pool
func (d *Dispatcher) ThreadCount() int {
	return d.threadCount
}

// Passes returns the number of passes dispatched so far
func (d *Dispatcher) Passes() int {
	return d.passes
}

// Idle reports whether the current pass is fully rendered and every worker
// is parked, which is when the next pass may be dispatched
func (d *Dispatcher) Idle() bool {
	if !d.current.Load().drained() {
		return false
	}
	// A token left to take means a worker has not woken up for the last
	// pass yet
	if d.sem.TryAcquire(1) {
		d.sem.Release(1)
		return false
	}
	return true
}

// Dispatch publishes a new pass and wakes every worker. It panics if the
// previous pass is still in flight or the dispatcher is closed.
func (d *Dispatcher) Dispatch(grid TileGrid, render TileFunc) {
	if d.closed {
		panic("renderer: Dispatch on closed Dispatcher")
	}
	if !d.Idle() {
		panic("renderer: Dispatch while workers are still running")
	}

	// The pointer store is the barrier that makes the pass visible before
	// any worker wakes
	d.current.Store(&pass{grid: grid, render: render})
	d.passes++
	d.sem.Release(int64(d.threadCount))
}

// Close waits for the current pass to finish and stops every worker.
// Calling Close more than once is a no-op.
func (d *Dispatcher) Close() {
	if d.closed {
		return
	}
	d.closed = true

	for !d.current.Load().drained() {
		runtime.Gosched()
	}

	d.cancel()
	d.wg.Wait()
	d.logger.Printf("Stopped render workers after %d passes\n", d.passes)
}

// work is the worker loop: park, claim tiles until none are left, repeat
func (d *Dispatcher) work() {
	defer d.wg.Done()

	for {
		if err := d.sem.Acquire(d.ctx, 1); err != nil {
			return
		}

		p := d.current.Load()
		for {
			index := p.next.Add(1) - 1
			if index >= uint32(p.grid.TileCount) {
				break
			}
			p.render(p.grid.Bounds(int(index)))
			p.retired.Add(1)
		}
	}
}
