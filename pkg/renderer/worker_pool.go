package renderer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// workerIdleTimeout is handed to the pool constructor. Pool goroutines stay
// alive for the lifetime of the process.
const workerIdleTimeout = 2 * time.Second

// PixelRange is a half-open range [Start, End) of row-major pixel indices
type PixelRange struct {
	Start int
	End   int
}

// Len returns the number of pixels in the range
func (r PixelRange) Len() int {
	return r.End - r.Start
}

// Partition splits total pixels into at most workers contiguous ranges. Every
// range gets total/workers pixels and the first total%workers ranges get one
// more. Empty ranges are omitted.
func Partition(total, workers int) []PixelRange {
	if workers < 1 {
		workers = 1
	}
	if total <= 0 {
		return nil
	}

	base := total / workers
	remainder := total % workers
	ranges := make([]PixelRange, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < remainder {
			size++
		}
		if size == 0 {
			break
		}
		ranges = append(ranges, PixelRange{Start: start, End: start + size})
		start += size
	}
	return ranges
}

// WorkerPool keeps goroutines alive across frames and runs one task per pixel
// range. It is safe for concurrent use.
type WorkerPool struct {
	pool       worker.DynamicWorkerPool
	numWorkers int
	queueSize  int
	nextTaskID atomic.Int64
}

// NewWorkerPool creates a pool with numWorkers goroutines. A non-positive
// count uses one worker per logical core.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	queueSize := numWorkers * 4
	return &WorkerPool{
		pool:       worker.NewDynamicWorkerPool(numWorkers, queueSize, workerIdleTimeout),
		numWorkers: numWorkers,
		queueSize:  queueSize,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls work once per range with the range's index and returns after
// every call has finished. Ranges are submitted in batches no larger than the
// task queue.
func (wp *WorkerPool) Run(ranges []PixelRange, work func(index int, r PixelRange)) {
	for batchStart := 0; batchStart < len(ranges); batchStart += wp.queueSize {
		batchEnd := min(batchStart+wp.queueSize, len(ranges))

		var wg sync.WaitGroup
		wg.Add(batchEnd - batchStart)
		for i := batchStart; i < batchEnd; i++ {
			r := ranges[i]
			wp.pool.SubmitTask(worker.Task{
				ID: int(wp.nextTaskID.Add(1)),
				Do: func() (any, error) {
					defer wg.Done()
					work(i, r)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}
}
