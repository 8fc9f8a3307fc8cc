package renderer

import (
	"runtime"
	"sync"

	"github.com/tmayes/go-orbit-tracer/pkg/integrator"
	"github.com/tmayes/go-orbit-tracer/pkg/scene"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile       *Tile
	Frame      int
	Pass       int
	TaskID     int            // For deterministic result ordering
	PixelStats [][]PixelStats // Shared accumulator array to write into
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID  int
	Samples int
	Err     error
}

// WorkerPool manages parallel tile rendering. The path tracer it drives is a
// pure function of its inputs, so all workers share one instance and tiles
// have non-overlapping bounds, making the shared pixel array write-safe
// without locking.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	tracer      *integrator.PathTracer
	world       *scene.Scene
	numWorkers  int
	queueDepth  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A numWorkers of zero or less uses the CPU count. queueDepth must be the
// number of tiles submitted per pass: the queues hold a full pass worth of
// tasks and results, so submitting every tile before collecting any result
// cannot block.
func NewWorkerPool(tracer *integrator.PathTracer, world *scene.Scene, queueDepth, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		tracer:     tracer,
		world:      world,
		numWorkers: numWorkers,
		queueDepth: queueDepth,
	}
}

// Start begins all workers. Each Start creates fresh queues, so a pool can be
// started again after Stop.
func (wp *WorkerPool) Start() {
	wp.taskQueue = make(chan TileTask, wp.queueDepth)
	wp.resultQueue = make(chan TileResult, wp.queueDepth)

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(wp.taskQueue, wp.resultQueue)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(tasks <-chan TileTask, results chan<- TileResult) {
	defer wp.wg.Done()

	for task := range tasks {
		samples := 0
		bounds := task.Tile.Bounds
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				color := wp.tracer.ComputeSample(x, y, task.Frame, task.Pass, wp.world)
				task.PixelStats[y][x].AddSample(color)
				samples++
			}
		}

		results <- TileResult{TaskID: task.TaskID, Samples: samples}
	}
}
