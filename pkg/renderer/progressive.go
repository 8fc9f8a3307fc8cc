// Package renderer drives the per-pixel path tracer over tiles, passes and
// animation frames, accumulating samples into an image.
package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
	"github.com/tmayes/go-orbit-tracer/pkg/integrator"
	"github.com/tmayes/go-orbit-tracer/pkg/scene"
)

// Config contains configuration for progressive rendering
type Config struct {
	Width    int // Image width in pixels
	Height   int // Image height in pixels
	Frames   int // Animation frame count (0 = single static frame)
	Passes   int // Samples per pixel, one per pass
	TileSize int // Size of each square tile
	Workers  int // Number of parallel workers (0 = CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:    640,
		Height:   360,
		Frames:   0,
		Passes:   64,
		TileSize: 64,
		Workers:  0,
	}
}

// ProgressiveRenderer accumulates one sample per pixel per pass, averaging
// passes into the frame image. Pass indices feed the deterministic sampler,
// so a render is reproducible regardless of worker count or tile order.
type ProgressiveRenderer struct {
	world      *scene.Scene
	config     Config
	tracer     *integrator.PathTracer
	tiles      []*Tile
	pixelStats [][]PixelStats
	workerPool *WorkerPool
	logger     core.Logger
}

// NewProgressiveRenderer creates a renderer for the given scene and config
func NewProgressiveRenderer(world *scene.Scene, config Config, logger core.Logger) *ProgressiveRenderer {
	tracer := integrator.NewPathTracer(config.Width, config.Height, config.Frames)
	tiles := NewTileGrid(config.Width, config.Height, config.TileSize)

	pixelStats := make([][]PixelStats, config.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, config.Width)
	}

	return &ProgressiveRenderer{
		world:      world,
		config:     config,
		tracer:     tracer,
		tiles:      tiles,
		pixelStats: pixelStats,
		workerPool: NewWorkerPool(tracer, world, len(tiles), config.Workers),
		logger:     logger,
	}
}

// RenderPass renders a single pass of one frame across all tiles
func (pr *ProgressiveRenderer) RenderPass(frame, pass int) (RenderStats, error) {
	startTime := time.Now()

	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:       tile,
			Frame:      frame,
			Pass:       pass,
			TaskID:     taskID,
			PixelStats: pr.pixelStats,
		})
	}

	totalSamples := 0
	for range pr.tiles {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Err != nil {
			return RenderStats{}, result.Err
		}
		totalSamples += result.Samples
	}

	return RenderStats{
		TotalPixels:  pr.config.Width * pr.config.Height,
		TotalSamples: totalSamples,
		PassNumber:   pass + 1,
		Elapsed:      time.Since(startTime),
	}, nil
}

// PassResult contains the state of a frame after one pass
type PassResult struct {
	Frame  int
	Stats  RenderStats
	IsLast bool // Last pass of this frame
}

// FrameResult contains a completed animation frame
type FrameResult struct {
	Frame int
	Image *image.RGBA
}

// RenderProgressive renders all frames with channel-based delivery. The
// caller reads pass, frame and error events from the returned channels; the
// render goroutine stops between passes when ctx is cancelled.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan FrameResult, <-chan error) {
	frames := max(1, pr.config.Frames)

	passChan := make(chan PassResult, 1)
	frameChan := make(chan FrameResult, frames) // Buffered so frame delivery never stalls passes
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(frameChan)
		defer close(errChan)
		defer pr.workerPool.Stop()

		pr.workerPool.Start()
		pr.logger.Printf("Rendering %d frame(s), %d passes each, %d workers\n",
			frames, pr.config.Passes, pr.workerPool.NumWorkers())

		for frame := 0; frame < frames; frame++ {
			pr.resetAccumulators()

			for pass := 0; pass < pr.config.Passes; pass++ {
				select {
				case <-ctx.Done():
					pr.logger.Printf("Rendering cancelled at frame %d pass %d\n", frame, pass)
					errChan <- ctx.Err()
					return
				default:
				}

				stats, err := pr.RenderPass(frame, pass)
				if err != nil {
					errChan <- err
					return
				}

				result := PassResult{
					Frame:  frame,
					Stats:  stats,
					IsLast: pass == pr.config.Passes-1,
				}
				select {
				case passChan <- result:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}

			pr.logger.Printf("Frame %d complete (%d passes)\n", frame, pr.config.Passes)

			select {
			case frameChan <- FrameResult{Frame: frame, Image: pr.CurrentImage()}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, frameChan, errChan
}

// RenderFrame renders every pass of a single frame synchronously and returns
// the finished image.
func (pr *ProgressiveRenderer) RenderFrame(ctx context.Context, frame int) (*image.RGBA, error) {
	pr.resetAccumulators()
	pr.workerPool.Start()
	defer pr.workerPool.Stop()

	for pass := 0; pass < pr.config.Passes; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := pr.RenderPass(frame, pass); err != nil {
			return nil, err
		}
	}

	return pr.CurrentImage(), nil
}

// CurrentImage assembles an image from the accumulated pixel statistics
func (pr *ProgressiveRenderer) CurrentImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pr.config.Width, pr.config.Height))

	for y := 0; y < pr.config.Height; y++ {
		for x := 0; x < pr.config.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(pr.pixelStats[y][x].GetColor()))
		}
	}

	return img
}

func (pr *ProgressiveRenderer) resetAccumulators() {
	for y := range pr.pixelStats {
		for x := range pr.pixelStats[y] {
			pr.pixelStats[y][x].Reset()
		}
	}
}

// vec3ToColor converts linear radiance to an 8-bit display color
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Gamma 2.0, then clamp at the 8-bit boundary only; accumulation is HDR
	colorVec = colorVec.GammaCorrect(2.0).Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
