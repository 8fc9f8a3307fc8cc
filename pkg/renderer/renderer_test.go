package renderer

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
	"github.com/tmayes/go-orbit-tracer/pkg/scene"
)

func testConfig() Config {
	return Config{
		Width:    32,
		Height:   18,
		Frames:   0,
		Passes:   2,
		TileSize: 8,
		Workers:  2,
	}
}

func TestNewTileGrid_CoversImage(t *testing.T) {
	tiles := NewTileGrid(100, 50, 32)

	covered := image.Rectangle{}
	totalArea := 0
	for _, tile := range tiles {
		covered = covered.Union(tile.Bounds)
		totalArea += tile.Bounds.Dx() * tile.Bounds.Dy()
	}

	if covered != image.Rect(0, 0, 100, 50) {
		t.Errorf("Tiles cover %v, expected full image", covered)
	}
	// Area equality with full coverage implies no overlap
	if totalArea != 100*50 {
		t.Errorf("Total tile area %d, expected %d", totalArea, 100*50)
	}
}

func TestNewTileGrid_ClipsEdgeTiles(t *testing.T) {
	tiles := NewTileGrid(65, 65, 64)
	if len(tiles) != 4 {
		t.Fatalf("Expected 4 tiles, got %d", len(tiles))
	}

	last := tiles[len(tiles)-1]
	if last.Bounds != image.Rect(64, 64, 65, 65) {
		t.Errorf("Expected clipped corner tile, got %v", last.Bounds)
	}
}

func TestPixelStats_Averaging(t *testing.T) {
	var ps PixelStats

	if got := ps.GetColor(); got != core.NewVec3(0, 0, 0) {
		t.Errorf("Empty pixel should be black, got %v", got)
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))

	if got := ps.GetColor(); got != core.NewVec3(0.5, 0.5, 0) {
		t.Errorf("Expected (0.5,0.5,0), got %v", got)
	}

	ps.Reset()
	if ps.SampleCount != 0 || ps.ColorAccum != (core.Vec3{}) {
		t.Error("Reset did not clear accumulator")
	}
}

func TestRenderFrame_ProducesImage(t *testing.T) {
	world := scene.NewDefaultScene()
	pr := NewProgressiveRenderer(world, testConfig(), core.NewSilentLogger())

	img, err := pr.RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	if img.Bounds() != image.Rect(0, 0, 32, 18) {
		t.Errorf("Unexpected image bounds %v", img.Bounds())
	}

	// Every pixel got samples; a sky or lit-surface pixel is non-black.
	// Check the accumulators rather than the image to avoid gamma rounding.
	nonZero := 0
	for y := range pr.pixelStats {
		for x := range pr.pixelStats[y] {
			if pr.pixelStats[y][x].SampleCount != pr.config.Passes {
				t.Fatalf("Pixel (%d,%d): %d samples, expected %d", x, y, pr.pixelStats[y][x].SampleCount, pr.config.Passes)
			}
			if pr.pixelStats[y][x].ColorAccum.Length() > 0 {
				nonZero++
			}
		}
	}
	if nonZero == 0 {
		t.Error("Expected some non-black pixels")
	}
}

func TestRenderFrame_DeterministicAcrossWorkerCounts(t *testing.T) {
	world := scene.NewDefaultScene()

	configA := testConfig()
	configA.Workers = 1
	configB := testConfig()
	configB.Workers = 4

	prA := NewProgressiveRenderer(world, configA, core.NewSilentLogger())
	prB := NewProgressiveRenderer(world, configB, core.NewSilentLogger())

	imgA, err := prA.RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	imgB, err := prB.RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := range imgA.Pix {
		if imgA.Pix[i] != imgB.Pix[i] {
			t.Fatal("Worker count changed the rendered image")
		}
	}
}

func TestRenderFrame_TinyTileSize(t *testing.T) {
	// Tile sizes are a user-facing knob, so the pass queues must hold a
	// full pass of tiles no matter how small the tiles get. With 2x2
	// tiles a 64x64 image produces 1024 tasks in flight at once.
	world := scene.NewDefaultScene()
	config := Config{
		Width:    64,
		Height:   64,
		Frames:   0,
		Passes:   1,
		TileSize: 2,
		Workers:  2,
	}
	pr := NewProgressiveRenderer(world, config, core.NewSilentLogger())

	done := make(chan error, 1)
	go func() {
		_, err := pr.RenderFrame(context.Background(), 0)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RenderFrame failed: %v", err)
		}
	case <-time.After(60 * time.Second):
		t.Fatal("RenderFrame stalled with tile size smaller than a pass queue slot")
	}
}

func TestRenderFrame_RepeatedRenders(t *testing.T) {
	// The worker pool restarts between renders, so the same renderer can
	// render the same frame twice and must produce identical output.
	world := scene.NewDefaultScene()
	pr := NewProgressiveRenderer(world, testConfig(), core.NewSilentLogger())

	first, err := pr.RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("First RenderFrame failed: %v", err)
	}
	second, err := pr.RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("Second RenderFrame failed: %v", err)
	}

	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatal("Repeated renders of the same frame differ")
		}
	}
}

func TestRenderProgressive_DeliversPassesAndFrames(t *testing.T) {
	world := scene.NewDefaultScene()
	config := testConfig()
	config.Frames = 2
	pr := NewProgressiveRenderer(world, config, core.NewSilentLogger())

	passChan, frameChan, errChan := pr.RenderProgressive(context.Background())

	passes := 0
	for range passChan {
		passes++
	}
	frames := 0
	for result := range frameChan {
		if result.Image == nil {
			t.Error("Frame result missing image")
		}
		frames++
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}

	if passes != config.Frames*config.Passes {
		t.Errorf("Expected %d pass events, got %d", config.Frames*config.Passes, passes)
	}
	if frames != config.Frames {
		t.Errorf("Expected %d frame events, got %d", config.Frames, frames)
	}
}

func TestRenderProgressive_Cancellation(t *testing.T) {
	world := scene.NewDefaultScene()
	config := testConfig()
	config.Passes = 10000 // Long enough that cancellation lands mid-render

	pr := NewProgressiveRenderer(world, config, core.NewSilentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	passChan, frameChan, errChan := pr.RenderProgressive(ctx)

	// Let at least one pass through, then cancel
	<-passChan
	cancel()

	done := make(chan struct{})
	go func() {
		for range passChan {
		}
		for range frameChan {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("Render did not stop after cancellation")
	}

	if err := <-errChan; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestFramePath(t *testing.T) {
	if got := FramePath("output/default", 7); got != "output/default/frame_0007.png" {
		t.Errorf("Unexpected frame path %q", got)
	}
	if got := PreviewPath("output/default/frame_0007.png"); got != "output/default/frame_0007_preview.png" {
		t.Errorf("Unexpected preview path %q", got)
	}
}
