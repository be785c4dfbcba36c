package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vgarleanu/raytracer/log"
	"github.com/vgarleanu/raytracer/scene"
	"github.com/vgarleanu/raytracer/tracer"
	"github.com/vgarleanu/raytracer/types"
)

type Renderer interface {
	// Render frame. The returned frame is fully populated; if ctx is
	// cancelled the partial frame is discarded and ErrInterrupted is
	// returned.
	Render(ctx context.Context) (*Frame, error)

	// Get render statistics for the last rendered frame.
	Stats() FrameStats
}

// The default renderer spawns a fixed pool of workers for each frame. The
// workers consume row blocks from a queue filled by the block scheduler
// and write pixels directly into their block rows of the shared frame.
type defaultRenderer struct {
	logger    log.Logger
	scene     *scene.Scene
	scheduler tracer.BlockScheduler
	options   Options
	stats     FrameStats
}

// Create a new renderer for a scene. Configuration and scene errors are
// reported here, before any worker starts.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if scheduler == nil {
		scheduler = schedulerFor(opts)
	}

	return &defaultRenderer{
		logger:    log.New("renderer"),
		scene:     sc,
		scheduler: scheduler,
		options:   opts,
	}, nil
}

// Render a single frame using the scheduler selected by opts.
func Render(ctx context.Context, sc *scene.Scene, opts Options) (*Frame, error) {
	r, err := NewDefault(sc, nil, opts)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx)
}

func schedulerFor(opts Options) tracer.BlockScheduler {
	if opts.BlockHeight > 0 {
		return tracer.FixedHeightScheduler(uint32(opts.BlockHeight))
	}
	return tracer.NaiveScheduler()
}

func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

func (r *defaultRenderer) Render(ctx context.Context) (*Frame, error) {
	start := time.Now()
	frame := NewFrame(r.options.FrameW, r.options.FrameH)
	numWorkers := r.options.workerCount()

	blocks := r.scheduler.Schedule(uint32(numWorkers), uint32(r.options.FrameH))
	queue := make(chan tracer.Block, len(blocks))
	for _, block := range blocks {
		queue <- block
	}
	close(queue)
	r.logger.Debugf("rendering %dx%d frame (%d spp) using %d workers and %d blocks", frame.Width, frame.Height, r.options.SamplesPerPixel, numWorkers, len(blocks))

	// Each worker only touches its own stats entry.
	workerStats := make([]WorkerStat, numWorkers)
	var wg sync.WaitGroup
	for idx := 0; idx < numWorkers; idx++ {
		workerStats[idx].Id = fmt.Sprintf("worker-%d", idx)
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			r.runWorker(ctx, queue, frame, &workerStats[idx])
		}(idx)
	}
	wg.Wait()

	if ctx.Err() != nil {
		r.logger.Noticef("render interrupted after %s", time.Since(start))
		return nil, ErrInterrupted
	}

	stats := FrameStats{
		Workers:    workerStats,
		RenderTime: time.Since(start),
	}
	for idx := range stats.Workers {
		ws := &stats.Workers[idx]
		ws.FramePercent = 100.0 * float32(ws.Rows) / float32(frame.Height)
		stats.FailedPixels += ws.FailedPixels
	}
	r.stats = stats

	if stats.FailedPixels > 0 {
		r.logger.Warningf("%d pixel(s) fell back to the background color", stats.FailedPixels)
	}
	r.logger.Infof("rendered frame in %s", stats.RenderTime)
	return frame, nil
}

// Process blocks from the queue until it is drained or ctx is cancelled.
func (r *defaultRenderer) runWorker(ctx context.Context, queue <-chan tracer.Block, frame *Frame, stat *WorkerStat) {
	start := time.Now()
	defer func() {
		stat.RenderTime = time.Since(start)
	}()

	var (
		cam     = r.scene.Camera
		frameW  = uint32(frame.Width)
		frameH  = uint32(frame.Height)
		samples = uint32(r.options.SamplesPerPixel)
	)

	for block := range queue {
		rows := frame.Rows(int(block.Y), int(block.H))
		for dy := uint32(0); dy < block.H; dy++ {
			if ctx.Err() != nil {
				return
			}

			py := block.Y + dy
			row := rows[int(dy)*frame.Width : int(dy+1)*frame.Width]
			for px := uint32(0); px < frameW; px++ {
				color, err := r.tracePixel(px, py, frameW, frameH, samples, cam)
				if err != nil {
					stat.FailedPixels++
					r.logger.Debugf("pixel (%d, %d): %v", px, py, err)
				}
				row[px] = color
			}
		}
		stat.Blocks++
		stat.Rows += int(block.H)
	}
}

// Trace a pixel, converting panics into a background-colored failure so
// that a single bad pixel cannot abort the worker.
func (r *defaultRenderer) tracePixel(px, py, frameW, frameH, samples uint32, cam *scene.Camera) (color types.Color, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			color = r.scene.Background
			err = fmt.Errorf("renderer: pixel (%d, %d) panicked: %v", px, py, rec)
		}
	}()
	return tracer.TracePixel(px, py, frameW, frameH, samples, cam, r.scene)
}
