package renderer

import (
	"fmt"
	"runtime"
)

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Number of samples.
	SamplesPerPixel int

	// Number of parallel workers. If 0, one worker per available cpu is used.
	NumWorkers int

	// Height of the row blocks handed out to workers. If 0, the frame is
	// split into one contiguous block per worker.
	BlockHeight int
}

// Check that all options are within range. All returned errors wrap
// ErrInvalidConfig.
func (opts Options) Validate() error {
	if opts.FrameW <= 0 || opts.FrameH <= 0 {
		return fmt.Errorf("%w: frame dimensions must be positive; got %dx%d", ErrInvalidConfig, opts.FrameW, opts.FrameH)
	}
	if opts.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive; got %d", ErrInvalidConfig, opts.SamplesPerPixel)
	}
	if opts.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative; got %d", ErrInvalidConfig, opts.NumWorkers)
	}
	if opts.BlockHeight < 0 {
		return fmt.Errorf("%w: block height must not be negative; got %d", ErrInvalidConfig, opts.BlockHeight)
	}
	return nil
}

// Get the number of workers to spawn.
func (opts Options) workerCount() int {
	if opts.NumWorkers == 0 {
		return runtime.NumCPU()
	}
	return opts.NumWorkers
}
