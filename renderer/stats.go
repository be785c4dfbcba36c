package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	Id string

	// The number of processed blocks and rows and the percentage of total
	// frame area they represent.
	Blocks       int
	Rows         int
	FramePercent float32

	// Pixels that fell back to the background color.
	FailedPixels int

	// Time spent rendering assigned blocks.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total failed pixels.
	FailedPixels int

	// Total render time for entire frame.
	RenderTime time.Duration
}
