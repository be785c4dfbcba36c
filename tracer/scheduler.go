package tracer

// A block of consecutive frame rows.
type Block struct {
	// Block start row and height.
	Y uint32
	H uint32
}

// The BlockScheduler interface is implemented by all block scheduling
// algorithms. The returned blocks must be disjoint and cover every row of
// the frame exactly once.
type BlockScheduler interface {
	// Split a frame of frameH rows into blocks that will be consumed by
	// numWorkers workers.
	Schedule(numWorkers, frameH uint32) []Block
}

// The naive scheduler assigns one contiguous block per worker.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

// Split the frame into min(numWorkers, frameH) contiguous blocks. Rows that
// don't divide evenly are distributed one each to the first blocks.
func (naiveScheduler) Schedule(numWorkers, frameH uint32) []Block {
	if numWorkers == 0 || frameH == 0 {
		return nil
	}
	if numWorkers > frameH {
		numWorkers = frameH
	}

	rowsPerBlock := frameH / numWorkers
	extraRows := frameH % numWorkers

	blocks := make([]Block, numWorkers)
	var y uint32
	for idx := range blocks {
		h := rowsPerBlock
		if uint32(idx) < extraRows {
			h++
		}
		blocks[idx] = Block{Y: y, H: h}
		y += h
	}
	return blocks
}

// The fixed height scheduler splits the frame into blocks of a fixed number
// of rows. Workers pull blocks from a queue so faster workers process more
// blocks.
type fixedHeightScheduler struct {
	blockH uint32
}

// Create a scheduler that emits blocks of blockH rows.
func FixedHeightScheduler(blockH uint32) BlockScheduler {
	if blockH == 0 {
		blockH = 1
	}
	return fixedHeightScheduler{blockH: blockH}
}

func (sch fixedHeightScheduler) Schedule(_, frameH uint32) []Block {
	blocks := make([]Block, 0, (frameH+sch.blockH-1)/sch.blockH)
	for y := uint32(0); y < frameH; y += sch.blockH {
		h := sch.blockH
		if y+h > frameH {
			h = frameH - y
		}
		blocks = append(blocks, Block{Y: y, H: h})
	}
	return blocks
}
