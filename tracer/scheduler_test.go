package tracer

import "testing"

func TestNaiveScheduler(t *testing.T) {
	type spec struct {
		numWorkers uint32
		frameH     uint32
		expRows    []uint32
	}
	specs := []spec{
		spec{2, 10, []uint32{5, 5}},
		spec{3, 10, []uint32{4, 3, 3}},
		spec{4, 3, []uint32{1, 1, 1}},
		spec{1, 7, []uint32{7}},
		spec{0, 7, nil},
	}

	for index, s := range specs {
		blocks := NaiveScheduler().Schedule(s.numWorkers, s.frameH)
		if len(blocks) != len(s.expRows) {
			t.Fatalf("[spec %d] expected %d blocks; got %d", index, len(s.expRows), len(blocks))
		}
		for idx, block := range blocks {
			if block.H != s.expRows[idx] {
				t.Fatalf("[spec %d] expected block %d to be assigned %d rows; got %d", index, idx, s.expRows[idx], block.H)
			}
		}
	}
}

func TestFixedHeightScheduler(t *testing.T) {
	blocks := FixedHeightScheduler(4).Schedule(8, 10)
	exp := []Block{{0, 4}, {4, 4}, {8, 2}}
	if len(blocks) != len(exp) {
		t.Fatalf("expected %d blocks; got %d", len(exp), len(blocks))
	}
	for idx, block := range blocks {
		if block != exp[idx] {
			t.Fatalf("expected block %d to be %v; got %v", idx, exp[idx], block)
		}
	}
}

func TestSchedulerCoverage(t *testing.T) {
	schedulers := map[string]BlockScheduler{
		"naive":   NaiveScheduler(),
		"fixed-1": FixedHeightScheduler(1),
		"fixed-3": FixedHeightScheduler(3),
		"fixed-0": FixedHeightScheduler(0),
	}

	for name, sch := range schedulers {
		for frameH := uint32(1); frameH <= 67; frameH += 3 {
			for numWorkers := uint32(1); numWorkers <= 20; numWorkers++ {
				rowHits := make([]int, frameH)
				for _, block := range sch.Schedule(numWorkers, frameH) {
					if block.H == 0 {
						t.Fatalf("[%s] frameH=%d workers=%d: got empty block", name, frameH, numWorkers)
					}
					for y := block.Y; y < block.Y+block.H; y++ {
						if y >= frameH {
							t.Fatalf("[%s] frameH=%d workers=%d: block %v exceeds frame", name, frameH, numWorkers, block)
						}
						rowHits[y]++
					}
				}
				for y, hits := range rowHits {
					if hits != 1 {
						t.Fatalf("[%s] frameH=%d workers=%d: expected row %d to be scheduled once; got %d", name, frameH, numWorkers, y, hits)
					}
				}
			}
		}
	}
}
