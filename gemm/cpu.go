package gemm

import (
	"runtime"
	"sync"

	"github.com/katalvlaran/hybridspmm/matrix"
)

// Parallel tuning parameters.
const (
	// minParallelOps is the minimum m·n·k volume before the strip pool
	// is worth its scheduling overhead; below it the scalar kernel runs
	// on the calling goroutine.
	minParallelOps = 64 * 64 * 64

	// rowsPerStrip is how many output rows each worker claims at a time.
	// Large enough for cache efficiency, small enough to load-balance.
	rowsPerStrip = 64
)

// CPU is the reference backend: a straightforward triple-loop
// accumulation, parallelized across independent output rows. Each strip
// writes a disjoint row range of Y, so no synchronization is needed
// beyond the final join.
type CPU struct {
	workers int
}

// NewCPU returns a CPU backend using the given worker count;
// workers <= 0 selects runtime.GOMAXPROCS(0).
func NewCPU(workers int) *CPU {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &CPU{workers: workers}
}

// Name implements Backend.
func (*CPU) Name() string { return "cpu" }

// Multiply implements Backend. Output rows are split into strips
// consumed by a fixed worker pool; each worker runs the scalar kernel
// on its strip.
// Complexity: O(m·n·k).
func (b *CPU) Multiply(x, w *matrix.Dense) (*matrix.Dense, error) {
	m, k, n, err := checkOperands(x, w)
	if err != nil {
		return nil, err
	}
	y, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, err
	}

	a, wd, yd := x.Data(), w.Data(), y.Data()
	if m*n*k < minParallelOps || b.workers == 1 {
		sgemmRows(a, wd, yd, 0, m, n, k)

		return y, nil
	}

	numStrips := (m + rowsPerStrip - 1) / rowsPerStrip
	work := make(chan int, numStrips)
	for strip := 0; strip < numStrips; strip++ {
		work <- strip
	}
	close(work)

	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for strip := range work {
				rowStart := strip * rowsPerStrip
				rowEnd := min(rowStart+rowsPerStrip, m)
				sgemmRows(a, wd, yd, rowStart, rowEnd, n, k)
			}
		}()
	}
	wg.Wait()

	return y, nil
}

// sgemmRows computes rows [rowStart, rowEnd) of Y = X·W on flat
// row-major buffers. The i/p/j loop order streams W rows sequentially,
// keeping the inner loop on contiguous memory.
func sgemmRows(a, w, y []float32, rowStart, rowEnd, n, k int) {
	for i := rowStart; i < rowEnd; i++ {
		yRow := y[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			aip := a[i*k+p]
			if aip == 0 {
				continue
			}
			wRow := w[p*n : (p+1)*n]
			for j, wv := range wRow {
				yRow[j] += aip * wv
			}
		}
	}
}
