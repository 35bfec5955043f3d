package gemm

import (
	"golang.org/x/sys/cpu"

	"github.com/katalvlaran/hybridspmm/matrix"
)

// Block-size bounds. Values are powers of two so block edges line up
// with cache lines for float32 data.
const (
	defaultBlock = 64
	wideKBlock   = 128
)

// Blocked is a cache-blocked CPU backend: the i/k/j loops are tiled so
// each (block of X rows) × (block of W rows) pass stays resident in L1/L2
// while streaming the output. Block sizes are fixed at construction from
// the host's CPU feature flags.
type Blocked struct {
	blockM, blockK, blockN int
}

// NewBlocked probes CPU features once and returns a Blocked backend.
// Wider vector units (AVX-512 on x86, SVE on arm64) get a deeper K
// block; everything else keeps the 64-wide default.
func NewBlocked() *Blocked {
	bk := defaultBlock
	if cpu.X86.HasAVX512F || cpu.ARM64.HasSVE {
		bk = wideKBlock
	}

	return &Blocked{blockM: defaultBlock, blockK: bk, blockN: defaultBlock}
}

// Name implements Backend.
func (*Blocked) Name() string { return "blocked" }

// Multiply implements Backend with a three-level blocked loop nest.
// Identical arithmetic per element as the reference kernel; only the
// visitation order changes, so results differ from CPU at most by
// floating summation order.
// Complexity: O(m·n·k).
func (b *Blocked) Multiply(x, w *matrix.Dense) (*matrix.Dense, error) {
	m, k, n, err := checkOperands(x, w)
	if err != nil {
		return nil, err
	}
	y, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, err
	}

	a, wd, yd := x.Data(), w.Data(), y.Data()
	for i0 := 0; i0 < m; i0 += b.blockM {
		iEnd := min(i0+b.blockM, m)
		for p0 := 0; p0 < k; p0 += b.blockK {
			pEnd := min(p0+b.blockK, k)
			for j0 := 0; j0 < n; j0 += b.blockN {
				jEnd := min(j0+b.blockN, n)
				for i := i0; i < iEnd; i++ {
					yRow := yd[i*n : (i+1)*n]
					for p := p0; p < pEnd; p++ {
						aip := a[i*k+p]
						if aip == 0 {
							continue
						}
						wRow := wd[p*n : (p+1)*n]
						for j := j0; j < jEnd; j++ {
							yRow[j] += aip * wRow[j]
						}
					}
				}
			}
		}
	}

	return y, nil
}
