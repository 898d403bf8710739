/*package edt implements the exact Euclidean distance transform of binary
rasters using the Felzenszwalb & Huttenlocher separable lower-envelope
algorithm, the same transform scipy's distance_transform_edt computes.

The convention follows scipy: cells with value zero are the seeds, and
every cell receives the distance (in cells) to the nearest seed. Seed cells
receive zero.*/
package edt

import (
	"math"
)

const inf = 1e20

// Transform3 computes the distance transform of a 3D volume with the given
// per-axis widths. occ[i] == 0 marks a seed cell.
func Transform3(occ []uint8, w [3]int) []float32 {
	n := w[0] * w[1] * w[2]
	g := make([]float64, n)
	for i := range occ {
		if occ[i] == 0 {
			g[i] = 0
		} else {
			g[i] = inf
		}
	}

	maxW := w[0]
	if w[1] > maxW {
		maxW = w[1]
	}
	if w[2] > maxW {
		maxW = w[2]
	}
	ws := newWorkspace(maxW)

	// x lines
	for z := 0; z < w[2]; z++ {
		for y := 0; y < w[1]; y++ {
			base := (z*w[1] + y) * w[0]
			ws.pass(g[base:base+w[0]], 1)
		}
	}
	// y lines
	for z := 0; z < w[2]; z++ {
		for x := 0; x < w[0]; x++ {
			base := z*w[1]*w[0] + x
			ws.pass(g[base:base+(w[1]-1)*w[0]+1], w[0])
		}
	}
	// z lines
	for y := 0; y < w[1]; y++ {
		for x := 0; x < w[0]; x++ {
			base := y*w[0] + x
			ws.pass(g[base:base+(w[2]-1)*w[1]*w[0]+1], w[1]*w[0])
		}
	}

	out := make([]float32, n)
	for i := range g {
		out[i] = float32(math.Sqrt(g[i]))
	}
	return out
}

// Transform2 computes the distance transform of a 2D raster. mask[i] == 0
// marks a seed cell.
func Transform2(mask []uint8, w, h int) []float64 {
	n := w * h
	g := make([]float64, n)
	for i := range mask {
		if mask[i] == 0 {
			g[i] = 0
		} else {
			g[i] = inf
		}
	}

	maxW := w
	if h > maxW {
		maxW = h
	}
	ws := newWorkspace(maxW)

	for y := 0; y < h; y++ {
		ws.pass(g[y*w:y*w+w], 1)
	}
	for x := 0; x < w; x++ {
		ws.pass(g[x:x+(h-1)*w+1], w)
	}

	for i := range g {
		g[i] = math.Sqrt(g[i])
	}
	return g
}

// workspace holds the per-line buffers so repeated passes do not allocate.
type workspace struct {
	f, d, z []float64
	v       []int
}

func newWorkspace(n int) *workspace {
	return &workspace{
		f: make([]float64, n),
		d: make([]float64, n),
		z: make([]float64, n+1),
		v: make([]int, n),
	}
}

// pass runs the 1D squared-distance transform over the strided line
// starting at g[0].
func (ws *workspace) pass(g []float64, stride int) {
	n := (len(g)-1)/stride + 1
	if n == 1 {
		return
	}
	for i := 0; i < n; i++ {
		ws.f[i] = g[i*stride]
	}
	dt1(ws.f[:n], ws.d[:n], ws.v[:n], ws.z[:n+1])
	for i := 0; i < n; i++ {
		g[i*stride] = ws.d[i]
	}
}

// dt1 computes the 1D distance transform under squared distance, lifting
// the sampled function f to its lower envelope of parabolas.
func dt1(f, d []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = -inf
	z[1] = +inf

	sect := func(q, p int) float64 {
		return ((f[q] + float64(q*q)) - (f[p] + float64(p*p))) /
			float64(2*q-2*p)
	}

	for q := 1; q < n; q++ {
		s := sect(q, v[k])
		for s <= z[k] {
			k--
			s = sect(q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = +inf
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}
