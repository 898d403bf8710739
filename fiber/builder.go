/*package fiber classifies the voxel grid into fiber phase and pore phase.

Throat facet edges are rasterized into seed voxels, and a Euclidean
distance transform of the seed volume thickens the fiber skeleton to the
physical fiber radius. The clamped distance field is kept for the pore
indiameter queries downstream.*/
package fiber

import (
	"errors"
	"log"
	"math"
	"runtime"

	"fibervox/edt"
	"fibervox/geom"
	"fibervox/report"
	"fibervox/tess"
)

// ErrInsufficientMemory is returned when the domain exceeds the memory
// budget even under chunked processing. There is no further automatic
// degradation.
var ErrInsufficientMemory = errors.New(
	"fiber: domain exceeds memory budget even when chunked")

// Opts controls the build. Zero values select the defaults.
type Opts struct {
	// ChunkLen is the cubic chunk edge length, in voxels, used when the
	// full-resolution footprint exceeds the budget.
	ChunkLen int
	// MemBudgetMB caps the estimated working-set size.
	MemBudgetMB int
	// Workers sets the chunk task pool size.
	Workers int
	// ForceChunked takes the chunked path regardless of the estimate. Used
	// to test that chunk decomposition does not change the result.
	ForceChunked bool
}

const (
	defaultChunkLen    = 100
	defaultMemBudgetMB = 4096

	// bytesPerCell estimates the working set per voxel: seed and phase
	// bytes, float32 distance, and the transform's float64 scratch.
	bytesPerCell = 14

	// haloFactor scales the fiber radius into the chunk halo width, so a
	// chunk's own transform is not truncated near seeds just outside its
	// core.
	haloFactor = 5
)

// PhaseVolume labels every voxel as fiber phase (0) or pore phase (1).
type PhaseVolume struct {
	*geom.Grid
	Phase []uint8
}

// DistField holds, for every voxel, the distance in voxels to the fiber
// surface, clamped to zero inside the fiber.
type DistField struct {
	*geom.Grid
	D []float32
}

// PoreCount returns the number of pore-phase voxels.
func (pv *PhaseVolume) PoreCount() int {
	n := 0
	for _, p := range pv.Phase {
		n += int(p)
	}
	return n
}

// Build seeds the fiber skeleton, selects the full or chunked strategy from
// the estimated memory footprint, and classifies every voxel.
func Build(ts *tess.Tessellation, opts Opts, rec *report.Recorder) (
	*PhaseVolume, *DistField, error,
) {
	if opts.ChunkLen <= 0 {
		opts.ChunkLen = defaultChunkLen
	}
	if opts.MemBudgetMB <= 0 {
		opts.MemBudgetMB = defaultMemBudgetMB
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	g := ts.Grid()
	seeds := seedVolume(ts, g, rec)
	r := VoxelRadius(ts.FiberRadius, ts.Resolution)

	pv := &PhaseVolume{Grid: g, Phase: make([]uint8, g.Volume)}
	df := &DistField{Grid: g, D: make([]float32, g.Volume)}

	budget := int64(opts.MemBudgetMB) << 20
	if !opts.ForceChunked && int64(g.Volume)*bytesPerCell <= budget {
		d := edt.Transform3(seeds, g.Width)
		classify(d, r, pv.Phase, df.D)
		return pv, df, nil
	}

	log.Printf("Domain of %d voxels exceeds budget, chunking with edge %d",
		g.Volume, opts.ChunkLen)
	if err := buildChunked(seeds, g, r, opts, budget, pv, df); err != nil {
		return nil, nil, err
	}
	return pv, df, nil
}

// VoxelRadius converts the physical fiber radius to voxel units.
func VoxelRadius(fiberRad, resolution float64) int {
	r := int(math.Round((fiberRad - resolution/2) / resolution))
	if r < 0 {
		r = 0
	}
	return r
}

// classify thresholds the raw distances at the fiber radius and keeps the
// clamped remainder as the pore-space distance field.
func classify(d []float32, r int, phase []uint8, field []float32) {
	fr := float32(r)
	for i, di := range d {
		if di <= fr {
			phase[i] = 0
			field[i] = 0
		} else {
			phase[i] = 1
			field[i] = di - fr
		}
	}
}

// seedVolume rasterizes every throat facet's edges into seed voxels
// (value 0) of a volume that is 1 elsewhere.
func seedVolume(ts *tess.Tessellation, g *geom.Grid, rec *report.Recorder) []uint8 {
	seeds := make([]uint8, g.Volume)
	for i := range seeds {
		seeds[i] = 1
	}

	step := ts.Resolution / 2
	dropped := 0
	for ti := range ts.Throats {
		th := &ts.Throats[ti]
		verts := geom.HullOrder(tess.DedupVerts(th.Verts))
		if len(verts) < 2 {
			rec.Add(report.DegenerateFacet, "throat", th.Id,
				"%d distinct facet vertices", len(verts))
			continue
		}
		dropped += seedPolygon(seeds, g, verts, step)
	}
	if dropped > 0 {
		rec.Add(report.OutOfBoundsSeed, "grid", -1,
			"%d seed points rounded outside the domain and were dropped", dropped)
	}
	return seeds
}

// seedPolygon walks the closed polygon's edges at the given physical step,
// marking each sampled point's voxel. It returns the number of samples that
// fell outside the grid.
func seedPolygon(seeds []uint8, g *geom.Grid, verts []geom.Vec, step float64) int {
	dropped := 0
	prevIdx := -1
	for i := range verts {
		a := verts[(i+len(verts)-1)%len(verts)]
		edge := verts[i].Sub(a)
		n := int(math.Ceil(edge.Norm() / step))
		if n < 2 {
			n = 2
		}
		for k := 0; k < n; k++ {
			t := float64(k) / float64(n-1)
			x, y, z := g.VoxelOf(a.Add(edge.Scale(t)))
			idx, ok := g.IdxCheck(x, y, z)
			if !ok {
				dropped++
				continue
			}
			if idx != prevIdx {
				seeds[idx] = 0
				prevIdx = idx
			}
		}
	}
	return dropped
}
