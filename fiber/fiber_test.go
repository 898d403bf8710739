package fiber

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fibervox/geom"
	"fibervox/report"
	"fibervox/tess"
)

func TestVoxelRadius(t *testing.T) {
	table := []struct {
		fiberRad, res float64
		r             int
	}{
		{5e-6, 2e-6, 2},
		{3e-6, 2e-6, 1},
		{1e-6, 2e-6, 0},
		{0.5e-6, 2e-6, 0},
		{10e-6, 2e-6, 5},
	}

	for i, test := range table {
		r := VoxelRadius(test.fiberRad, test.res)
		if r != test.r {
			t.Errorf("%d) VoxelRadius(%g, %g) -> %d instead of %d",
				i+1, test.fiberRad, test.res, r, test.r)
		}
	}
}

// testTessellation is a unit cube pore crossed by a square throat facet in
// the z = 0.5 plane.
func testTessellation(fiberRad, res float64) *tess.Tessellation {
	p := tess.Pore{Id: 0}
	for _, d := range []geom.Vec{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	} {
		p.Verts = append(p.Verts, d)
	}
	th := tess.Throat{Id: 0, Pore1: 0, Pore2: 1, Verts: []geom.Vec{
		{0, 0, 0.5}, {1, 0, 0.5}, {1, 1, 0.5}, {0, 1, 0.5},
	}}
	return &tess.Tessellation{
		Pores:       []tess.Pore{p},
		Throats:     []tess.Throat{th},
		FiberRadius: fiberRad,
		Resolution:  res,
	}
}

func TestBuildClassifies(t *testing.T) {
	ts := testTessellation(0.15, 0.1)
	rec := &report.Recorder{}
	pv, df, err := Build(ts, Opts{Workers: 2}, rec)
	assert.NoError(t, err)

	g := ts.Grid()
	assert.Equal(t, g.Volume, len(pv.Phase))
	assert.Equal(t, g.Volume, len(df.D))

	// A voxel on the facet's edge loop is a seed, hence fiber phase.
	assert.Equal(t, uint8(0), pv.Phase[g.Idx(0, 0, 5)], "seed voxel")
	// A corner far from the z = 0.5 plane is pore phase.
	assert.Equal(t, uint8(1), pv.Phase[g.Idx(5, 5, 0)], "far voxel")

	n := pv.PoreCount()
	assert.Greater(t, n, 0, "pore phase empty")
	assert.Less(t, n, g.Volume, "fiber phase empty")

	// The distance field is the clamped complement of the fiber phase.
	for i := range pv.Phase {
		if pv.Phase[i] == 0 {
			assert.Equal(t, float32(0), df.D[i], "fiber cell with distance")
		} else {
			assert.Greater(t, df.D[i], float32(0), "pore cell at distance 0")
		}
	}
}

func TestBuildFiberRadiusMonotone(t *testing.T) {
	rec := &report.Recorder{}
	thin, _, err := Build(testTessellation(0.08, 0.1), Opts{Workers: 1}, rec)
	assert.NoError(t, err)
	thick, _, err := Build(testTessellation(0.35, 0.1), Opts{Workers: 1}, rec)
	assert.NoError(t, err)

	assert.Greater(t, thin.PoreCount(), thick.PoreCount(),
		"thicker fiber should consume more pore space")
	for i := range thick.Phase {
		if thin.Phase[i] == 0 {
			assert.Equal(t, uint8(0), thick.Phase[i],
				"thin fiber cell %d not inside thick fiber", i)
		}
	}
}

func TestBuildChunkedMatchesFull(t *testing.T) {
	ts := testTessellation(0.15, 0.1)
	rec := &report.Recorder{}

	full, _, err := Build(ts, Opts{Workers: 2}, rec)
	assert.NoError(t, err)
	chunked, _, err := Build(ts, Opts{
		Workers: 2, ChunkLen: 4, ForceChunked: true,
	}, rec)
	assert.NoError(t, err)

	assert.Equal(t, full.Phase, chunked.Phase,
		"chunk decomposition changed the phase classification")
}

func TestBuildInsufficientMemory(t *testing.T) {
	ts := testTessellation(0.15, 0.1)
	rec := &report.Recorder{}
	_, _, err := Build(ts, Opts{
		ChunkLen: 100, MemBudgetMB: 1, ForceChunked: true,
	}, rec)
	assert.Equal(t, ErrInsufficientMemory, err)
}

func TestDecomposeCoversGrid(t *testing.T) {
	g := geom.NewGrid(geom.Vec{}, [3]int{11, 7, 5}, 1.0)
	chunks := decompose(g, 4, 2)

	covered := make([]int, g.Volume)
	for _, c := range chunks {
		for z := c.core.Origin[2]; z < c.core.Origin[2]+c.core.Width[2]; z++ {
			for y := c.core.Origin[1]; y < c.core.Origin[1]+c.core.Width[1]; y++ {
				for x := c.core.Origin[0]; x < c.core.Origin[0]+c.core.Width[0]; x++ {
					covered[g.Idx(x, y, z)]++
				}
			}
		}
	}
	for i, n := range covered {
		if n != 1 {
			t.Fatalf("cell %d covered %d times", i, n)
		}
	}

	for i, c := range chunks {
		w := c.window
		if w.Origin[0] < 0 || w.Origin[1] < 0 || w.Origin[2] < 0 {
			t.Errorf("chunk %d window origin %v out of bounds", i, w.Origin)
		}
		for d := 0; d < 3; d++ {
			if w.Origin[d]+w.Width[d] > g.Width[d] {
				t.Errorf("chunk %d window exceeds the grid on axis %d", i, d)
			}
		}
	}
}
