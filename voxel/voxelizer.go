package voxel

import (
	"log"
	"runtime"

	"fibervox/geom"
	"fibervox/report"
	"fibervox/tess"
)

// hullTol is the half-space slack, in voxel units, absorbing the rounding
// of hull vertices onto the grid.
const hullTol = 1e-7

// Voxelize rasterizes every pore hull into a shared label volume over the
// tessellation's grid, then closes numerical gaps between adjacent hulls.
// Degenerate hulls are recorded and contribute no cells.
func Voxelize(ts *tess.Tessellation, workers int, rec *report.Recorder) *LabelVolume {
	g := ts.Grid()
	lv := NewLabelVolume(g)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := make(chan int, workers)
	for id := 0; id < workers; id++ {
		go func(id int) {
			for pi := id; pi < len(ts.Pores); pi += workers {
				if pi%64 == 0 {
					log.Printf("Voxelized %d/%d pores", pi, len(ts.Pores))
				}
				voxelizePore(lv, &ts.Pores[pi], rec)
			}
			out <- id
		}(id)
	}
	for i := 0; i < workers; i++ {
		<-out
	}

	lv.FillGaps(rec)
	return lv
}

// voxelizePore labels the cells inside one pore's hull. The hull half-space
// test runs in voxel units over the pore's local bounding box only.
func voxelizePore(lv *LabelVolume, p *tess.Pore, rec *report.Recorder) {
	verts := tess.DedupVerts(p.Verts)
	scaled := make([]geom.Vec, len(verts))
	for i, v := range verts {
		scaled[i] = lv.VoxelCoords(v)
	}

	hull, err := geom.NewHull(scaled)
	if err != nil {
		rec.Add(report.DegenerateFacet, "pore", p.Id,
			"hull construction failed on %d vertices: %v", len(scaled), err)
		return
	}

	cb := geom.BoundsOf(scaled).Clamp(lv.Grid)
	for z := cb.Origin[2]; z < cb.Origin[2]+cb.Width[2]; z++ {
		for y := cb.Origin[1]; y < cb.Origin[1]+cb.Width[1]; y++ {
			for x := cb.Origin[0]; x < cb.Origin[0]+cb.Width[0]; x++ {
				pt := geom.Vec{float64(x), float64(y), float64(z)}
				if hull.Contains(pt, hullTol) {
					lv.Labels[lv.Idx(x, y, z)] = int32(p.Id)
				}
			}
		}
	}
}
