/*package voxel rasterizes pore convex hulls into a shared label volume.

Each pore writes only cells inside its own hull's bounding box, and hulls
of a well-formed tessellation do not overlap, so the per-pore tasks write
disjoint regions and need no locks. Numerical gaps between adjacent hulls
are closed afterwards by FillGaps.*/
package voxel

import (
	"fibervox/geom"
	"fibervox/report"
)

// Unassigned is the label of a cell claimed by no pore hull.
const Unassigned int32 = -1

// LabelVolume is a dense grid of pore labels.
type LabelVolume struct {
	*geom.Grid
	Labels []int32
}

// NewLabelVolume returns a label volume with every cell unassigned.
func NewLabelVolume(g *geom.Grid) *LabelVolume {
	lv := &LabelVolume{Grid: g, Labels: make([]int32, g.Volume)}
	for i := range lv.Labels {
		lv.Labels[i] = Unassigned
	}
	return lv
}

// fillRadius and fillPasses control the gap-closing dilation. Each pass
// reaches 2 cells, and passes repeat until stable or the cap is hit; cells
// still unassigned afterwards are reported, not silently kept.
const (
	fillRadius = 2
	fillPasses = 4
)

// FillGaps assigns unlabeled cells the maximum label found within
// fillRadius, iterating until stable. It returns the number of cells left
// unassigned and records an UnassignedVoxel condition if that is nonzero.
func (lv *LabelVolume) FillGaps(rec *report.Recorder) int {
	idxs := []int{}
	for i, l := range lv.Labels {
		if l == Unassigned {
			idxs = append(idxs, i)
		}
	}

	fills := make([]int32, len(idxs))
	for pass := 0; pass < fillPasses && len(idxs) > 0; pass++ {
		changed := false
		for k, idx := range idxs {
			fills[k] = lv.neighborhoodMax(idx)
			if fills[k] != Unassigned {
				changed = true
			}
		}
		if !changed {
			break
		}

		// Write after the scan so a pass sees a consistent volume.
		next := idxs[:0]
		for k, idx := range idxs {
			if fills[k] == Unassigned {
				next = append(next, idx)
			} else {
				lv.Labels[idx] = fills[k]
			}
		}
		idxs = next
		fills = fills[:len(idxs)]
	}

	if len(idxs) > 0 && rec != nil {
		rec.Add(report.UnassignedVoxel, "grid", -1,
			"%d cells unassigned after %d fill passes", len(idxs), fillPasses)
	}
	return len(idxs)
}

func (lv *LabelVolume) neighborhoodMax(idx int) int32 {
	x, y, z := lv.Coords(idx)
	max := Unassigned
	for dz := -fillRadius; dz <= fillRadius; dz++ {
		for dy := -fillRadius; dy <= fillRadius; dy++ {
			for dx := -fillRadius; dx <= fillRadius; dx++ {
				j, ok := lv.IdxCheck(x+dx, y+dy, z+dz)
				if !ok {
					continue
				}
				if l := lv.Labels[j]; l > max {
					max = l
				}
			}
		}
	}
	return max
}
