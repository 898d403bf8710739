/*package tess holds the immutable tessellation snapshot consumed by the
voxel pipeline: pore convex hull vertices, throat facet vertices, and the
two global scalars (fiber radius and voxel resolution).

The snapshot is read-only once constructed, which is what lets every
downstream stage fan work out over it without locks.*/
package tess

import (
	"fmt"
	"math"

	"fibervox/geom"
)

// Pore is a Voronoi cell: an integer id and the unordered vertices of its
// convex hull, in physical coordinates.
type Pore struct {
	Id    int
	Verts []geom.Vec
}

// Throat is the shared facet between two adjacent pores.
type Throat struct {
	Id           int
	Pore1, Pore2 int
	Verts        []geom.Vec
}

// Tessellation is the complete snapshot.
type Tessellation struct {
	Pores   []Pore
	Throats []Throat

	FiberRadius float64
	Resolution  float64
}

// Validate checks the global scalars and entity shapes.
func (t *Tessellation) Validate() error {
	if t.FiberRadius <= 0 {
		return fmt.Errorf("tess: fiber radius must be > 0, got %g", t.FiberRadius)
	}
	if t.Resolution <= 0 {
		return fmt.Errorf("tess: resolution must be > 0, got %g", t.Resolution)
	}
	if len(t.Pores) == 0 {
		return fmt.Errorf("tess: no pores")
	}
	for _, th := range t.Throats {
		if len(th.Verts) < 3 {
			return fmt.Errorf("tess: throat %d has %d facet vertices, need >= 3",
				th.Id, len(th.Verts))
		}
	}
	return nil
}

// Bounds returns the axis-aligned physical box covering all pore hull
// vertices.
func (t *Tessellation) Bounds() (min, max geom.Vec) {
	first := true
	for _, p := range t.Pores {
		for _, v := range p.Verts {
			if first {
				min, max = v, v
				first = false
				continue
			}
			for d := 0; d < 3; d++ {
				if v[d] < min[d] {
					min[d] = v[d]
				}
				if v[d] > max[d] {
					max[d] = v[d]
				}
			}
		}
	}
	return min, max
}

// Grid returns the shared voxel grid covering Bounds at the snapshot's
// resolution.
func (t *Tessellation) Grid() *geom.Grid {
	min, max := t.Bounds()
	var width [3]int
	for d := 0; d < 3; d++ {
		width[d] = int(math.Round((max[d]-min[d])/t.Resolution)) + 1
	}
	return geom.NewGrid(min, width, t.Resolution)
}

// DedupVerts rounds vertices to 6 decimals and removes duplicates, keeping
// first-seen order. Voronoi constructions commonly emit near-identical
// vertices that would break hull construction.
func DedupVerts(verts []geom.Vec) []geom.Vec {
	seen := make(map[geom.Vec]bool, len(verts))
	out := make([]geom.Vec, 0, len(verts))
	for _, v := range verts {
		r := geom.Vec{round6(v[0]), round6(v[1]), round6(v[2])}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
