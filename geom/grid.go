package geom

import (
	"math"
)

// Grid provides an interface for reasoning over a 1D slice as if it were a
// 3D voxel grid over a physical bounding box. The physical position of cell
// (x, y, z) is PhysOrigin + Resolution*(x, y, z).
type Grid struct {
	CellBounds
	Length, Area, Volume int

	PhysOrigin Vec
	Resolution float64
}

// CellBounds represents a bounding box aligned to grid cells.
type CellBounds struct {
	Origin, Width [3]int
}

// NewGrid returns a grid of the given cell counts anchored at the given
// physical origin.
func NewGrid(origin Vec, width [3]int, resolution float64) *Grid {
	g := &Grid{}
	g.Init(origin, width, resolution)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(origin Vec, width [3]int, resolution float64) {
	g.Origin = [3]int{0, 0, 0}
	g.Width = width

	g.Length = width[0]
	g.Area = width[0] * width[1]
	g.Volume = width[0] * width[1] * width[2]

	g.PhysOrigin = origin
	g.Resolution = resolution
}

// Idx returns the grid index corresponding to a set of cell coordinates.
func (g *Grid) Idx(x, y, z int) int {
	return x + y*g.Length + z*g.Area
}

// IdxCheck returns an index and true if the given coordinates are valid and
// false otherwise.
func (g *Grid) IdxCheck(x, y, z int) (idx int, ok bool) {
	if !g.BoundsCheck(x, y, z) {
		return -1, false
	}
	return g.Idx(x, y, z), true
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		x < g.Width[0] && y < g.Width[1] && z < g.Width[2]
}

// Coords returns the x, y, z cell coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (x, y, z int) {
	x = idx % g.Length
	y = (idx % g.Area) / g.Length
	z = idx / g.Area
	return x, y, z
}

// VoxelOf returns the cell coordinates of the voxel containing the physical
// position p. The coordinates may be out of bounds.
func (g *Grid) VoxelOf(p Vec) (x, y, z int) {
	x = int(math.Round((p[0] - g.PhysOrigin[0]) / g.Resolution))
	y = int(math.Round((p[1] - g.PhysOrigin[1]) / g.Resolution))
	z = int(math.Round((p[2] - g.PhysOrigin[2]) / g.Resolution))
	return x, y, z
}

// PosOf returns the physical position of the cell (x, y, z).
func (g *Grid) PosOf(x, y, z int) Vec {
	return Vec{
		g.PhysOrigin[0] + g.Resolution*float64(x),
		g.PhysOrigin[1] + g.Resolution*float64(y),
		g.PhysOrigin[2] + g.Resolution*float64(z),
	}
}

// VoxelCoords returns the position of p in voxel units relative to the grid
// origin without rounding.
func (g *Grid) VoxelCoords(p Vec) Vec {
	return p.Sub(g.PhysOrigin).Scale(1 / g.Resolution)
}

// Clamp restricts cb to the cells of g and returns the result.
func (cb CellBounds) Clamp(g *Grid) CellBounds {
	for d := 0; d < 3; d++ {
		if cb.Origin[d] < 0 {
			cb.Width[d] += cb.Origin[d]
			cb.Origin[d] = 0
		}
		if cb.Origin[d]+cb.Width[d] > g.Width[d] {
			cb.Width[d] = g.Width[d] - cb.Origin[d]
		}
		if cb.Width[d] < 0 {
			cb.Width[d] = 0
		}
	}
	return cb
}

// BoundsOf returns the cell-aligned bounding box of a set of points given in
// voxel units.
func BoundsOf(pts []Vec) CellBounds {
	if len(pts) == 0 {
		return CellBounds{}
	}
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		for d := 0; d < 3; d++ {
			if p[d] < min[d] {
				min[d] = p[d]
			}
			if p[d] > max[d] {
				max[d] = p[d]
			}
		}
	}

	cb := CellBounds{}
	for d := 0; d < 3; d++ {
		cb.Origin[d] = int(math.Floor(min[d]))
		cb.Width[d] = int(math.Ceil(max[d])) - cb.Origin[d] + 1
	}
	return cb
}
