package geom

import (
	"errors"
	"math"
)

// ErrDegenerate is returned when a point set has no 3D convex hull, i.e.
// fewer than four distinct non-coplanar points.
var ErrDegenerate = errors.New("geom: point set has no 3D convex hull")

// HalfSpace is a hull facet plane with an inward-pointing unit normal.
// A point p is on the inner side when N.p - D >= -tol.
type HalfSpace struct {
	N Vec
	D float64
}

// Hull is the convex hull of a point set, represented by the inward
// half-spaces of its facets. This is the representation needed for voxel
// membership tests.
type Hull struct {
	Planes   []HalfSpace
	Centroid Vec
}

// face is a hull facet under construction. The normal points outward and is
// not normalized. The plane equation is n.x = d.
type face struct {
	a, b, c int
	n       Vec
	d       float64
}

func (f *face) dist(p Vec) float64 {
	return f.n.Dot(p) - f.d
}

func newFace(pts []Vec, a, b, c int, interior Vec) face {
	f := face{a: a, b: b, c: c}
	f.n = pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[a]))
	f.d = f.n.Dot(pts[a])
	if f.dist(interior) > 0 {
		f.b, f.c = f.c, f.b
		f.n = f.n.Scale(-1)
		f.d = -f.d
	}
	return f
}

// NewHull computes the convex hull of pts with an incremental algorithm and
// returns it as a set of inward half-spaces.
func NewHull(pts []Vec) (*Hull, error) {
	if len(pts) < 4 {
		return nil, ErrDegenerate
	}

	eps := hullEps(pts)
	i0, i1, i2, i3, ok := initialTetra(pts, eps)
	if !ok {
		return nil, ErrDegenerate
	}

	// The centroid of the starting tetrahedron stays interior to the hull as
	// it grows, so it can orient every face.
	interior := Centroid([]Vec{pts[i0], pts[i1], pts[i2], pts[i3]})

	faces := []face{
		newFace(pts, i0, i1, i2, interior),
		newFace(pts, i0, i1, i3, interior),
		newFace(pts, i0, i2, i3, interior),
		newFace(pts, i1, i2, i3, interior),
	}

	used := map[int]bool{i0: true, i1: true, i2: true, i3: true}
	for i := range pts {
		if used[i] {
			continue
		}
		faces = addPoint(pts, faces, i, interior, eps)
	}

	h := &Hull{Centroid: Centroid(pts)}
	for _, f := range faces {
		// Flip to inward so membership reads as a lower bound.
		n := f.n.Unit().Scale(-1)
		h.Planes = append(h.Planes, HalfSpace{N: n, D: n.Dot(pts[f.a])})
	}
	return h, nil
}

// Contains returns true if p lies inside the hull or within tol of its
// boundary.
func (h *Hull) Contains(p Vec, tol float64) bool {
	for _, hs := range h.Planes {
		if hs.N.Dot(p)-hs.D < -tol {
			return false
		}
	}
	return true
}

// addPoint extends the hull with pts[i], replacing the faces it can see.
func addPoint(pts []Vec, faces []face, i int, interior Vec, eps float64) []face {
	p := pts[i]

	kept := faces[:0:0]
	var visible []face
	for _, f := range faces {
		if f.dist(p) > eps {
			visible = append(visible, f)
		} else {
			kept = append(kept, f)
		}
	}
	if len(visible) == 0 {
		// Interior point.
		return faces
	}

	// Horizon edges are those of visible faces whose reverse belongs to no
	// visible face.
	edges := map[[2]int]bool{}
	for _, f := range visible {
		edges[[2]int{f.a, f.b}] = true
		edges[[2]int{f.b, f.c}] = true
		edges[[2]int{f.c, f.a}] = true
	}
	for e := range edges {
		if edges[[2]int{e[1], e[0]}] {
			continue
		}
		kept = append(kept, newFace(pts, e[0], e[1], i, interior))
	}
	return kept
}

// initialTetra finds four extreme non-coplanar points.
func initialTetra(pts []Vec, eps float64) (i0, i1, i2, i3 int, ok bool) {
	// Farthest pair from point 0, then farthest from that line, then from
	// that plane.
	i0 = 0
	best := 0.0
	for i := range pts {
		if d := pts[i].Sub(pts[i0]).Norm(); d > best {
			best, i1 = d, i
		}
	}
	if best <= eps {
		return 0, 0, 0, 0, false
	}

	dir := pts[i1].Sub(pts[i0])
	best = 0.0
	for i := range pts {
		if d := dir.Cross(pts[i].Sub(pts[i0])).Norm(); d > best {
			best, i2 = d, i
		}
	}
	if best <= eps {
		return 0, 0, 0, 0, false
	}

	n := dir.Cross(pts[i2].Sub(pts[i0]))
	best = 0.0
	for i := range pts {
		if d := math.Abs(n.Unit().Dot(pts[i].Sub(pts[i0]))); d > best {
			best, i3 = d, i
		}
	}
	if best <= eps {
		return 0, 0, 0, 0, false
	}
	return i0, i1, i2, i3, true
}

func hullEps(pts []Vec) float64 {
	max := 0.0
	for _, p := range pts {
		for d := 0; d < 3; d++ {
			if a := math.Abs(p[d]); a > max {
				max = a
			}
		}
	}
	return 1e-9 * (1 + max)
}
