package geom

import (
	"sort"
)

// Vec2 is a two dimensional vector.
type Vec2 [2]float64

// Hull2D returns the indices of the convex hull of a 2D point set in
// counterclockwise order, computed with the monotone chain algorithm.
// Collinear points on the hull boundary are dropped. Fewer than three
// distinct points give a truncated result.
func Hull2D(pts []Vec2) []int {
	n := len(pts)
	if n < 3 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := pts[order[i]], pts[order[j]]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})

	cross := func(o, a, b int) float64 {
		return (pts[a][0]-pts[o][0])*(pts[b][1]-pts[o][1]) -
			(pts[a][1]-pts[o][1])*(pts[b][0]-pts[o][0])
	}

	hull := make([]int, 0, 2*n)
	// Lower chain.
	for _, i := range order {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], i) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	// Upper chain.
	lower := len(hull) + 1
	for k := n - 2; k >= 0; k-- {
		i := order[k]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], i) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	return hull[:len(hull)-1]
}

// DominantPlane projects coplanar-ish 3D points to 2D by dropping the axis
// with the smallest spread. It returns the projected points and the dropped
// axis.
func DominantPlane(pts []Vec) (flat []Vec2, dropped int) {
	var mean, varsum Vec
	mean = Centroid(pts)
	for _, p := range pts {
		d := p.Sub(mean)
		for k := 0; k < 3; k++ {
			varsum[k] += d[k] * d[k]
		}
	}

	dropped = 0
	for k := 1; k < 3; k++ {
		if varsum[k] < varsum[dropped] {
			dropped = k
		}
	}

	u, v := (dropped+1)%3, (dropped+2)%3
	if u > v {
		u, v = v, u
	}
	flat = make([]Vec2, len(pts))
	for i, p := range pts {
		flat[i] = Vec2{p[u], p[v]}
	}
	return flat, dropped
}

// HullOrder returns coplanar 3D points sorted into convex hull order on
// their dominant projection plane.
func HullOrder(pts []Vec) []Vec {
	flat, _ := DominantPlane(pts)
	idx := Hull2D(flat)
	out := make([]Vec, len(idx))
	for i, j := range idx {
		out[i] = pts[j]
	}
	return out
}
