package facet

import (
	"fibervox/geom"
)

// mask is a binary 2D raster stored x-major: cell (x, y) lives at x*ny + y.
// This mirrors the row-major [x][y] indexing of the facet image throughout
// the analyzer.
type mask struct {
	nx, ny int
	pix    []uint8
}

func newMask(nx, ny int) *mask {
	return &mask{nx: nx, ny: ny, pix: make([]uint8, nx*ny)}
}

func (m *mask) at(x, y int) uint8 { return m.pix[x*m.ny+y] }
func (m *mask) set(x, y int, v uint8) { m.pix[x*m.ny+y] = v }

func (m *mask) count() int {
	n := 0
	for _, p := range m.pix {
		n += int(p)
	}
	return n
}

// fillConvex sets every cell of m whose center lies inside the convex hull
// of the given points. With fewer than three hull points only the points
// themselves are marked.
func (m *mask) fillConvex(pts []geom.Vec2) {
	idx := geom.Hull2D(pts)
	if len(idx) < 3 {
		for _, p := range pts {
			x, y := int(p[0]+0.5), int(p[1]+0.5)
			if x >= 0 && x < m.nx && y >= 0 && y < m.ny {
				m.set(x, y, 1)
			}
		}
		return
	}

	hull := make([]geom.Vec2, len(idx))
	for i, j := range idx {
		hull[i] = pts[j]
	}

	const eps = 1e-9
	for x := 0; x < m.nx; x++ {
		for y := 0; y < m.ny; y++ {
			p := geom.Vec2{float64(x), float64(y)}
			inside := true
			for i := range hull {
				a, b := hull[i], hull[(i+1)%len(hull)]
				cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
				if cross < -eps {
					inside = false
					break
				}
			}
			if inside {
				m.set(x, y, 1)
			}
		}
	}
}

// region is a connected set of raster cells with the measurements the
// analyzer extracts from it.
type region struct {
	coords    [][2]int
	area      float64
	perimeter float64
	cx, cy    float64
}

// labelRegions finds the 4-connected regions of nonzero cells.
func (m *mask) labelRegions() []region {
	seen := make([]bool, len(m.pix))
	var regions []region

	var stack [][2]int
	for x := 0; x < m.nx; x++ {
		for y := 0; y < m.ny; y++ {
			i := x*m.ny + y
			if m.pix[i] == 0 || seen[i] {
				continue
			}

			r := region{}
			stack = append(stack[:0], [2]int{x, y})
			seen[i] = true
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				r.coords = append(r.coords, c)

				for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					px, py := c[0]+d[0], c[1]+d[1]
					if px < 0 || px >= m.nx || py < 0 || py >= m.ny {
						continue
					}
					j := px*m.ny + py
					if m.pix[j] != 0 && !seen[j] {
						seen[j] = true
						stack = append(stack, [2]int{px, py})
					}
				}
			}
			r.measure(m)
			regions = append(regions, r)
		}
	}
	return regions
}

// measure fills in area, centroid, and crack-length perimeter (the number
// of cell edges between the region and the background).
func (r *region) measure(m *mask) {
	r.area = float64(len(r.coords))
	edges := 0
	for _, c := range r.coords {
		r.cx += float64(c[0])
		r.cy += float64(c[1])
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			px, py := c[0]+d[0], c[1]+d[1]
			if px < 0 || px >= m.nx || py < 0 || py >= m.ny || m.at(px, py) == 0 {
				edges++
			}
		}
	}
	r.cx /= r.area
	r.cy /= r.area
	r.perimeter = float64(edges)
}

// nearest returns the index into coords of the cell closest to (x, y) by
// squared Euclidean distance.
func (r *region) nearest(x, y int) int {
	best, bestD := 0, int(^uint(0)>>1)
	for i, c := range r.coords {
		dx, dy := c[0]-x, c[1]-y
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
