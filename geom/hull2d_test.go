package geom

import (
	"testing"
)

func TestHull2DSquare(t *testing.T) {
	// Square corners plus an interior point and a collinear edge midpoint.
	pts := []Vec2{
		{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0.5, 0.5}, {0.5, 0},
	}
	idx := Hull2D(pts)
	if len(idx) != 4 {
		t.Fatalf("Hull2D -> %d points instead of 4: %v", len(idx), idx)
	}
	for _, i := range idx {
		if i == 4 || i == 5 {
			t.Errorf("non-corner point %d kept on hull %v", i, idx)
		}
	}

	// Counterclockwise orientation.
	area := 0.0
	for k := range idx {
		a, b := pts[idx[k]], pts[idx[(k+1)%len(idx)]]
		area += a[0]*b[1] - b[0]*a[1]
	}
	if area <= 0 {
		t.Errorf("hull is not counterclockwise, signed area %g", area/2)
	}
}

func TestHull2DSmallSets(t *testing.T) {
	if got := Hull2D([]Vec2{}); len(got) != 0 {
		t.Errorf("empty set -> %v", got)
	}
	if got := Hull2D([]Vec2{{1, 1}, {2, 2}}); len(got) != 2 {
		t.Errorf("two points -> %v", got)
	}
}

func TestDominantPlane(t *testing.T) {
	table := []struct {
		pts     []Vec
		dropped int
	}{
		{[]Vec{{0, 0, 5}, {1, 0, 5}, {1, 1, 5}, {0, 1, 5}}, 2},
		{[]Vec{{2, 0, 0}, {2, 1, 0}, {2, 1, 1}, {2, 0, 1}}, 0},
		{[]Vec{{0, 3, 0}, {1, 3, 0}, {1, 3, 1}, {0, 3, 1}}, 1},
	}

	for i, test := range table {
		flat, dropped := DominantPlane(test.pts)
		if dropped != test.dropped {
			t.Errorf("%d) dropped axis %d instead of %d",
				i+1, dropped, test.dropped)
		}
		if len(flat) != len(test.pts) {
			t.Errorf("%d) %d projected points instead of %d",
				i+1, len(flat), len(test.pts))
		}
	}
}

func TestHullOrderPerimeter(t *testing.T) {
	// Shuffled square in the z = 2 plane.
	pts := []Vec{{1, 1, 2}, {0, 0, 2}, {1, 0, 2}, {0, 1, 2}}
	out := HullOrder(pts)
	if len(out) != 4 {
		t.Fatalf("HullOrder -> %d points instead of 4", len(out))
	}

	// Every consecutive pair must be an edge of length 1, so the walk is a
	// perimeter, not a diagonal zigzag.
	for i := range out {
		d := out[(i+1)%4].Sub(out[i]).Norm()
		if d < 0.99 || d > 1.01 {
			t.Errorf("step %d has length %g, not an edge", i, d)
		}
	}
}
