package geom

import (
	"math/rand"
	"testing"
)

func cubeVerts() []Vec {
	return []Vec{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
}

func TestHullCube(t *testing.T) {
	h, err := NewHull(cubeVerts())
	if err != nil {
		t.Fatalf("NewHull(cube) failed: %v", err)
	}

	table := []struct {
		p  Vec
		in bool
	}{
		{Vec{0.5, 0.5, 0.5}, true},
		{Vec{0, 0, 0}, true},
		{Vec{1, 1, 1}, true},
		{Vec{0.5, 0.5, 0}, true},
		{Vec{1.01, 0.5, 0.5}, false},
		{Vec{-0.01, 0.5, 0.5}, false},
		{Vec{0.5, 0.5, 1.5}, false},
		{Vec{2, 2, 2}, false},
	}

	for i, test := range table {
		if h.Contains(test.p, 1e-7) != test.in {
			t.Errorf("%d) Contains(%v) -> %v instead of %v",
				i+1, test.p, !test.in, test.in)
		}
	}
}

func TestHullInteriorPointsIgnored(t *testing.T) {
	pts := append(cubeVerts(), Vec{0.5, 0.5, 0.5}, Vec{0.2, 0.9, 0.1})
	h, err := NewHull(pts)
	if err != nil {
		t.Fatalf("NewHull failed: %v", err)
	}
	if !h.Contains(Vec{0.99, 0.99, 0.99}, 1e-7) {
		t.Errorf("interior points shrank the hull")
	}
	if h.Contains(Vec{1.1, 0.5, 0.5}, 1e-7) {
		t.Errorf("interior points grew the hull")
	}
}

func TestHullTetraRandomPoints(t *testing.T) {
	tet := []Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	h, err := NewHull(tet)
	if err != nil {
		t.Fatalf("NewHull(tetra) failed: %v", err)
	}

	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		a, b, c := rng.Float64(), rng.Float64(), rng.Float64()
		if a+b+c > 1 {
			continue
		}
		p := Vec{a, b, c}
		if !h.Contains(p, 1e-7) {
			t.Fatalf("interior point %v reported outside", p)
		}
	}
	if h.Contains(Vec{0.5, 0.5, 0.5}, 1e-7) {
		t.Errorf("point beyond the diagonal face reported inside")
	}
}

func TestHullDegenerate(t *testing.T) {
	table := [][]Vec{
		{},
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}},
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1}},
	}

	for i, pts := range table {
		if _, err := NewHull(pts); err != ErrDegenerate {
			t.Errorf("%d) NewHull(%v) -> %v instead of ErrDegenerate",
				i+1, pts, err)
		}
	}
}

func TestHullTolerance(t *testing.T) {
	h, err := NewHull(cubeVerts())
	if err != nil {
		t.Fatalf("NewHull(cube) failed: %v", err)
	}
	p := Vec{1 + 1e-8, 0.5, 0.5}
	if !h.Contains(p, 1e-7) {
		t.Errorf("point within tol of a face reported outside")
	}
	if h.Contains(p, 1e-9) {
		t.Errorf("point beyond tol of a face reported inside")
	}
}
