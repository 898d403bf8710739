/*package facet measures throat cross-sections. Each facet is rotated into
the xy plane, rasterized at a fixed size, eroded by the fiber radius via a
distance transform, measured, and mapped back into the original frame.*/
package facet

import (
	"log"
	"math"
	"runtime"

	"fibervox/edt"
	"fibervox/geom"
	"fibervox/report"
	"fibervox/tess"
)

// DefaultRasterSize is the facet raster's longer edge, in cells. Fixing it
// bounds image memory and keeps rasterization precision independent of the
// facet's absolute size.
const DefaultRasterSize = 200

// alignEps decides when a facet normal already lies along the reference
// axis and rotation can be skipped.
const alignEps = 1e-12

// Result holds one throat's measured cross-section geometry, in physical
// units and the original 3D frame. An occluded or degenerate throat has
// zero values, an empty Offset list, and Occluded set.
//
// A facet whose eroded cross-section splits into several disjoint regions
// also degrades to the zero result. A genuinely split channel has nonzero
// total area, so this is a known limitation kept for compatibility with
// the zero-result convention, not physics.
type Result struct {
	Area, Perimeter, EquivDiameter, Inradius float64
	Centroid, Incenter                       geom.Vec
	Offset                                   []geom.Vec
	Normal                                   geom.Vec
	Occluded                                 bool
}

// Analyzer carries the fixed parameters of the facet analysis.
type Analyzer struct {
	RasterSize int
	FiberRad   float64
	// DebugDir, when set, receives a PNG of each eroded facet mask.
	DebugDir string
}

// Normal returns the facet's unit normal, computed from its hull-ordered
// vertices. The sign is arbitrary.
func Normal(verts []geom.Vec) geom.Vec {
	sorted := geom.HullOrder(verts)
	if len(sorted) < 3 {
		return geom.Vec{}
	}
	v1 := sorted[len(sorted)-1].Sub(sorted[0])
	v2 := sorted[1].Sub(sorted[0])
	return v1.Cross(v2).Unit()
}

// AnalyzeAll runs the analyzer over every throat with a worker pool,
// returning results indexed like ts.Throats.
func AnalyzeAll(
	ts *tess.Tessellation, rasterSize int, debugDir string,
	workers int, rec *report.Recorder,
) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	a := &Analyzer{
		RasterSize: rasterSize, FiberRad: ts.FiberRadius, DebugDir: debugDir,
	}

	results := make([]Result, len(ts.Throats))
	out := make(chan int, workers)
	for id := 0; id < workers; id++ {
		go func(id int) {
			for ti := id; ti < len(ts.Throats); ti += workers {
				if ti%64 == 0 {
					log.Printf("Analyzed %d/%d throats", ti, len(ts.Throats))
				}
				th := &ts.Throats[ti]
				results[ti] = a.Analyze(th.Id, th.Verts, rec)
			}
			out <- id
		}(id)
	}
	for i := 0; i < workers; i++ {
		<-out
	}
	return results
}

// Analyze measures a single throat facet.
func (a *Analyzer) Analyze(id int, verts []geom.Vec, rec *report.Recorder) Result {
	res := a.RasterSize
	if res <= 0 {
		res = DefaultRasterSize
	}

	verts = tess.DedupVerts(verts)
	normal := Normal(verts)
	if normal.Norm() == 0 {
		rec.Add(report.DegenerateFacet, "throat", id,
			"%d distinct facet vertices, no plane", len(verts))
		return Result{Occluded: true}
	}

	// Facets on domain boundaries are often already axis-aligned; skip the
	// rotation then.
	zAxis := geom.Vec{0, 0, 1}
	angle := geom.AngleBetween(normal, zAxis)
	rotated := angle > alignEps && math.Pi-angle > alignEps
	var m geom.Mat3
	facet := verts
	if rotated {
		m = geom.RotationBetween(normal, zAxis)
		facet = make([]geom.Vec, len(verts))
		for i, v := range verts {
			facet[i] = m.Apply(v)
		}
	}

	// Project to 2D and translate the minimum corner to the origin.
	tx, ty := facet[0][0], facet[0][1]
	maxX, maxY := tx, ty
	for _, v := range facet[1:] {
		tx = math.Min(tx, v[0])
		ty = math.Min(ty, v[1])
		maxX = math.Max(maxX, v[0])
		maxY = math.Max(maxY, v[1])
	}
	pts := make([]geom.Vec2, len(facet))
	for i, v := range facet {
		pts[i] = geom.Vec2{v[0] - tx, v[1] - ty}
	}
	spanX, spanY := maxX-tx, maxY-ty
	maxSpan := math.Max(spanX, spanY)
	if maxSpan == 0 {
		rec.Add(report.DegenerateFacet, "throat", id, "facet has no extent")
		return Result{Normal: normal, Occluded: true}
	}

	zPlane := planeCoord(id, facet, maxSpan, rec)

	// Scale so the larger extent matches the raster, and the fiber radius
	// with it.
	f := float64(res) / maxSpan
	r := f * a.FiberRad
	if r > float64(res)/2 {
		// Fiber thicker than the throat can accommodate.
		rec.Add(report.Occluded, "throat", id,
			"scaled fiber radius %.1f exceeds half raster", r)
		return Result{Normal: normal, Occluded: true}
	}

	intPts := make([][2]int, len(pts))
	for i := range pts {
		pts[i][0] *= f
		pts[i][1] *= f
		intPts[i] = [2]int{
			int(math.Round(pts[i][0])), int(math.Round(pts[i][1])),
		}
	}
	nx := int(math.Ceil(spanX*f)) + 1
	ny := int(math.Ceil(spanY*f)) + 1

	// Pad one cell on every side so the hull fill and erosion see
	// background beyond the facet boundary.
	padded := newMask(nx+2, ny+2)
	padPts := make([]geom.Vec2, len(pts))
	for i := range pts {
		padPts[i] = geom.Vec2{pts[i][0] + 1, pts[i][1] + 1}
	}
	padded.fillConvex(padPts)

	// Erosion by distance: cheaper than a morphological erosion with a
	// disk, and the transform doubles as the inradius source later.
	d := edt.Transform2(padded.pix, padded.ny, padded.nx)
	eroded := newMask(padded.nx, padded.ny)
	for i := range d {
		if d[i] > r {
			eroded.pix[i] = 1
		}
	}
	if eroded.count() < 3 {
		rec.Add(report.Occluded, "throat", id,
			"fewer than 3 cells survive erosion")
		return Result{Normal: normal, Occluded: true}
	}

	// Strip the padding before measuring so coordinates line up with the
	// rasterized vertices.
	cropped := newMask(nx, ny)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			cropped.set(x, y, eroded.at(x+1, y+1))
		}
	}
	if a.DebugDir != "" {
		a.dumpMask(id, cropped)
	}

	regions := cropped.labelRegions()
	if len(regions) != 1 {
		rec.Add(report.MultiRegionThroat, "throat", id,
			"erosion split the facet into %d regions", len(regions))
		return Result{Normal: normal}
	}
	reg := &regions[0]

	// Second transform, on the still-padded eroded mask, locates the
	// inscribed circle. The pad ring keeps a seed present even when the
	// erosion removed nothing.
	d2 := edt.Transform2(eroded.pix, eroded.ny, eroded.nx)
	inIdx, inMax := 0, 0.0
	for i, v := range d2 {
		if v > inMax {
			inIdx, inMax = i, v
		}
	}
	inX := float64(inIdx/eroded.ny) - 1
	inY := float64(inIdx%eroded.ny) - 1

	// Offset vertices: the surviving cells nearest each original vertex.
	offIdx := []int{}
	for _, p := range intPts {
		k := reg.nearest(p[0], p[1])
		if !containsInt(offIdx, k) {
			offIdx = append(offIdx, k)
		}
	}
	if len(offIdx) < 3 {
		rec.Add(report.Occluded, "throat", id,
			"%d unique offset vertices cannot form a polygon", len(offIdx))
		return Result{Normal: normal, Occluded: true}
	}

	// Map everything back: unscale, untranslate, restore the plane
	// coordinate, and undo the rotation.
	unmap := func(x, y float64) geom.Vec {
		p := geom.Vec{x/f + tx, y/f + ty, zPlane}
		if rotated {
			mi := m.Transpose()
			p = mi.Apply(p)
		}
		return p
	}

	out := Result{
		Normal:    normal,
		Area:      reg.area / (f * f),
		Perimeter: reg.perimeter / f,
		Inradius:  inMax / f,
		Centroid:  unmap(reg.cx, reg.cy),
		Incenter:  unmap(inX, inY),
	}
	out.EquivDiameter = math.Sqrt(4 * out.Area / math.Pi)
	for _, k := range offIdx {
		c := reg.coords[k]
		out.Offset = append(out.Offset, unmap(float64(c[0]), float64(c[1])))
	}
	return out
}

// planeCoord recovers the aligned facet's shared plane coordinate. The
// vertices should agree once rounded just past the facet's own scale; a
// spread is a rotation failure and falls back to the mean.
func planeCoord(id int, facet []geom.Vec, maxSpan float64, rec *report.Recorder) float64 {
	order := int(math.Ceil(-math.Log10(maxSpan))) + 1
	factor := math.Pow(10, float64(order))

	uniq := []float64{}
	for _, v := range facet {
		z := math.Round(v[2]*factor) / factor
		if !containsFloat(uniq, z) {
			uniq = append(uniq, z)
		}
	}
	if len(uniq) == 1 {
		return uniq[0]
	}

	rec.Add(report.RotationFailure, "throat", id,
		"%d distinct plane coordinates after alignment", len(uniq))
	mean := 0.0
	for _, z := range uniq {
		mean += z
	}
	return mean / float64(len(uniq))
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func containsFloat(xs []float64, x float64) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
