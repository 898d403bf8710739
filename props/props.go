/*package props merges the label volume, phase volume, distance field, and
facet measurements into the final per-pore and per-throat geometry.*/
package props

import (
	"math"

	"fibervox/facet"
	"fibervox/fiber"
	"fibervox/geom"
	"fibervox/tess"
	"fibervox/voxel"
)

// PoreGeom is the extracted geometry of one pore.
type PoreGeom struct {
	Id            int
	Centroid      geom.Vec
	Volume        float64
	EquivDiameter float64
	Indiameter    float64
	Incenter      geom.Vec
}

// ThroatGeom is the extracted geometry of one throat. ConduitLens holds the
// pore1-to-throat, throat-span, and throat-to-pore2 lengths; all three are
// NaN when either centroid is undefined.
type ThroatGeom struct {
	Id, Pore1, Pore2 int

	Normal             geom.Vec
	Centroid, Incenter geom.Vec

	Area, Perimeter, EquivDiameter, Indiameter float64
	ShapeFactor                                float64

	Offset      []geom.Vec
	ConduitLens [3]float64
	C2C         float64
}

// Network is the downstream-facing output of the pipeline.
type Network struct {
	Pores   []PoreGeom
	Throats []ThroatGeom

	// Porosity is the pore-phase fraction of the voxel grid.
	Porosity float64
	// Profile holds the pore-phase fraction per slice along each axis.
	Profile [3][]float64
}

// Aggregate computes the final attributes. The throat results must be
// indexed like ts.Throats.
func Aggregate(
	ts *tess.Tessellation,
	lv *voxel.LabelVolume,
	pv *fiber.PhaseVolume,
	df *fiber.DistField,
	facets []facet.Result,
) *Network {
	net := &Network{
		Pores:   make([]PoreGeom, len(ts.Pores)),
		Throats: make([]ThroatGeom, len(ts.Throats)),
	}

	slot := map[int32]int{}
	for i := range ts.Pores {
		p := &ts.Pores[i]
		slot[int32(p.Id)] = i
		net.Pores[i] = PoreGeom{
			Id:       p.Id,
			Centroid: geom.Centroid(tess.DedupVerts(p.Verts)),
		}
	}

	// One pass over the grid: per-pore voxel counts and distance maxima,
	// plus the porosity profile.
	poreVox := make([]int, len(ts.Pores))
	distMax := make([]float32, len(ts.Pores))
	distArg := make([]int, len(ts.Pores))
	var sliceCounts [3][]int
	for d := 0; d < 3; d++ {
		sliceCounts[d] = make([]int, lv.Width[d])
		net.Profile[d] = make([]float64, lv.Width[d])
	}

	poreTotal := 0
	for idx, label := range lv.Labels {
		isPore := pv.Phase[idx] == 1
		if isPore {
			poreTotal++
			x, y, z := lv.Coords(idx)
			sliceCounts[0][x]++
			sliceCounts[1][y]++
			sliceCounts[2][z]++
		}
		s, ok := slot[label]
		if !ok {
			continue
		}
		if isPore {
			poreVox[s]++
		}
		if df.D[idx] > distMax[s] {
			distMax[s] = df.D[idx]
			distArg[s] = idx
		}
	}

	res := ts.Resolution
	net.Porosity = float64(poreTotal) / float64(lv.Volume)
	for d := 0; d < 3; d++ {
		sliceArea := lv.Volume / lv.Width[d]
		for i, c := range sliceCounts[d] {
			net.Profile[d][i] = float64(c) / float64(sliceArea)
		}
	}

	for i := range net.Pores {
		pg := &net.Pores[i]
		pg.Volume = float64(poreVox[i]) * res * res * res
		pg.EquivDiameter = math.Cbrt(6 * pg.Volume / math.Pi)
		if distMax[i] > 0 {
			pg.Indiameter = 2 * float64(distMax[i]) * res
			x, y, z := lv.Coords(distArg[i])
			pg.Incenter = lv.PosOf(x, y, z)
		}
	}

	for i := range net.Throats {
		th := &ts.Throats[i]
		f := &facets[i]
		tg := &net.Throats[i]
		*tg = ThroatGeom{
			Id: th.Id, Pore1: th.Pore1, Pore2: th.Pore2,
			Normal:        f.Normal,
			Centroid:      f.Centroid,
			Incenter:      f.Incenter,
			Area:          f.Area,
			Perimeter:     f.Perimeter,
			EquivDiameter: f.EquivDiameter,
			Indiameter:    2 * f.Inradius,
			Offset:        f.Offset,
		}
		if f.Perimeter > 0 {
			// Mason-Morrow capillary shape factor, A/P^2.
			tg.ShapeFactor = f.Area / (f.Perimeter * f.Perimeter)
		}
		tg.ConduitLens, tg.C2C = conduitLengths(ts, net, slot, tg, f)
	}

	return net
}

// conduitLengths splits the pore1-to-pore2 separation into pore-body,
// fiber-crossing, and pore-body contributions. Throats without a measured
// centroid get the NaN triple rather than a fabricated length.
func conduitLengths(
	ts *tess.Tessellation, net *Network, slot map[int32]int,
	tg *ThroatGeom, f *facet.Result,
) ([3]float64, float64) {
	nan := math.NaN()
	undefined := [3]float64{nan, nan, nan}

	if f.Area == 0 {
		return undefined, nan
	}
	s1, ok1 := slot[int32(tg.Pore1)]
	s2, ok2 := slot[int32(tg.Pore2)]
	if !ok1 || !ok2 {
		return undefined, nan
	}

	fr := ts.FiberRadius
	l1 := tg.Centroid.Sub(net.Pores[s1].Centroid).Norm() - fr
	l2 := tg.Centroid.Sub(net.Pores[s2].Centroid).Norm() - fr
	lens := [3]float64{l1, 2 * fr, l2}
	for k := range lens {
		if lens[k] <= 0 {
			lens[k] = 1e-12
		}
	}
	return lens, lens[0] + lens[1] + lens[2]
}
