package tess

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"fibervox/geom"
)

// Column layouts of the snapshot text files. Pore files hold one hull
// vertex per row, throat files one facet vertex per row. Rows for the same
// entity need not be contiguous.
const (
	poreIdCol = iota
	poreXCol
	poreYCol
	poreZCol
)

const (
	throatIdCol = iota
	throatPore1Col
	throatPore2Col
	throatXCol
	throatYCol
	throatZCol
)

// Load reads a tessellation snapshot from whitespace-column text files.
func Load(poreFile, throatFile string, fiberRad, res float64) (*Tessellation, error) {
	t := &Tessellation{FiberRadius: fiberRad, Resolution: res}

	cols, err := table.ReadTable(
		poreFile, []int{poreIdCol, poreXCol, poreYCol, poreZCol}, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("tess: reading %s: %v", poreFile, err)
	}

	poreIdx := map[int]int{}
	for i := range cols[0] {
		id := int(cols[0][i])
		v := geom.Vec{cols[1][i], cols[2][i], cols[3][i]}
		j, ok := poreIdx[id]
		if !ok {
			j = len(t.Pores)
			poreIdx[id] = j
			t.Pores = append(t.Pores, Pore{Id: id})
		}
		t.Pores[j].Verts = append(t.Pores[j].Verts, v)
	}

	cols, err = table.ReadTable(
		throatFile, []int{throatIdCol, throatPore1Col, throatPore2Col,
			throatXCol, throatYCol, throatZCol}, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("tess: reading %s: %v", throatFile, err)
	}

	throatIdx := map[int]int{}
	for i := range cols[0] {
		id := int(cols[0][i])
		v := geom.Vec{cols[3][i], cols[4][i], cols[5][i]}
		j, ok := throatIdx[id]
		if !ok {
			j = len(t.Throats)
			throatIdx[id] = j
			t.Throats = append(t.Throats, Throat{
				Id: id, Pore1: int(cols[1][i]), Pore2: int(cols[2][i]),
			})
		}
		t.Throats[j].Verts = append(t.Throats[j].Verts, v)
	}

	for i := range t.Pores {
		t.Pores[i].Verts = DedupVerts(t.Pores[i].Verts)
	}
	for i := range t.Throats {
		t.Throats[i].Verts = DedupVerts(t.Throats[i].Verts)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
