package fiber

import (
	"fibervox/edt"
	"fibervox/geom"
)

// chunk is one cubic task: a core write-region and a halo-extended read
// window. Cores tile the domain without overlap, so chunk tasks write
// disjoint regions of the shared output and need no merging.
type chunk struct {
	core, window geom.CellBounds
}

// buildChunked partitions the domain into cubic chunks, transforms each
// halo-extended window independently, and writes only the core cells.
func buildChunked(
	seeds []uint8, g *geom.Grid, r int, opts Opts, budget int64,
	pv *PhaseVolume, df *DistField,
) error {
	halo := haloFactor * r
	side := int64(opts.ChunkLen + 2*halo)
	if side*side*side*bytesPerCell > budget {
		return ErrInsufficientMemory
	}

	chunks := decompose(g, opts.ChunkLen, halo)

	out := make(chan int, opts.Workers)
	for id := 0; id < opts.Workers; id++ {
		go func(id int) {
			for ci := id; ci < len(chunks); ci += opts.Workers {
				processChunk(seeds, g, r, &chunks[ci], pv, df)
			}
			out <- id
		}(id)
	}
	for i := 0; i < opts.Workers; i++ {
		<-out
	}
	return nil
}

// decompose tiles the grid with cores of the given edge length, each with a
// clamped halo-extended window.
func decompose(g *geom.Grid, chunkLen, halo int) []chunk {
	var nc [3]int
	for d := 0; d < 3; d++ {
		nc[d] = (g.Width[d] + chunkLen - 1) / chunkLen
		if nc[d] < 1 {
			nc[d] = 1
		}
	}

	chunks := []chunk{}
	for cz := 0; cz < nc[2]; cz++ {
		for cy := 0; cy < nc[1]; cy++ {
			for cx := 0; cx < nc[0]; cx++ {
				core := geom.CellBounds{
					Origin: [3]int{cx * chunkLen, cy * chunkLen, cz * chunkLen},
					Width:  [3]int{chunkLen, chunkLen, chunkLen},
				}.Clamp(g)
				window := geom.CellBounds{
					Origin: [3]int{
						core.Origin[0] - halo,
						core.Origin[1] - halo,
						core.Origin[2] - halo,
					},
					Width: [3]int{
						core.Width[0] + 2*halo,
						core.Width[1] + 2*halo,
						core.Width[2] + 2*halo,
					},
				}.Clamp(g)
				chunks = append(chunks, chunk{core: core, window: window})
			}
		}
	}
	return chunks
}

// processChunk copies the chunk's read window out of the shared seed
// volume, transforms it, and classifies the core cells.
func processChunk(
	seeds []uint8, g *geom.Grid, r int, c *chunk,
	pv *PhaseVolume, df *DistField,
) {
	w := c.window.Width
	local := make([]uint8, w[0]*w[1]*w[2])
	for z := 0; z < w[2]; z++ {
		for y := 0; y < w[1]; y++ {
			src := g.Idx(c.window.Origin[0], c.window.Origin[1]+y, c.window.Origin[2]+z)
			dst := (z*w[1] + y) * w[0]
			copy(local[dst:dst+w[0]], seeds[src:src+w[0]])
		}
	}

	d := edt.Transform3(local, w)

	fr := float32(r)
	for z := c.core.Origin[2]; z < c.core.Origin[2]+c.core.Width[2]; z++ {
		lz := z - c.window.Origin[2]
		for y := c.core.Origin[1]; y < c.core.Origin[1]+c.core.Width[1]; y++ {
			ly := y - c.window.Origin[1]
			for x := c.core.Origin[0]; x < c.core.Origin[0]+c.core.Width[0]; x++ {
				lx := x - c.window.Origin[0]
				di := d[(lz*w[1]+ly)*w[0]+lx]
				idx := g.Idx(x, y, z)
				if di <= fr {
					pv.Phase[idx] = 0
					df.D[idx] = 0
				} else {
					pv.Phase[idx] = 1
					df.D[idx] = di - fr
				}
			}
		}
	}
}
