package facet

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
)

// dumpMask writes the eroded facet mask as a PNG for visual inspection.
func (a *Analyzer) dumpMask(id int, m *mask) {
	img := image.NewGray(image.Rect(0, 0, m.nx, m.ny))
	for x := 0; x < m.nx; x++ {
		for y := 0; y < m.ny; y++ {
			if m.at(x, y) != 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	path := filepath.Join(a.DebugDir, fmt.Sprintf("throat_%04d.png", id))
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		log.Printf("Could not write debug mask %s: %v", path, err)
	}
}
