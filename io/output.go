package io

import (
	"fmt"
	"os"
	"path"

	"fibervox/props"
)

// WriteTables writes the pore and throat property tables as
// whitespace-column text files into the output directory.
func WriteTables(dir string, net *props.Network) error {
	if err := writePoreTable(path.Join(dir, "pores.dat"), net); err != nil {
		return err
	}
	return writeThroatTable(path.Join(dir, "throats.dat"), net)
}

func writePoreTable(name string, net *props.Network) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# id volume equiv_diameter indiameter "+
		"centroid_x centroid_y centroid_z incenter_x incenter_y incenter_z\n")
	for i := range net.Pores {
		p := &net.Pores[i]
		fmt.Fprintf(f, "%d %g %g %g %g %g %g %g %g %g\n",
			p.Id, p.Volume, p.EquivDiameter, p.Indiameter,
			p.Centroid[0], p.Centroid[1], p.Centroid[2],
			p.Incenter[0], p.Incenter[1], p.Incenter[2],
		)
	}
	return nil
}

func writeThroatTable(name string, net *props.Network) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# id pore1 pore2 area perimeter equiv_diameter "+
		"indiameter shape_factor c2c len_pore1 len_throat len_pore2 "+
		"centroid_x centroid_y centroid_z\n")
	for i := range net.Throats {
		t := &net.Throats[i]
		fmt.Fprintf(f, "%d %d %d %g %g %g %g %g %g %g %g %g %g %g %g\n",
			t.Id, t.Pore1, t.Pore2, t.Area, t.Perimeter, t.EquivDiameter,
			t.Indiameter, t.ShapeFactor, t.C2C,
			t.ConduitLens[0], t.ConduitLens[1], t.ConduitLens[2],
			t.Centroid[0], t.Centroid[1], t.Centroid[2],
		)
	}
	return nil
}
