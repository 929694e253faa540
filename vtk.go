package iontrap

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// WriteVTK writes the field as a legacy binary VTK STRUCTURED_POINTS dataset.
// VTK orders points x fastest, so cells are re-walked from the row-major
// layout. 2D fields are written with a single z layer.
func WriteVTK(w io.Writer, f *ScalarField, title string) error {
	g := f.grid
	var dims [3]int
	var origin, spacing [3]float64
	for d := 0; d < 3; d++ {
		dims[d], spacing[d] = 1, 1
		if d < g.Dims() {
			a := g.axes[d]
			dims[d] = a.Len()
			origin[d] = a.At(0)
			if s := a.Step(); s > 0 {
				spacing[d] = s
			}
		}
	}

	buf := bufio.NewWriter(w)
	endi := binary.BigEndian

	fmt.Fprintf(buf, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(buf, "%s\n", title)
	fmt.Fprintf(buf, "BINARY\n")
	fmt.Fprintf(buf, "DATASET STRUCTURED_POINTS\n")
	fmt.Fprintf(buf, "DIMENSIONS %d %d %d\n", dims[0], dims[1], dims[2])
	fmt.Fprintf(buf, "ORIGIN %g %g %g\n", origin[0], origin[1], origin[2])
	fmt.Fprintf(buf, "SPACING %g %g %g\n", spacing[0], spacing[1], spacing[2])
	fmt.Fprintf(buf, "POINT_DATA %d\n", f.Len())
	fmt.Fprintf(buf, "SCALARS potential float 1\n")
	fmt.Fprintf(buf, "LOOKUP_TABLE default\n")

	idx := make([]int, g.Dims())
	for k := 0; k < dims[2]; k++ {
		for j := 0; j < dims[1]; j++ {
			for i := 0; i < dims[0]; i++ {
				idx[0], idx[1] = i, j
				if len(idx) == 3 {
					idx[2] = k
				}
				v := float32(f.values[g.shape.offset(idx)])
				if err := binary.Write(buf, endi, v); err != nil {
					return err
				}
			}
		}
	}
	fmt.Fprintf(buf, "\n")
	return buf.Flush()
}
