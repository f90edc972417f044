package export

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"

	"map2sdf/wallmesh"
)

// WriteSTL writes the mesh as binary STL.
func WriteSTL(m *wallmesh.Mesh, path string) error {
	solid := model3d.NewMesh()
	for i := 0; i < len(m.Indices); i += 3 {
		solid.Add(&model3d.Triangle{
			coord(m.Positions[m.Indices[i]]),
			coord(m.Positions[m.Indices[i+1]]),
			coord(m.Positions[m.Indices[i+2]]),
		})
	}
	return errors.Wrap(solid.SaveGroupedSTL(path), "write stl")
}

func coord(p [3]float64) model3d.Coord3D {
	return model3d.Coord3D{X: p[0], Y: p[1], Z: p[2]}
}
