package export

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"map2sdf/wallmesh"
)

// WriteGLB writes the mesh as binary glTF with flat normals and a single
// matte gray material.
func WriteGLB(m *wallmesh.Mesh, path string) error {
	if len(m.Positions) == 0 {
		doc := gltf.NewDocument()
		doc.Asset.Generator = "map2sdf"
		return errors.Wrap(gltf.SaveBinary(doc, path), "write glb")
	}
	positions := make([][3]float32, len(m.Positions))
	for i, p := range m.Positions {
		positions[i] = [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
	}
	vertexNormals := m.VertexNormals()
	normals := make([][3]float32, len(vertexNormals))
	for i, n := range vertexNormals {
		normals[i] = [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
	}
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)

	doc := gltf.NewDocument()
	doc.Asset.Generator = "map2sdf"

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
		},
		Indices: gltf.Index(indicesAccessor),
	}

	doc.Materials = []*gltf.Material{{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.7, 0.7, 0.7, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		AlphaMode: gltf.AlphaOpaque,
	}}
	prim.Material = gltf.Index(0)

	doc.Meshes = []*gltf.Mesh{{Name: "Wall", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return errors.Wrap(gltf.SaveBinary(doc, path), "write glb")
}
