// Package wallmesh turns an occupancy grid into extruded wall geometry.
package wallmesh

import "math"

// Mesh is an indexed triangle mesh. Faces do not share vertices, so flat
// shading falls out of per-vertex normals.
type Mesh struct {
	Positions [][3]float64
	Indices   []uint32
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// addQuad appends the quad v0..v3 as two triangles. The vertices must be
// given counter-clockwise when viewed from outside.
func (m *Mesh) addQuad(v0, v1, v2, v3 [3]float64) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, v0, v1, v2, v3)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// TriangleNormal returns the unit normal of triangle i.
func (m *Mesh) TriangleNormal(i int) [3]float64 {
	p0 := m.Positions[m.Indices[3*i]]
	p1 := m.Positions[m.Indices[3*i+1]]
	p2 := m.Positions[m.Indices[3*i+2]]
	a := [3]float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	b := [3]float64{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	n := [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
	length := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if length > 0 {
		n[0] /= length
		n[1] /= length
		n[2] /= length
	}
	return n
}

// VertexNormals returns one normal per vertex, each taken from a triangle the
// vertex belongs to. Since faces never share vertices this is flat shading.
func (m *Mesh) VertexNormals() [][3]float64 {
	normals := make([][3]float64, len(m.Positions))
	for i := 0; i < m.TriangleCount(); i++ {
		n := m.TriangleNormal(i)
		normals[m.Indices[3*i]] = n
		normals[m.Indices[3*i+1]] = n
		normals[m.Indices[3*i+2]] = n
	}
	return normals
}
