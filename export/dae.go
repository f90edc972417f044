// Package export writes wall meshes in the formats Gazebo can load.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"

	"map2sdf/wallmesh"
)

// WriteDAE writes the mesh as a COLLADA 1.4.1 file with Z up and meter
// units, the conventions Gazebo expects from Blender-exported assets.
func WriteDAE(m *wallmesh.Mesh, path string) error {
	doc := buildDAE(m, time.Now())
	doc.Indent(2)
	return errors.Wrap(doc.WriteToFile(path), "write dae")
}

func buildDAE(m *wallmesh.Mesh, now time.Time) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("COLLADA")
	root.CreateAttr("xmlns", "http://www.collada.org/2005/11/COLLADASchema")
	root.CreateAttr("version", "1.4.1")

	asset := root.CreateElement("asset")
	contributor := asset.CreateElement("contributor")
	contributor.CreateElement("authoring_tool").SetText("map2sdf")
	stamp := now.UTC().Format("2006-01-02T15:04:05")
	asset.CreateElement("created").SetText(stamp)
	asset.CreateElement("modified").SetText(stamp)
	unit := asset.CreateElement("unit")
	unit.CreateAttr("name", "meter")
	unit.CreateAttr("meter", "1")
	asset.CreateElement("up_axis").SetText("Z_UP")

	geometries := root.CreateElement("library_geometries")
	geometry := geometries.CreateElement("geometry")
	geometry.CreateAttr("id", "Wall-mesh")
	geometry.CreateAttr("name", "Wall")
	mesh := geometry.CreateElement("mesh")

	positions := make([]float64, 0, 3*len(m.Positions))
	for _, p := range m.Positions {
		positions = append(positions, p[0], p[1], p[2])
	}
	addSource(mesh, "Wall-mesh-positions", positions, len(m.Positions))

	triCount := m.TriangleCount()
	normals := make([]float64, 0, 3*triCount)
	for i := 0; i < triCount; i++ {
		n := m.TriangleNormal(i)
		normals = append(normals, n[0], n[1], n[2])
	}
	addSource(mesh, "Wall-mesh-normals", normals, triCount)

	vertices := mesh.CreateElement("vertices")
	vertices.CreateAttr("id", "Wall-mesh-vertices")
	position := vertices.CreateElement("input")
	position.CreateAttr("semantic", "POSITION")
	position.CreateAttr("source", "#Wall-mesh-positions")

	triangles := mesh.CreateElement("triangles")
	triangles.CreateAttr("count", strconv.Itoa(triCount))
	vertexInput := triangles.CreateElement("input")
	vertexInput.CreateAttr("semantic", "VERTEX")
	vertexInput.CreateAttr("source", "#Wall-mesh-vertices")
	vertexInput.CreateAttr("offset", "0")
	normalInput := triangles.CreateElement("input")
	normalInput.CreateAttr("semantic", "NORMAL")
	normalInput.CreateAttr("source", "#Wall-mesh-normals")
	normalInput.CreateAttr("offset", "1")

	// Interleave vertex and per-triangle normal indices.
	prims := make([]string, 0, 6*triCount)
	for i := 0; i < triCount; i++ {
		for j := 0; j < 3; j++ {
			prims = append(prims, strconv.FormatUint(uint64(m.Indices[3*i+j]), 10), strconv.Itoa(i))
		}
	}
	triangles.CreateElement("p").SetText(strings.Join(prims, " "))

	scenes := root.CreateElement("library_visual_scenes")
	scene := scenes.CreateElement("visual_scene")
	scene.CreateAttr("id", "Scene")
	scene.CreateAttr("name", "Scene")
	node := scene.CreateElement("node")
	node.CreateAttr("id", "Wall")
	node.CreateAttr("name", "Wall")
	node.CreateAttr("type", "NODE")
	matrix := node.CreateElement("matrix")
	matrix.CreateAttr("sid", "transform")
	matrix.SetText("1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1")
	instance := node.CreateElement("instance_geometry")
	instance.CreateAttr("url", "#Wall-mesh")
	instance.CreateAttr("name", "Wall")

	root.CreateElement("scene").CreateElement("instance_visual_scene").CreateAttr("url", "#Scene")
	return doc
}

// addSource emits a float source with an XYZ accessor over count elements.
func addSource(mesh *etree.Element, id string, values []float64, count int) {
	source := mesh.CreateElement("source")
	source.CreateAttr("id", id)
	array := source.CreateElement("float_array")
	array.CreateAttr("id", id+"-array")
	array.CreateAttr("count", strconv.Itoa(len(values)))
	array.SetText(formatFloats(values))
	technique := source.CreateElement("technique_common")
	accessor := technique.CreateElement("accessor")
	accessor.CreateAttr("source", "#"+id+"-array")
	accessor.CreateAttr("count", strconv.Itoa(count))
	accessor.CreateAttr("stride", "3")
	for _, name := range []string{"X", "Y", "Z"} {
		param := accessor.CreateElement("param")
		param.CreateAttr("name", name)
		param.CreateAttr("type", "float")
	}
}

func formatFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', 7, 64)
	}
	return strings.Join(parts, " ")
}
