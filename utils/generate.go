// Package utils contains the pipeline steps behind the map2sdf CLI.
package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"map2sdf/export"
	"map2sdf/rosmap"
	"map2sdf/sdfmodel"
	"map2sdf/wallmesh"
)

// Options is the fully-resolved input of a generation run.
type Options struct {
	ToolPath    string // external 3D tool, only invoked with UseExternal
	MapMeta     string // map metadata YAML path
	OutputDir   string
	WallHeight  float64
	Meta        sdfmodel.Meta
	Force       bool
	UseExternal bool
}

// RunGenerate runs the full pipeline: descriptor first, then the mesh into
// the descriptor's meshes directory.
func RunGenerate(o Options) error {
	meshDir, err := RunCreateModel(o.OutputDir, o.Meta, o.Force)
	if err != nil {
		return err
	}
	meshPath := filepath.Join(meshDir, o.Meta.MeshFile())
	if o.UseExternal {
		return RunExternalMesh(o.ToolPath, o.MapMeta, meshPath, o.WallHeight)
	}
	return RunCreateMesh(o.MapMeta, meshPath, o.WallHeight)
}

// RunCreateModel writes the model descriptor directory and returns the path
// of its meshes directory.
func RunCreateModel(outputDir string, meta sdfmodel.Meta, force bool) (string, error) {
	meshDir, err := sdfmodel.Create(outputDir, meta, force)
	if err != nil {
		return "", err
	}
	fmt.Printf("model descriptor saved to %s\n", filepath.Dir(meshDir))
	return meshDir, nil
}

// RunCreateMesh extrudes the map's occupied cells into a wall mesh and
// writes it to meshPath, picking the writer from the file extension.
func RunCreateMesh(mapMeta, meshPath string, wallHeight float64) error {
	m, err := rosmap.Load(mapMeta)
	if err != nil {
		return err
	}
	mesh, err := wallmesh.Extrude(m.Grid, wallmesh.Params{
		Resolution: m.Resolution,
		Origin:     m.Origin,
		Height:     wallHeight,
	})
	if err != nil {
		return err
	}

	switch ext := strings.TrimPrefix(filepath.Ext(meshPath), "."); ext {
	case "dae":
		err = export.WriteDAE(mesh, meshPath)
	case "stl":
		err = export.WriteSTL(mesh, meshPath)
	case "glb":
		err = export.WriteGLB(mesh, meshPath)
	default:
		return errors.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return err
	}
	fmt.Printf("mesh saved to %s (%d occupied cells, %d triangles)\n",
		meshPath, m.Grid.Occupied(), mesh.TriangleCount())
	return nil
}
