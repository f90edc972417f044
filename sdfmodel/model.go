// Package sdfmodel emits a Gazebo model directory:
//
//	<output_dir>/<name>/
//	├── meshes/<name>.<ext>
//	├── model.config
//	└── model.sdf
//
// See http://gazebosim.org/tutorials?tut=model_structure for the layout.
package sdfmodel

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SDFVersion is the SDF format version declared in both descriptor files.
const SDFVersion = "1.6"

// Meta holds the descriptor metadata for a generated model.
type Meta struct {
	Name        string
	Version     string
	Author      string
	Email       string
	Description string
	MeshExt     string // mesh file extension without the dot, e.g. "dae"
}

// MeshFile returns the mesh file name inside the meshes directory.
func (m Meta) MeshFile() string {
	return m.Name + "." + m.MeshExt
}

// MeshURI returns the model:// URI the SDF references the mesh by.
func (m Meta) MeshURI() string {
	return "model://" + m.Name + "/meshes/" + m.MeshFile()
}

// Create writes the model directory with model.config and model.sdf and
// returns the path of the meshes directory. An existing model directory is an
// error unless force is set, in which case it is removed first. A regular
// file in the way is always an error.
func Create(outputDir string, meta Meta, force bool) (string, error) {
	root := filepath.Join(outputDir, meta.Name)
	if fi, err := os.Stat(root); err == nil {
		if !fi.IsDir() {
			return "", errors.Errorf("cannot create model: %q exists as a file", root)
		}
		if !force {
			return "", errors.Errorf("model directory %q already exists, use --force to overwrite", root)
		}
		if err := os.RemoveAll(root); err != nil {
			return "", errors.Wrap(err, "remove existing model directory")
		}
	}
	meshDir := filepath.Join(root, "meshes")
	if err := os.MkdirAll(meshDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create model directory")
	}
	if err := writeDoc(filepath.Join(root, "model.config"), configXML(meta)); err != nil {
		return "", err
	}
	if err := writeDoc(filepath.Join(root, "model.sdf"), sdfXML(meta)); err != nil {
		return "", err
	}
	return meshDir, nil
}
