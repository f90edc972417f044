package sdfmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
)

func testMeta() Meta {
	return Meta{
		Name:        "office",
		Version:     "1.0",
		Author:      "Anonymous",
		Email:       "anon@todo.todo",
		Description: "office floor walls",
		MeshExt:     "dae",
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	meshDir, err := Create(dir, testMeta(), false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if meshDir != filepath.Join(dir, "office", "meshes") {
		t.Fatalf("wrong meshes dir: %s", meshDir)
	}
	if fi, err := os.Stat(meshDir); err != nil || !fi.IsDir() {
		t.Fatalf("meshes directory not created")
	}

	config := etree.NewDocument()
	if err := config.ReadFromFile(filepath.Join(dir, "office", "model.config")); err != nil {
		t.Fatalf("reading model.config failed: %v", err)
	}
	model := config.Root()
	if model.Tag != "model" {
		t.Fatalf("wrong model.config root: %s", model.Tag)
	}
	if name := model.FindElement("name"); name == nil || name.Text() != "office" {
		t.Fatalf("wrong model name")
	}
	sdfRef := model.FindElement("sdf")
	if sdfRef == nil || sdfRef.Text() != "model.sdf" || sdfRef.SelectAttrValue("version", "") != SDFVersion {
		t.Fatalf("wrong sdf reference")
	}
	if email := model.FindElement("author/email"); email == nil || email.Text() != "anon@todo.todo" {
		t.Fatalf("wrong author email")
	}
	if desc := model.FindElement("description"); desc == nil || desc.Text() != "office floor walls" {
		t.Fatalf("wrong description")
	}

	sdf := etree.NewDocument()
	if err := sdf.ReadFromFile(filepath.Join(dir, "office", "model.sdf")); err != nil {
		t.Fatalf("reading model.sdf failed: %v", err)
	}
	root := sdf.Root()
	if root.Tag != "sdf" || root.SelectAttrValue("version", "") != SDFVersion {
		t.Fatalf("wrong sdf root")
	}
	if static := root.FindElement("model/static"); static == nil || static.Text() != "true" {
		t.Fatalf("model must be static")
	}
	for _, kind := range []string{"collision", "visual"} {
		uri := root.FindElement("model/link/" + kind + "/geometry/mesh/uri")
		if uri == nil || uri.Text() != "model://office/meshes/office.dae" {
			t.Fatalf("wrong %s mesh uri", kind)
		}
	}
}

func TestCreateRefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "office"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Create(dir, testMeta(), true); err == nil {
		t.Fatalf("expected error when model path exists as a file")
	}
}

func TestCreateRefusesExistingDirWithoutForce(t *testing.T) {
	dir := t.TempDir()
	if _, err := Create(dir, testMeta(), false); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := Create(dir, testMeta(), false); err == nil {
		t.Fatalf("expected error for existing model directory")
	}
}

func TestCreateForceReplaces(t *testing.T) {
	dir := t.TempDir()
	meshDir, err := Create(dir, testMeta(), false)
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	stale := filepath.Join(meshDir, "office.dae")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("write stale mesh: %v", err)
	}
	if _, err := Create(dir, testMeta(), true); err != nil {
		t.Fatalf("forced Create failed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale mesh survived the forced overwrite")
	}
}

func TestMeshURI(t *testing.T) {
	meta := testMeta()
	meta.MeshExt = "stl"
	if meta.MeshFile() != "office.stl" {
		t.Fatalf("wrong mesh file: %s", meta.MeshFile())
	}
	if meta.MeshURI() != "model://office/meshes/office.stl" {
		t.Fatalf("wrong mesh uri: %s", meta.MeshURI())
	}
}
