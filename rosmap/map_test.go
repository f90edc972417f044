package rosmap

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestMap writes a 3x2 PGM map and its metadata into dir. Image rows
// run top to bottom: row 0 is [0 254 254], row 1 is [254 254 0].
func writeTestMap(t *testing.T, dir, yamlExtra string) string {
	t.Helper()
	pgm := append([]byte("P5\n3 2\n255\n"), 0, 254, 254, 254, 254, 0)
	if err := os.WriteFile(filepath.Join(dir, "office.pgm"), pgm, 0o644); err != nil {
		t.Fatalf("write pgm: %v", err)
	}
	meta := "image: office.pgm\nresolution: 0.05\norigin: [-1.0, -2.0, 0.0]\nfree_thresh: 0.196\n" + yamlExtra
	metaPath := filepath.Join(dir, "office.yaml")
	if err := os.WriteFile(metaPath, []byte(meta), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return metaPath
}

func TestLoadMap(t *testing.T) {
	metaPath := writeTestMap(t, t.TempDir(), "occupied_thresh: 0.65\n")
	m, err := Load(metaPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Resolution != 0.05 {
		t.Fatalf("wrong resolution: %g", m.Resolution)
	}
	if m.Origin != [3]float64{-1, -2, 0} {
		t.Fatalf("wrong origin: %v", m.Origin)
	}
	if m.Grid.W != 3 || m.Grid.H != 2 {
		t.Fatalf("wrong grid size: %dx%d", m.Grid.W, m.Grid.H)
	}
	// Image row 0 (top) ends up as grid row 1 after the vertical flip.
	if !m.Grid.At(0, 1) || !m.Grid.At(2, 0) {
		t.Fatalf("expected dark pixels occupied after flip")
	}
	if m.Grid.Occupied() != 2 {
		t.Fatalf("expected 2 occupied cells, got %d", m.Grid.Occupied())
	}
}

func TestLoadMapDefaultThreshold(t *testing.T) {
	// No occupied_thresh in the metadata: the map_server default applies.
	metaPath := writeTestMap(t, t.TempDir(), "")
	m, err := Load(metaPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Grid.Occupied() != 2 {
		t.Fatalf("expected 2 occupied cells, got %d", m.Grid.Occupied())
	}
}

func TestLoadMapNegate(t *testing.T) {
	metaPath := writeTestMap(t, t.TempDir(), "negate: 1\n")
	m, err := Load(metaPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// With negate the bright pixels become occupied.
	if m.Grid.Occupied() != 4 {
		t.Fatalf("expected 4 occupied cells, got %d", m.Grid.Occupied())
	}
	if m.Grid.At(0, 1) {
		t.Fatalf("dark pixel should be free with negate")
	}
}

func TestLoadMapPNG(t *testing.T) {
	dir := t.TempDir()
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.Pix = []byte{0, 254, 254, 254}
	f, err := os.Create(filepath.Join(dir, "office.png"))
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	f.Close()
	meta := "image: office.png\nresolution: 0.1\norigin: [0.0, 0.0, 0.0]\n"
	metaPath := filepath.Join(dir, "office.yaml")
	if err := os.WriteFile(metaPath, []byte(meta), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	m, err := Load(metaPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !m.Grid.At(0, 1) || m.Grid.Occupied() != 1 {
		t.Fatalf("unexpected occupancy: %d occupied", m.Grid.Occupied())
	}
}

func TestLoadMapErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"no_image.yaml":   "resolution: 0.05\n",
		"bad_res.yaml":    "image: office.pgm\nresolution: 0\n",
		"bad_origin.yaml": "image: office.pgm\nresolution: 0.05\norigin: [1.0, 2.0]\n",
		"no_file.yaml":    "image: missing.pgm\nresolution: 0.05\n",
	}
	pgm := append([]byte("P5\n1 1\n255\n"), 0)
	if err := os.WriteFile(filepath.Join(dir, "office.pgm"), pgm, 0o644); err != nil {
		t.Fatalf("write pgm: %v", err)
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error, got nil", name)
		}
	}
	if _, err := Load(filepath.Join(dir, "does_not_exist.yaml")); err == nil {
		t.Fatalf("expected error for missing metadata file")
	}
}
