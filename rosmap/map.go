// Package rosmap reads occupancy-grid maps in the ROS map_server format:
// a YAML metadata file next to a grayscale image.
// See http://wiki.ros.org/map_server for the format.
package rosmap

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultOccupiedThresh is used when the metadata omits occupied_thresh,
// matching the map_server default.
const DefaultOccupiedThresh = 0.65

// Metadata mirrors the map_server YAML fields.
type Metadata struct {
	Image          string    `yaml:"image"`
	Resolution     float64   `yaml:"resolution"`
	Origin         []float64 `yaml:"origin"`
	Negate         int       `yaml:"negate"`
	OccupiedThresh *float64  `yaml:"occupied_thresh"`
	FreeThresh     float64   `yaml:"free_thresh"`
}

// Map is a loaded occupancy-grid map, thresholded and flipped so that grid
// row 0 is the southern edge.
type Map struct {
	Grid       *Grid
	Resolution float64    // meters per cell
	Origin     [3]float64 // x, y, yaw of the lower-left corner
}

// Load reads the map metadata file and its image. The image path in the
// metadata is resolved relative to the metadata file's directory.
func Load(metaPath string) (*Map, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, errors.Wrap(err, "read map metadata")
	}
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrap(err, "parse map metadata")
	}
	if meta.Image == "" {
		return nil, errors.New("map metadata has no image field")
	}
	if meta.Resolution <= 0 {
		return nil, errors.Errorf("map resolution must be positive, got %g", meta.Resolution)
	}
	var origin [3]float64
	switch len(meta.Origin) {
	case 0:
	case 3:
		copy(origin[:], meta.Origin)
	default:
		return nil, errors.Errorf("map origin must have 3 components, got %d", len(meta.Origin))
	}
	thresh := DefaultOccupiedThresh
	if meta.OccupiedThresh != nil {
		thresh = *meta.OccupiedThresh
	}

	imgPath := meta.Image
	if !filepath.IsAbs(imgPath) {
		imgPath = filepath.Join(filepath.Dir(metaPath), imgPath)
	}
	img, err := readImage(imgPath)
	if err != nil {
		return nil, err
	}
	grid := gridFromImage(img, thresh, meta.Negate != 0)
	if grid.W == 0 || grid.H == 0 {
		return nil, errors.New("map image is empty")
	}
	return &Map{Grid: grid, Resolution: meta.Resolution, Origin: origin}, nil
}
