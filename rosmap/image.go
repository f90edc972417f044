package rosmap

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// readImage loads the map image. PGM is handled by the built-in decoder,
// everything else goes through the registered image decoders.
func readImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read map image")
	}
	if len(data) >= 2 && data[0] == 'P' && (data[1] == '2' || data[1] == '5') {
		return decodePGM(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, errors.Wrapf(err, "decode map image %s", path)
}

// gridFromImage thresholds the image into an occupancy grid. The image is
// flipped vertically first: image row 0 is the top of the map while the world
// Y axis points up. Occupancy follows map_server semantics: a cell is
// occupied iff (negate ? v : 255-v)/255 > occupiedThresh.
func gridFromImage(img image.Image, occupiedThresh float64, negate bool) *Grid {
	gray := effect.Grayscale(transform.FlipV(img))
	b := gray.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)]
			p := float64(255-v) / 255
			if negate {
				p = float64(v) / 255
			}
			g.Set(x, y, p > occupiedThresh)
		}
	}
	return g
}
