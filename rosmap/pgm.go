package rosmap

import (
	"image"

	"github.com/pkg/errors"
)

// decodePGM parses a netpbm grayscale image (P2 ascii or P5 raw), the format
// map_server saves maps in. Maxval above 255 is not supported; saved maps use
// a single byte per pixel.
func decodePGM(data []byte) (*image.Gray, error) {
	if len(data) < 2 || data[0] != 'P' || (data[1] != '2' && data[1] != '5') {
		return nil, errors.New("not a PGM image")
	}
	raw := data[1] == '5'
	pos := 2

	header := make([]int, 0, 3)
	for len(header) < 3 {
		v, next, err := nextPGMInt(data, pos)
		if err != nil {
			return nil, errors.Wrap(err, "pgm header")
		}
		header = append(header, v)
		pos = next
	}
	w, h, maxval := header[0], header[1], header[2]
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("invalid pgm dimensions %dx%d", w, h)
	}
	if maxval <= 0 || maxval > 255 {
		return nil, errors.Errorf("unsupported pgm maxval %d", maxval)
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	if raw {
		// A single whitespace byte separates the header from the pixel data.
		pos++
		if len(data)-pos < w*h {
			return nil, errors.New("pgm pixel data truncated")
		}
		copy(img.Pix, data[pos:pos+w*h])
	} else {
		for i := 0; i < w*h; i++ {
			v, next, err := nextPGMInt(data, pos)
			if err != nil {
				return nil, errors.Wrap(err, "pgm pixel data")
			}
			if v < 0 || v > maxval {
				return nil, errors.Errorf("pgm pixel value %d out of range", v)
			}
			img.Pix[i] = uint8(v)
			pos = next
		}
	}
	if maxval != 255 {
		for i, v := range img.Pix {
			img.Pix[i] = uint8(int(v) * 255 / maxval)
		}
	}
	return img, nil
}

// nextPGMInt scans the next ascii integer starting at pos, skipping
// whitespace and # comments.
func nextPGMInt(data []byte, pos int) (int, int, error) {
	for pos < len(data) {
		c := data[pos]
		if c == '#' {
			for pos < len(data) && data[pos] != '\n' {
				pos++
			}
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			pos++
			continue
		}
		break
	}
	if pos >= len(data) || data[pos] < '0' || data[pos] > '9' {
		return 0, pos, errors.New("unexpected end of header")
	}
	v := 0
	for pos < len(data) && data[pos] >= '0' && data[pos] <= '9' {
		v = v*10 + int(data[pos]-'0')
		pos++
	}
	return v, pos, nil
}
