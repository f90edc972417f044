package wallmesh

import (
	"math"

	"github.com/pkg/errors"

	"map2sdf/rosmap"
)

// Params controls the extrusion.
type Params struct {
	Resolution float64    // cell edge length in meters
	Origin     [3]float64 // map origin: x, y, yaw
	Height     float64    // wall height in meters
}

// Extrude builds the wall mesh for the occupied cells of the grid. Each cell
// becomes a box footprint from z=0 to z=Height; only exposed faces are
// emitted and coplanar faces are merged into maximal rectangles. The mesh is
// then scaled by the resolution on x/y, translated by the origin, and rotated
// by the origin yaw about the world Z axis.
func Extrude(g *rosmap.Grid, p Params) (*Mesh, error) {
	if p.Resolution <= 0 {
		return nil, errors.Errorf("resolution must be positive, got %g", p.Resolution)
	}
	if p.Height <= 0 {
		return nil, errors.Errorf("wall height must be positive, got %g", p.Height)
	}

	m := &Mesh{}
	h := p.Height

	for _, r := range coverRects(g) {
		x0, y0 := float64(r.x), float64(r.y)
		x1, y1 := float64(r.x+r.w), float64(r.y+r.h)
		m.addQuad([3]float64{x0, y0, h}, [3]float64{x1, y0, h}, [3]float64{x1, y1, h}, [3]float64{x0, y1, h})
		m.addQuad([3]float64{x0, y0, 0}, [3]float64{x0, y1, 0}, [3]float64{x1, y1, 0}, [3]float64{x1, y0, 0})
	}

	// Side faces, one direction at a time, merging runs of exposed cells
	// along the wall line.
	for y := 0; y < g.H; y++ {
		for x0 := 0; x0 < g.W; {
			if !exposed(g, x0, y, 0, 1) {
				x0++
				continue
			}
			x1 := x0 + 1
			for x1 < g.W && exposed(g, x1, y, 0, 1) {
				x1++
			}
			xa, xb, yw := float64(x0), float64(x1), float64(y+1)
			m.addQuad([3]float64{xb, yw, 0}, [3]float64{xa, yw, 0}, [3]float64{xa, yw, h}, [3]float64{xb, yw, h})
			x0 = x1
		}
		for x0 := 0; x0 < g.W; {
			if !exposed(g, x0, y, 0, -1) {
				x0++
				continue
			}
			x1 := x0 + 1
			for x1 < g.W && exposed(g, x1, y, 0, -1) {
				x1++
			}
			xa, xb, yw := float64(x0), float64(x1), float64(y)
			m.addQuad([3]float64{xa, yw, 0}, [3]float64{xb, yw, 0}, [3]float64{xb, yw, h}, [3]float64{xa, yw, h})
			x0 = x1
		}
	}
	for x := 0; x < g.W; x++ {
		for y0 := 0; y0 < g.H; {
			if !exposed(g, x, y0, 1, 0) {
				y0++
				continue
			}
			y1 := y0 + 1
			for y1 < g.H && exposed(g, x, y1, 1, 0) {
				y1++
			}
			ya, yb, xw := float64(y0), float64(y1), float64(x+1)
			m.addQuad([3]float64{xw, ya, 0}, [3]float64{xw, yb, 0}, [3]float64{xw, yb, h}, [3]float64{xw, ya, h})
			y0 = y1
		}
		for y0 := 0; y0 < g.H; {
			if !exposed(g, x, y0, -1, 0) {
				y0++
				continue
			}
			y1 := y0 + 1
			for y1 < g.H && exposed(g, x, y1, -1, 0) {
				y1++
			}
			ya, yb, xw := float64(y0), float64(y1), float64(x)
			m.addQuad([3]float64{xw, yb, 0}, [3]float64{xw, ya, 0}, [3]float64{xw, ya, h}, [3]float64{xw, yb, h})
			y0 = y1
		}
	}

	transform(m, p)
	return m, nil
}

// exposed reports whether the cell is occupied and its neighbor in the given
// direction is free (or out of bounds).
func exposed(g *rosmap.Grid, x, y, dx, dy int) bool {
	return g.At(x, y) && !g.At(x+dx, y+dy)
}

type cellRect struct {
	x, y, w, h int
}

// coverRects greedily covers the occupied cells with maximal axis-aligned
// rectangles: grow each seed cell rightwards, then upwards row by row.
func coverRects(g *rosmap.Grid) []cellRect {
	visited := make([]bool, g.W*g.H)
	var rects []cellRect
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.At(x, y) || visited[y*g.W+x] {
				continue
			}
			w := 1
			for x+w < g.W && g.At(x+w, y) && !visited[y*g.W+x+w] {
				w++
			}
			h := 1
			stop := false
			for y+h < g.H && !stop {
				for i := x; i < x+w; i++ {
					if !g.At(i, y+h) || visited[(y+h)*g.W+i] {
						stop = true
						break
					}
				}
				if !stop {
					h++
				}
			}
			for vy := y; vy < y+h; vy++ {
				for vx := x; vx < x+w; vx++ {
					visited[vy*g.W+vx] = true
				}
			}
			rects = append(rects, cellRect{x, y, w, h})
		}
	}
	return rects
}

// transform scales x/y by the resolution, translates by the origin, and
// rotates by yaw about the world Z axis. The rotation is applied to the
// already-translated geometry, matching the reference pipeline's pivot.
func transform(m *Mesh, p Params) {
	ox, oy, yaw := p.Origin[0], p.Origin[1], p.Origin[2]
	sin, cos := math.Sin(yaw), math.Cos(yaw)
	for i, v := range m.Positions {
		x := v[0]*p.Resolution + ox
		y := v[1]*p.Resolution + oy
		if yaw != 0 {
			x, y = cos*x-sin*y, sin*x+cos*y
		}
		m.Positions[i] = [3]float64{x, y, v[2]}
	}
}
