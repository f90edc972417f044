package rosmap

// Grid is a boolean occupancy grid. Row 0 is the bottom (southern) edge of
// the map, so y grows in the same direction as the world Y axis.
type Grid struct {
	W, H  int
	cells []bool
}

func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, cells: make([]bool, w*h)}
}

// At reports whether the cell is occupied. Out-of-bounds cells read as free.
func (g *Grid) At(x, y int) bool {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return false
	}
	return g.cells[y*g.W+x]
}

func (g *Grid) Set(x, y int, occupied bool) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	g.cells[y*g.W+x] = occupied
}

// Occupied returns the number of occupied cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}
