package core

import "fmt"

// Grid stores a 2D board of boolean cells in row-major order. Its
// dimensions are fixed; a different size needs a new Grid.
type Grid struct {
	W, H int
	data []bool
}

// MaxCells caps the number of cells a single grid may hold.
const MaxCells = 1 << 26

// NewGrid allocates an all-dead grid with the given dimensions. Zero is a
// valid (empty) dimension.
func NewGrid(w, h int) (*Grid, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if w > 0 && h > MaxCells/w {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidDimensions, w, h, MaxCells)
	}
	return &Grid{W: w, H: h, data: make([]bool, w*h)}, nil
}

// FromSnapshot builds a working grid holding a copy of the snapshot's cells.
func FromSnapshot(s Snapshot) *Grid {
	data := make([]bool, len(s.cells))
	copy(data, s.cells)
	return &Grid{W: s.W, H: s.H, data: data}
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	return wrapCoord(x, g.W), wrapCoord(y, g.H)
}

// Alive reports the state of (x, y). Off-grid coordinates read as dead.
func (g *Grid) Alive(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.data[g.Index(x, y)]
}

// Set assigns the state of a single cell.
func (g *Grid) Set(x, y int, alive bool) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfRange, x, y, g.W, g.H)
	}
	g.data[g.Index(x, y)] = alive
	return nil
}

// Toggle flips the cell at (x, y).
func (g *Grid) Toggle(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfRange, x, y, g.W, g.H)
	}
	i := g.Index(x, y)
	g.data[i] = !g.data[i]
	return nil
}

// Clear marks every cell dead.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = false
	}
}

// Randomize sets every cell from an independent coin flip.
func (g *Grid) Randomize(c Coin) {
	for i := range g.data {
		g.data[i] = c.Bool()
	}
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, alive := range g.data {
		if alive {
			n++
		}
	}
	return n
}

// Snapshot returns an immutable copy of the current cells.
func (g *Grid) Snapshot() Snapshot {
	cells := make([]bool, len(g.data))
	copy(cells, g.data)
	return Snapshot{W: g.W, H: g.H, cells: cells}
}

// Snapshot is a read-only copy of a grid at one point in time.
type Snapshot struct {
	W, H  int
	cells []bool
}

// Size returns the snapshot dimensions.
func (s Snapshot) Size() Size { return Size{W: s.W, H: s.H} }

// Alive reports the state of (x, y). Off-grid coordinates read as dead.
func (s Snapshot) Alive(x, y int) bool {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return false
	}
	return s.cells[y*s.W+x]
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (s Snapshot) Wrap(x, y int) (int, int) {
	return wrapCoord(x, s.W), wrapCoord(y, s.H)
}

// Cells returns a copy of the row-major cell values.
func (s Snapshot) Cells() []bool {
	out := make([]bool, len(s.cells))
	copy(out, s.cells)
	return out
}

// Rows returns the cells as H rows of W values each.
func (s Snapshot) Rows() [][]bool {
	rows := make([][]bool, s.H)
	for y := range rows {
		row := make([]bool, s.W)
		copy(row, s.cells[y*s.W:(y+1)*s.W])
		rows[y] = row
	}
	return rows
}

// Population counts live cells.
func (s Snapshot) Population() int {
	n := 0
	for _, alive := range s.cells {
		if alive {
			n++
		}
	}
	return n
}

// Equal reports whether two snapshots hold the same board.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.W != o.W || s.H != o.H || len(s.cells) != len(o.cells) {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// wrapCoord reduces v into [0, n) with floor semantics. n must be positive.
func wrapCoord(v, n int) int {
	return (v%n + n) % n
}
