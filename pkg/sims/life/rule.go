package life

import (
	"fmt"

	"lifeboard/pkg/core"
)

// Boundary selects how neighbor coordinates past the grid edge are treated.
type Boundary int

const (
	// Wrap connects opposite edges so every cell has 8 neighbors.
	Wrap Boundary = iota
	// Clamp treats off-grid neighbors as absent.
	Clamp
)

// String returns the config name of the boundary.
func (b Boundary) String() string {
	switch b {
	case Wrap:
		return "wrap"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("boundary(%d)", int(b))
	}
}

// ParseBoundary maps "wrap" or "clamp" to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "wrap", "":
		return Wrap, nil
	case "clamp":
		return Clamp, nil
	default:
		return Wrap, fmt.Errorf("unknown boundary %q", s)
	}
}

// Moore neighborhood, row by row starting top-left.
var offsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// LiveNeighbors counts the live cells around (x, y).
func LiveNeighbors(s core.Snapshot, x, y int, b Boundary) int {
	live := 0
	for _, o := range offsets {
		nx, ny := x+o[0], y+o[1]
		if b == Wrap {
			nx, ny = s.Wrap(nx, ny)
		}
		if s.Alive(nx, ny) {
			live++
		}
	}
	return live
}

// EvaluateCell applies B3/S23 to (x, y) and returns its next state.
func EvaluateCell(s core.Snapshot, x, y int, b Boundary) bool {
	live := LiveNeighbors(s, x, y, b)
	return live == 3 || (live == 2 && s.Alive(x, y))
}

// Step computes the next generation of g. The input grid is left untouched.
func Step(g *core.Grid, b Boundary) *core.Grid {
	return Advance(g.Snapshot(), b)
}

// Advance computes the generation following s as a new grid.
func Advance(s core.Snapshot, b Boundary) *core.Grid {
	next, _ := core.NewGrid(s.W, s.H)
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			if EvaluateCell(s, x, y, b) {
				_ = next.Set(x, y, true)
			}
		}
	}
	return next
}
