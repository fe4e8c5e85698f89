package life

import (
	"testing"

	"lifeboard/pkg/core"
)

func newGrid(t *testing.T, w, h int, live ...[2]int) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range live {
		if err := g.Set(p[0], p[1], true); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func expectLive(t *testing.T, g *core.Grid, expects map[[2]int]bool, label string) {
	t.Helper()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			alive := g.Alive(x, y)
			shouldBeAlive := expects[[2]int{x, y}]
			if shouldBeAlive != alive {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", label, x, y, alive, shouldBeAlive)
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	for _, b := range []Boundary{Wrap, Clamp} {
		g := newGrid(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

		g = Step(g, b)
		expectLive(t, g, map[[2]int]bool{
			{1, 2}: true,
			{2, 2}: true,
			{3, 2}: true,
		}, b.String()+" first step")

		g = Step(g, b)
		expectLive(t, g, map[[2]int]bool{
			{2, 1}: true,
			{2, 2}: true,
			{2, 3}: true,
		}, b.String()+" second step")
	}
}

func TestSmallBlinkerClamped(t *testing.T) {
	g := newGrid(t, 3, 3, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})
	g = Step(g, Clamp)
	expectLive(t, g, map[[2]int]bool{
		{0, 1}: true,
		{1, 1}: true,
		{2, 1}: true,
	}, "3x3 clamp")
}

func TestSmallTorusSeesWholeBoard(t *testing.T) {
	// On a 3x3 torus the 8 neighbors of any cell are exactly the other 8
	// cells, so three live cells give every dead cell a birth.
	g := newGrid(t, 3, 3, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})
	snap := g.Snapshot()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := 3
			if snap.Alive(x, y) {
				want = 2
			}
			if got := LiveNeighbors(snap, x, y, Wrap); got != want {
				t.Fatalf("(%d,%d) neighbors = %d, want %d", x, y, got, want)
			}
		}
	}
	if pop := Step(g, Wrap).Population(); pop != 9 {
		t.Fatalf("expected full board, population %d", pop)
	}
}

func TestRuleTable(t *testing.T) {
	ring := [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	for live := 0; live <= 8; live++ {
		for _, center := range []bool{false, true} {
			g := newGrid(t, 3, 3, ring[:live]...)
			if center {
				_ = g.Set(1, 1, true)
			}
			snap := g.Snapshot()
			if got := LiveNeighbors(snap, 1, 1, Clamp); got != live {
				t.Fatalf("neighbors = %d, want %d", got, live)
			}
			want := live == 3 || (live == 2 && center)
			if got := EvaluateCell(snap, 1, 1, Clamp); got != want {
				t.Fatalf("live=%d center=%v: next=%v, want %v", live, center, got, want)
			}
		}
	}
}

func TestWrapCornerDiagonal(t *testing.T) {
	const w, h = 6, 4
	g := newGrid(t, w, h, [2]int{0, 0}, [2]int{w - 1, h - 1})
	snap := g.Snapshot()
	if got := LiveNeighbors(snap, 0, 0, Wrap); got != 1 {
		t.Fatalf("wrap: (0,0) should see (W-1,H-1), got %d neighbors", got)
	}
	if got := LiveNeighbors(snap, w-1, h-1, Wrap); got != 1 {
		t.Fatalf("wrap: (W-1,H-1) should see (0,0), got %d neighbors", got)
	}
	if got := LiveNeighbors(snap, 0, 0, Clamp); got != 0 {
		t.Fatalf("clamp: corner must not wrap, got %d neighbors", got)
	}
}

func TestClampCornerDies(t *testing.T) {
	const w, h = 5, 5
	live := [][2]int{{0, 0}}
	for y := 0; y < h; y++ {
		live = append(live, [2]int{w - 1, y})
	}
	g := newGrid(t, w, h, live...)
	snap := g.Snapshot()

	if got := LiveNeighbors(snap, 0, 0, Clamp); got != 0 {
		t.Fatalf("clamp: corner counted %d neighbors", got)
	}
	if Step(g, Clamp).Alive(0, 0) {
		t.Fatal("clamp: isolated corner cell should die")
	}
	if got := LiveNeighbors(snap, 0, 0, Wrap); got != 3 {
		t.Fatalf("wrap: corner should count the far column, got %d", got)
	}
	if !Step(g, Wrap).Alive(0, 0) {
		t.Fatal("wrap: corner with the far column alive should be born/survive")
	}
}

func TestClampCornerAtMostThree(t *testing.T) {
	g := newGrid(t, 4, 4)
	g.Randomize(constCoin(true))
	snap := g.Snapshot()
	corners := [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}}
	for _, c := range corners {
		if got := LiveNeighbors(snap, c[0], c[1], Clamp); got != 3 {
			t.Fatalf("corner %v on full board counted %d", c, got)
		}
	}
	if got := LiveNeighbors(snap, 1, 0, Clamp); got != 5 {
		t.Fatalf("edge cell on full board counted %d", got)
	}
}

func TestStepPreservesDimensions(t *testing.T) {
	sizes := [][2]int{{0, 0}, {0, 4}, {4, 0}, {1, 1}, {7, 3}, {16, 9}}
	for _, b := range []Boundary{Wrap, Clamp} {
		for _, sz := range sizes {
			g := newGrid(t, sz[0], sz[1])
			g.Randomize(core.NewRNG(int64(sz[0]*31 + sz[1])))
			next := Step(g, b)
			if next.W != sz[0] || next.H != sz[1] {
				t.Fatalf("%s %dx%d: step produced %dx%d", b, sz[0], sz[1], next.W, next.H)
			}
		}
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	g := newGrid(t, 8, 8)
	g.Randomize(core.NewRNG(3))
	before := g.Snapshot()
	next := Step(g, Wrap)
	if !g.Snapshot().Equal(before) {
		t.Fatal("Step mutated its input")
	}
	if next == g {
		t.Fatal("Step must return a new grid")
	}
}

func TestParseBoundary(t *testing.T) {
	for _, b := range []Boundary{Wrap, Clamp} {
		parsed, err := ParseBoundary(b.String())
		if err != nil || parsed != b {
			t.Fatalf("ParseBoundary(%q) = %v, %v", b.String(), parsed, err)
		}
	}
	if _, err := ParseBoundary("mirror"); err == nil {
		t.Fatal("expected error for unknown boundary")
	}
}

type constCoin bool

func (c constCoin) Bool() bool { return bool(c) }
