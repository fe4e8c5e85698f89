//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lifeboard/internal/render"
	"lifeboard/pkg/core"
)

// Overlay draws the hovered-cell highlight and optional grid lines on top of
// the board.
type Overlay struct {
	sim      core.Sim
	scale    int
	showGrid bool
	hoverX   int
	hoverY   int
	hovering bool
	pixel    *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update tracks the cursor and the grid toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	mx, my := ebiten.CursorPosition()
	o.hoverX, o.hoverY, o.hovering = render.CellAt(mx, my, o.scale, o.sim.Size())
}

// Hovered returns the cell under the cursor, if any.
func (o *Overlay) Hovered() (x, y int, ok bool) {
	return o.hoverX, o.hoverY, o.hovering
}

// Draw renders the overlay onto the provided screen. The hover highlight is
// only shown while edits are accepted.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showGrid && scale >= 4 {
		line := color.RGBA{R: 68, G: 71, B: 90, A: 160}
		for x := 1; x < size.W; x++ {
			o.fillRect(screen, float64(x*scale), 0, 1, float64(size.H*scale), line)
		}
		for y := 1; y < size.H; y++ {
			o.fillRect(screen, 0, float64(y*scale), float64(size.W*scale), 1, line)
		}
	}
	if o.hovering && !o.sim.Running() {
		x := float64(o.hoverX * scale)
		y := float64(o.hoverY * scale)
		s := float64(scale)
		hl := color.RGBA{R: 98, G: 114, B: 164, A: 200}
		o.fillRect(screen, x, y, s, 1, hl)
		o.fillRect(screen, x, y+s-1, s, 1, hl)
		o.fillRect(screen, x, y, 1, s, hl)
		o.fillRect(screen, x+s-1, y, 1, s, hl)
	}
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
