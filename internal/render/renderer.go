//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"lifeboard/pkg/core"
)

// GridPainter keeps a single RGBA image in sync with board snapshots.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{}
	gp.resize(w, h)
	return gp
}

func (gp *GridPainter) resize(w, h int) {
	gp.w, gp.h = w, h
	gp.img = nil
	if w > 0 && h > 0 {
		gp.img = ebiten.NewImage(w, h)
	}
}

// Blit uploads s into the painter image and draws it scaled onto dst. The
// image is reallocated when the board dimensions change.
func (gp *GridPainter) Blit(dst *ebiten.Image, s core.Snapshot, on, off color.Color, scale int) {
	if s.W != gp.w || s.H != gp.h {
		gp.resize(s.W, s.H)
	}
	if gp.img == nil {
		return
	}
	gp.buf = SnapshotRGBA(gp.buf, s, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
