// Package render turns board snapshots into pixels.
package render

import (
	"image/color"

	"lifeboard/pkg/core"
)

// Board colors.
var (
	LiveColor color.Color = color.RGBA{R: 0xf8, G: 0xf8, B: 0xf2, A: 0xff}
	DeadColor color.Color = color.RGBA{R: 0x28, G: 0x2a, B: 0x36, A: 0xff}
)

// fillBinaryRGBA converts live/dead cells into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []bool, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, alive := range cells {
		base := i * 4
		if alive {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// SnapshotRGBA returns the board as a W*H*4 RGBA buffer, reusing buf when
// it is large enough.
func SnapshotRGBA(buf []byte, s core.Snapshot, on, off color.Color) []byte {
	n := 4 * s.W * s.H
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	fillBinaryRGBA(buf, s.Cells(), on, off)
	return buf
}

// CellAt maps a screen pixel to the board cell drawn under it at scale.
func CellAt(px, py, scale int, size core.Size) (x, y int, ok bool) {
	if scale <= 0 {
		scale = 1
	}
	if px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y = px/scale, py/scale
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}
