package chip8

const (
	GfxWidth  = 64
	GfxHeight = 32

	PixelOn  uint32 = 0xFFFFFFFF
	PixelOff uint32 = 0
)

// Graphics is the 64x32 framebuffer, one full-width colour value per pixel
// so that a presenter can upload it as a texture unchanged.
type Graphics struct {
	buffer [GfxWidth * GfxHeight]uint32
	dirty  bool
}

func (g *Graphics) isDirty() bool {
	return g.dirty
}

func (g *Graphics) setDirty(dirty bool) {
	g.dirty = dirty
}

func (g *Graphics) clear() {
	for i := 0; i < len(g.buffer); i++ {
		g.buffer[i] = PixelOff
	}
	g.dirty = true
}

func (g *Graphics) getPixel(x, y uint8) bool {
	if int(x) >= GfxWidth || int(y) >= GfxHeight {
		return false
	}
	return g.buffer[int(y)*GfxWidth+int(x)] != PixelOff
}

// draw XORs sprite rows onto the buffer with the top-left corner at (x, y)
// taken modulo the screen size. Pixels falling off the right or bottom edge
// are clipped. It returns true if any lit pixel was turned off.
func (g *Graphics) draw(sprite []uint8, x, y uint8) bool {
	hit := false
	x0 := int(x) % GfxWidth
	y0 := int(y) % GfxHeight
	for r, row := range sprite {
		py := y0 + r
		if py >= GfxHeight {
			break
		}
		for b := 0; b < 8; b++ {
			if row&(0x80>>b) == 0 {
				continue
			}
			px := x0 + b
			if px >= GfxWidth {
				break
			}
			offset := py*GfxWidth + px
			if g.buffer[offset] != PixelOff {
				hit = true
			}
			g.buffer[offset] ^= PixelOn
		}
	}
	g.dirty = true
	return hit
}
