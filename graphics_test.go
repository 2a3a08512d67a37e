package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawFontGlyph(t *testing.T) {
	// LD V0, 0; LD F, V0; LD V1, 2; LD V2, 3; DRW V1, V2, 5
	sys := newTestSystem(t, 0x6000, 0xF029, 0x6102, 0x6203, 0xD125)
	runCycles(t, sys, 5)

	assert.Equal(t, uint8(0), sys.cpu.V[RegCarry])
	// glyph 0 is 0xF0 0x90 0x90 0x90 0xF0
	for x := uint8(2); x < 6; x++ {
		assert.True(t, sys.GetPixel(x, 3))
		assert.True(t, sys.GetPixel(x, 7))
	}
	assert.True(t, sys.GetPixel(2, 5))
	assert.False(t, sys.GetPixel(3, 5))
	assert.True(t, sys.GetPixel(5, 5))
	assert.False(t, sys.GetPixel(6, 3))
	assert.True(t, sys.IsDirty())
}

func TestDrawTwiceRestoresScreen(t *testing.T) {
	sys := newTestSystem(t, 0xA300, 0xD013, 0xD013)
	sys.mem[0x300] = 0xA5
	sys.mem[0x301] = 0xFF
	sys.mem[0x302] = 0x18
	sys.cpu.V[0] = 10
	sys.cpu.V[1] = 20
	before := sys.Framebuffer()

	runCycles(t, sys, 2)
	assert.Equal(t, uint8(0), sys.cpu.V[RegCarry])
	assert.True(t, before != sys.Framebuffer())

	runCycles(t, sys, 1)
	assert.Equal(t, uint8(1), sys.cpu.V[RegCarry])
	assert.True(t, before == sys.Framebuffer())
}

func TestCollisionIsNotClearedByLaterPixels(t *testing.T) {
	sys := newTestSystem(t, 0xA300, 0xD012, 0xA302, 0xD012)
	sys.mem[0x300] = 0x80 // only the first pixel of the first row
	sys.mem[0x301] = 0x00
	sys.mem[0x302] = 0x80 // overlaps
	sys.mem[0x303] = 0xFF // fresh pixels after the collision

	runCycles(t, sys, 4)
	assert.Equal(t, uint8(1), sys.cpu.V[RegCarry])
	assert.False(t, sys.GetPixel(0, 0))
	assert.True(t, sys.GetPixel(7, 1))
}

func TestDrawWrapsStartCoordinate(t *testing.T) {
	sys := newTestSystem(t, 0xA300, 0xD011)
	sys.mem[0x300] = 0x80
	sys.cpu.V[0] = GfxWidth + 5
	sys.cpu.V[1] = GfxHeight*2 + 7

	runCycles(t, sys, 2)
	assert.True(t, sys.GetPixel(5, 7))
}

func TestDrawClipsAtEdges(t *testing.T) {
	sys := newTestSystem(t, 0xA300, 0xD014)
	for i := 0; i < 4; i++ {
		sys.mem[0x300+i] = 0xFF
	}
	sys.cpu.V[0] = GfxWidth - 3
	sys.cpu.V[1] = GfxHeight - 2

	runCycles(t, sys, 2)
	assert.Equal(t, uint8(0), sys.cpu.V[RegCarry])

	lit := 0
	fb := sys.Framebuffer()
	for _, px := range fb {
		if px == PixelOn {
			lit++
		}
	}
	// 3 columns by 2 rows survive, nothing wraps to the left or top
	assert.Equal(t, 6, lit)
	assert.False(t, sys.GetPixel(0, 0))
	assert.False(t, sys.GetPixel(0, GfxHeight-1))
	assert.True(t, sys.GetPixel(GfxWidth-1, GfxHeight-1))
}

func TestClearScreen(t *testing.T) {
	sys := newTestSystem(t, 0xA300, 0xD011, 0x00E0)
	sys.mem[0x300] = 0xFF

	runCycles(t, sys, 2)
	sys.SetDirty(false)
	runCycles(t, sys, 1)

	assert.True(t, sys.IsDirty())
	var blank [GfxWidth * GfxHeight]uint32
	assert.True(t, blank == sys.Framebuffer())
}

func TestGetPixelOutOfRange(t *testing.T) {
	var g Graphics
	assert.False(t, g.getPixel(GfxWidth, 0))
	assert.False(t, g.getPixel(0, GfxHeight))
}
