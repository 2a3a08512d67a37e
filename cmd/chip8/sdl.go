package main

import (
	"fmt"

	"github.com/p47t/chip8emu"
	"github.com/veandco/go-sdl2/sdl"
)

const sdlDepth = 4 // bytes per ARGB8888 pixel

type sdlFrontend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
}

var sdlKeyMap = map[sdl.Keycode]int{
	sdl.K_1: 0x1,
	sdl.K_2: 0x2,
	sdl.K_3: 0x3,
	sdl.K_4: 0xC,
	sdl.K_q: 0x4,
	sdl.K_w: 0x5,
	sdl.K_e: 0x6,
	sdl.K_r: 0xD,
	sdl.K_a: 0x7,
	sdl.K_s: 0x8,
	sdl.K_d: 0x9,
	sdl.K_f: 0xE,
	sdl.K_z: 0xA,
	sdl.K_x: 0x0,
	sdl.K_c: 0xB,
	sdl.K_v: 0xF,
}

func newSDLFrontend(scale int) (*sdlFrontend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize sdl: %w", err)
	}
	fe := &sdlFrontend{
		pixels: make([]byte, ScreenWidth*ScreenHeight*sdlDepth),
	}

	var err error
	fe.window, err = sdl.CreateWindow("Chip8", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(ScreenWidth*scale), int32(ScreenHeight*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		fe.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fe.renderer, err = sdl.CreateRenderer(fe.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		fe.Terminate()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	fe.texture, err = fe.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ARGB8888), int(sdl.TEXTUREACCESS_STREAMING),
		int32(ScreenWidth), int32(ScreenHeight))
	if err != nil {
		fe.Terminate()
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}
	return fe, nil
}

func (fe *sdlFrontend) PollInput(sys *chip8.System) bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				return true
			}
			c8Key, ok := sdlKeyMap[ev.Keysym.Sym]
			if !ok {
				continue
			}
			switch ev.Type {
			case sdl.KEYDOWN:
				sys.OnKeyDown(c8Key)
			case sdl.KEYUP:
				sys.OnKeyUp(c8Key)
			}
		}
	}
	return false
}

func (fe *sdlFrontend) Render(sys *chip8.System) {
	// cells are all-bits-set or zero so byte order does not matter
	fb := sys.Framebuffer()
	for i, px := range fb {
		v := byte(px)
		o := i * sdlDepth
		fe.pixels[o], fe.pixels[o+1], fe.pixels[o+2], fe.pixels[o+3] = v, v, v, 0xFF
	}

	if err := fe.texture.Update(nil, fe.pixels, ScreenWidth*sdlDepth); err != nil {
		return
	}
	_ = fe.renderer.Clear()
	_ = fe.renderer.Copy(fe.texture, nil, nil)
	fe.renderer.Present()
}

func (fe *sdlFrontend) Terminate() {
	if fe.texture != nil {
		_ = fe.texture.Destroy()
	}
	if fe.renderer != nil {
		_ = fe.renderer.Destroy()
	}
	if fe.window != nil {
		_ = fe.window.Destroy()
	}
	sdl.Quit()
}
