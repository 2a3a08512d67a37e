package main

import (
	"strings"

	tm "github.com/buger/goterm"
	"github.com/p47t/chip8emu"
	"github.com/pkg/term"
)

// terminals only report key presses, so a pressed key is held down for this
// many frames
const termKeyHoldFrames = 6

var termKeyMap = map[byte]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

type termFrontend struct {
	tty   *term.Term
	input chan byte
	held  [16]int
	quit  bool
	beep  bool
}

func newTermFrontend() (*termFrontend, error) {
	tty, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return nil, err
	}
	fe := &termFrontend{
		tty:   tty,
		input: make(chan byte, 64),
	}
	go fe.readInput()

	tm.Clear()
	return fe, nil
}

func (fe *termFrontend) readInput() {
	buf := make([]byte, 16)
	for {
		n, err := fe.tty.Read(buf)
		if err != nil {
			close(fe.input)
			return
		}
		for _, b := range buf[:n] {
			fe.input <- b
		}
	}
}

func (fe *termFrontend) PollInput(sys *chip8.System) bool {
	for drained := false; !drained; {
		select {
		case b, ok := <-fe.input:
			if !ok {
				return true
			}
			if b == 0x1B || b == 0x03 { // escape, ctrl-c
				fe.quit = true
				continue
			}
			if b >= 'A' && b <= 'Z' {
				b += 'a' - 'A'
			}
			if key, found := termKeyMap[b]; found {
				fe.held[key] = termKeyHoldFrames
			}
		default:
			drained = true
		}
	}

	for key, frames := range fe.held {
		sys.SetKey(uint8(key), frames > 0)
		if frames > 0 {
			fe.held[key]--
		}
	}

	// the host loop only renders on a dirty display, the bell is handled here
	sounding := sys.Sounding()
	if sounding && !fe.beep {
		tm.Print("\a")
		tm.Flush()
	}
	fe.beep = sounding

	return fe.quit
}

// Render draws two display rows per terminal line using half blocks.
func (fe *termFrontend) Render(sys *chip8.System) {
	var sb strings.Builder
	for y := 0; y < ScreenHeight; y += 2 {
		for x := 0; x < ScreenWidth; x++ {
			top := sys.GetPixel(uint8(x), uint8(y))
			bottom := sys.GetPixel(uint8(x), uint8(y+1))
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		// raw mode does not translate newlines
		sb.WriteString("\r\n")
	}

	tm.MoveCursor(1, 1)
	tm.Print(sb.String())
	tm.Flush()
}

func (fe *termFrontend) Terminate() {
	_ = fe.tty.Restore()
	_ = fe.tty.Close()
}
