package main

import (
	"time"

	"github.com/p47t/chip8emu"
	"github.com/retroenv/retrogolib/log"
)

const (
	ScreenWidth  = chip8.GfxWidth
	ScreenHeight = chip8.GfxHeight
)

// frontend presents the display and feeds the keypad.
type frontend interface {
	// PollInput updates the keypad and reports whether the user asked to quit.
	PollInput(sys *chip8.System) bool
	Render(sys *chip8.System)
	Terminate()
}

type Emulator struct {
	sys    *chip8.System
	fe     frontend
	cfg    config
	logger *log.Logger
}

func NewEmulator(cfg config, sys *chip8.System, logger *log.Logger) (*Emulator, error) {
	var (
		fe  frontend
		err error
	)
	switch cfg.frontend {
	case "sdl":
		fe, err = newSDLFrontend(cfg.scale)
	case "term":
		fe, err = newTermFrontend()
	default:
		fe, err = newGLFrontend(sys, cfg.scale)
	}
	if err != nil {
		return nil, err
	}

	return &Emulator{
		sys:    sys,
		fe:     fe,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Loop runs the machine until the frontend asks to quit or an instruction
// faults.
func (emu *Emulator) Loop() error {
	emu.logger.Info("Starting emulation",
		log.String("frontend", emu.cfg.frontend),
		log.Int("hz", emu.cfg.hz))

	for {
		start := time.Now()

		if emu.fe.PollInput(emu.sys) {
			return nil
		}

		for i := 0; i < emu.cfg.cyclesPerFrame(); i++ {
			if err := emu.sys.Cycle(); err != nil {
				return err
			}
		}

		if emu.sys.IsDirty() {
			emu.fe.Render(emu.sys)
			emu.sys.SetDirty(false)
		}

		if elapsed, slice := time.Since(start), time.Second/TimerHz; elapsed < slice {
			time.Sleep(slice - elapsed)
		}
	}
}

func (emu *Emulator) Terminate() {
	if emu.fe != nil {
		emu.fe.Terminate()
		emu.fe = nil
	}
}
