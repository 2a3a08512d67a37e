package main

import (
	"errors"
	"flag"
	"os"
	"runtime"

	"github.com/p47t/chip8emu"
	"github.com/retroenv/retrogolib/log"
)

func init() {
	// GLFW and SDL event handling must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		createLogger(false, false).Fatal(err.Error())
	}

	logger := createLogger(cfg.debug, cfg.quiet)

	sys := chip8.New(
		chip8.WithLogger(logger),
		chip8.WithSeed(cfg.seed),
		chip8.WithTrace(cfg.trace),
	)
	if err := sys.Load(cfg.romFile); err != nil {
		logger.Fatal("Loading ROM failed", log.String("file", cfg.romFile), log.Err(err))
	}

	if cfg.disasm {
		if err := sys.Disassemble(os.Stdout); err != nil {
			logger.Fatal("Disassembling failed", log.Err(err))
		}
		return
	}

	emu, err := NewEmulator(cfg, sys, logger)
	if err != nil {
		logger.Fatal("Initializing frontend failed", log.String("frontend", cfg.frontend), log.Err(err))
	}
	defer emu.Terminate()

	if err := emu.Loop(); err != nil {
		logger.Error("Emulation stopped", log.Err(err))
		emu.Terminate()
		os.Exit(1)
	}
}
