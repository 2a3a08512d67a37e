package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
)

const (
	TimerHz         = 60
	DefaultSystemHz = 500
	DefaultScale    = 10
)

var errUsage = errors.New("usage")

type config struct {
	romFile  string
	frontend string
	scale    int
	hz       int
	seed     int64

	debug  bool
	quiet  bool
	trace  bool
	disasm bool
}

func parseFlags(args []string, output io.Writer) (config, error) {
	var cfg config

	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cfg.frontend, "frontend", "gl", "presenter to use: gl, sdl or term")
	flags.IntVar(&cfg.scale, "scale", DefaultScale, "window pixels per CHIP-8 pixel")
	flags.IntVar(&cfg.hz, "hz", DefaultSystemHz, "instructions executed per second")
	flags.Int64Var(&cfg.seed, "seed", 0, "seed for the random number generator, 0 picks one")
	flags.BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&cfg.quiet, "q", false, "only log errors")
	flags.BoolVar(&cfg.trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&cfg.disasm, "disasm", false, "print a listing of the ROM and exit")
	flags.Usage = func() {
		fmt.Fprintf(output, "usage: chip8 [options] <ROM file>\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return cfg, errUsage
	}
	cfg.romFile = flags.Arg(0)

	if cfg.trace {
		cfg.debug = true
	}
	if cfg.scale < 1 {
		return cfg, fmt.Errorf("invalid scale %d", cfg.scale)
	}
	if cfg.hz < TimerHz {
		return cfg, fmt.Errorf("hz must be at least %d", TimerHz)
	}
	switch cfg.frontend {
	case "gl", "sdl", "term":
	default:
		return cfg, fmt.Errorf("unknown frontend %q", cfg.frontend)
	}
	return cfg, nil
}

// cyclesPerFrame is the number of instructions run between two 60 Hz frames.
func (cfg config) cyclesPerFrame() int {
	return cfg.hz / TimerHz
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
