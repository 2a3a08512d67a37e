// Command chip8dump runs a ROM without a display and prints the machine state.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/p47t/chip8emu"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	cycles := flag.Int("cycles", 1000, "number of instructions to execute")
	seed := flag.Int64("seed", 1, "seed for the random number generator")
	watch := flag.Duration("watch", 0, "redraw the machine state after every instruction, waiting this long in between")
	debug := flag.Bool("debug", false, "log every executed instruction")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: chip8dump [options] <ROM file>\n\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := log.DefaultConfig()
	if *debug {
		cfg.Level = log.DebugLevel
	}
	logger := log.NewWithConfig(cfg)

	sys := chip8.New(chip8.WithSeed(*seed), chip8.WithLogger(logger), chip8.WithTrace(*debug))
	if err := sys.Load(flag.Arg(0)); err != nil {
		logger.Fatal("Loading ROM failed", log.Err(err))
	}

	err := run(sys, *cycles, *watch)
	dump(os.Stdout, sys)

	var fault *chip8.Fault
	if errors.As(err, &fault) {
		logger.Error("Execution stopped", log.Hex("pc", fault.PC), log.Err(fault.Err))
		os.Exit(1)
	}
}

func run(sys *chip8.System, cycles int, watch time.Duration) error {
	for i := 0; i < cycles; i++ {
		if err := sys.Cycle(); err != nil {
			return err
		}
		if watch > 0 {
			sys.Print()
			time.Sleep(watch)
		}
	}
	return nil
}

func dump(w io.Writer, sys *chip8.System) {
	cpu := sys.CPU()
	cpu.Print(w)
	fmt.Fprintf(w, "DT = %d, ST = %d\n\n", sys.DelayTimer(), sys.SoundTimer())

	for y := 0; y < chip8.GfxHeight; y++ {
		line := make([]byte, chip8.GfxWidth)
		for x := range line {
			line[x] = '.'
			if sys.GetPixel(uint8(x), uint8(y)) {
				line[x] = '#'
			}
		}
		fmt.Fprintf(w, "%s\n", line)
	}
}
