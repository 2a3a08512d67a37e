package chip8

import (
	"fmt"
	"io"
	"os"

	tm "github.com/buger/goterm"
	"github.com/retroenv/retrogolib/log"
)

// System is a complete machine: CPU, memory, display, keypad and timers. It
// is driven by calling Cycle and is not safe for concurrent use. The zero
// value powers on at the first LoadROM or Cycle call.
type System struct {
	cpu CPU
	mem Memory
	gfx Graphics

	keys [16]bool

	delayTimer uint8
	soundTimer uint8

	rom    []byte
	rng    Random
	logger *log.Logger
	trace  bool

	powered bool
}

// New returns a system in its power-on state with the font loaded and PC at
// StartAddress.
func New(options ...Option) *System {
	sys := &System{}
	for _, option := range options {
		option(sys)
	}
	if sys.rng == nil {
		sys.rng = NewRandom(0)
	}
	if sys.logger == nil {
		cfg := log.DefaultConfig()
		cfg.Level = log.ErrorLevel
		sys.logger = log.NewWithConfig(cfg)
	}
	sys.initialize()
	return sys
}

func (sys *System) random() Random {
	if sys.rng == nil {
		sys.rng = NewRandom(0)
	}
	return sys.rng
}

func (sys *System) log() *log.Logger {
	if sys.logger == nil {
		sys.logger = log.NewNop()
	}
	return sys.logger
}

func (sys *System) powerOn() {
	if !sys.powered {
		sys.initialize()
	}
}

func (sys *System) initialize() {
	sys.cpu.reset()
	sys.mem.clear()
	sys.gfx.clear()

	for i := 0; i < len(sys.keys); i++ {
		sys.keys[i] = false
	}

	sys.delayTimer = 0
	sys.soundTimer = 0
	sys.powered = true
}

// Reset returns the system to its power-on state and reloads the last
// program given to LoadROM.
func (sys *System) Reset() {
	sys.initialize()
	if sys.rom != nil {
		_ = sys.mem.loadROM(sys.rom)
	}
}

func (sys *System) Print() {
	tm.Clear()
	tm.MoveCursor(1, 1)

	sys.cpu.Print(tm.Screen)
	fmt.Fprintf(tm.Screen, "DT = %d, ST = %d\n", sys.delayTimer, sys.soundTimer)
	if opc, err := sys.mem.fetchOpcode(sys.cpu.PC); err == nil {
		fmt.Fprintf(tm.Screen, "next: %s\n", Decode(opc))
	}

	tm.Flush()
}

// Cycle executes a single instruction and then updates the timers. A *Fault
// is returned if the instruction could not be executed, in which case
// nothing has changed.
func (sys *System) Cycle() error {
	sys.powerOn()
	if err := sys.cpu.Cycle(sys); err != nil {
		sys.log().Debug("Execution fault", log.Err(err))
		return err
	}

	sys.updateTimer()
	return nil
}

func (sys *System) updateTimer() {
	if sys.delayTimer > 0 {
		sys.delayTimer--
	}
	if sys.soundTimer > 0 {
		sys.soundTimer--
	}
}

func (sys *System) unknownOp(in Instruction) {
	sys.log().Debug("Unknown opcode",
		log.Hex("pc", sys.cpu.PC-2),
		log.Hex("opcode", in.Opcode))
}

// Load reads a ROM file and loads it at StartAddress.
func (sys *System) Load(filename string) error {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}
	return sys.LoadROM(bytes)
}

// LoadROM copies rom into memory at StartAddress. Memory is left unchanged if
// the rom is too large.
func (sys *System) LoadROM(rom []byte) error {
	sys.powerOn()
	if err := sys.mem.loadROM(rom); err != nil {
		return err
	}
	sys.rom = append([]byte(nil), rom...)
	sys.log().Debug("ROM loaded", log.Int("size", len(rom)))
	return nil
}

// Disassemble writes a listing of the loaded program.
func (sys *System) Disassemble(w io.Writer) error {
	return Disassemble(w, sys.rom)
}

func (sys *System) GetPixel(x, y uint8) bool {
	return sys.gfx.getPixel(x, y)
}

// Framebuffer returns a copy of the display, row-major, PixelOn or PixelOff
// per cell.
func (sys *System) Framebuffer() [GfxWidth * GfxHeight]uint32 {
	return sys.gfx.buffer
}

func (sys *System) IsDirty() bool {
	return sys.gfx.isDirty()
}

func (sys *System) SetDirty(dirty bool) {
	sys.gfx.setDirty(dirty)
}

// SetKey records the state of key 0x0-0xF. Other keys are ignored.
func (sys *System) SetKey(key uint8, down bool) {
	if int(key) < len(sys.keys) {
		sys.keys[key] = down
	}
}

func (sys *System) OnKeyDown(key int) {
	if key >= 0 {
		sys.SetKey(uint8(key), true)
	}
}

func (sys *System) OnKeyUp(key int) {
	if key >= 0 {
		sys.SetKey(uint8(key), false)
	}
}

func (sys *System) DelayTimer() uint8 {
	return sys.delayTimer
}

func (sys *System) SoundTimer() uint8 {
	return sys.soundTimer
}

// Sounding reports whether the buzzer should be on.
func (sys *System) Sounding() bool {
	return sys.soundTimer > 0
}

// CPU returns a copy of the register file.
func (sys *System) CPU() CPU {
	return sys.cpu
}

func (sys *System) Cycles() int64 {
	return sys.cpu.cycles
}
