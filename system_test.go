package chip8

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAddProgram(t *testing.T) {
	sys := New()
	assert.NoError(t, sys.LoadROM([]byte{0x60, 0x05, 0x61, 0x0A, 0x80, 0x14}))

	for i := 0; i < 3; i++ {
		assert.NoError(t, sys.Cycle())
	}

	cpu := sys.CPU()
	assert.Equal(t, uint8(15), cpu.V[0])
	assert.Equal(t, uint8(0), cpu.V[RegCarry])
	assert.Equal(t, uint16(0x206), cpu.PC)
	assert.Equal(t, int64(3), sys.Cycles())
}

func TestPowerOnState(t *testing.T) {
	sys := New()
	cpu := sys.CPU()
	assert.Equal(t, uint16(StartAddress), cpu.PC)
	assert.Equal(t, uint16(0), cpu.SP)
	assert.Equal(t, uint16(0), cpu.I)
	assert.True(t, fontSet == [80]uint8(sys.mem[FontAddress:FontAddress+80]))
	assert.Equal(t, uint8(0), sys.mem[StartAddress])
}

func TestTimersCountDownToZero(t *testing.T) {
	// LD V0, 3; LD DT, V0; LD ST, V0; then spin
	sys := newTestSystem(t, 0x6003, 0xF015, 0xF018, 0x1206)
	runCycles(t, sys, 2)
	assert.Equal(t, uint8(2), sys.DelayTimer())

	expected := []struct{ dt, st uint8 }{{1, 2}, {0, 1}, {0, 0}, {0, 0}, {0, 0}}
	for _, e := range expected {
		runCycles(t, sys, 1)
		assert.Equal(t, e.dt, sys.DelayTimer())
		assert.Equal(t, e.st, sys.SoundTimer())
	}
	assert.False(t, sys.Sounding())
}

func TestLoadROMTooLarge(t *testing.T) {
	sys := newTestSystem(t)
	before := sys.mem

	err := sys.LoadROM(make([]byte, MaxROMSize+1))
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.True(t, before == sys.mem)

	assert.NoError(t, sys.LoadROM(make([]byte, MaxROMSize)))
}

func TestLoadROMClearsPreviousProgram(t *testing.T) {
	sys := New()
	assert.NoError(t, sys.LoadROM([]byte{0x60, 0x05, 0x61, 0x0A, 0x80, 0x14}))
	sys.mem[0xFFF] = 0x77

	assert.NoError(t, sys.LoadROM([]byte{0x12, 0x00}))
	assert.Equal(t, uint8(0x12), sys.mem[StartAddress])
	assert.Equal(t, uint8(0x00), sys.mem[StartAddress+1])
	for addr := StartAddress + 2; addr < MemorySize; addr++ {
		assert.Equal(t, uint8(0), sys.mem[addr])
	}
	assert.True(t, fontSet == [80]uint8(sys.mem[FontAddress:FontAddress+80]))
}

func TestZeroValueSystem(t *testing.T) {
	var sys System
	// RND V0, $FF; unknown opcode; RET with an empty stack
	assert.NoError(t, sys.LoadROM([]byte{0xC0, 0xFF, 0x80, 0x0F, 0x00, 0xEE}))
	assert.True(t, fontSet == [80]uint8(sys.mem[FontAddress:FontAddress+80]))
	assert.Equal(t, uint16(StartAddress), sys.cpu.PC)

	assert.NoError(t, sys.Cycle())
	assert.NoError(t, sys.Cycle())
	assert.Equal(t, uint16(0x204), sys.cpu.PC)

	err := sys.Cycle()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(0x204), sys.cpu.PC)
	assert.Equal(t, int64(2), sys.Cycles())
}

func TestZeroValueSystemCyclesWithoutROM(t *testing.T) {
	var sys System
	// empty memory decodes to SYS $000
	assert.NoError(t, sys.Cycle())
	assert.Equal(t, uint16(StartAddress+2), sys.cpu.PC)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x60, 0x05, 0x61, 0x0A}, 0o600))

	sys := New()
	assert.NoError(t, sys.Load(path))
	assert.Equal(t, uint8(0x60), sys.mem[StartAddress])
	assert.Equal(t, uint8(0x0A), sys.mem[StartAddress+3])

	err := sys.Load(filepath.Join(dir, "missing.ch8"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReset(t *testing.T) {
	sys := newTestSystem(t, 0x6005, 0xA300, 0xF055, 0x00E0)
	sys.OnKeyDown(3)
	runCycles(t, sys, 4)

	sys.Reset()
	cpu := sys.CPU()
	assert.Equal(t, uint16(StartAddress), cpu.PC)
	assert.Equal(t, uint8(0), cpu.V[0])
	assert.Equal(t, uint8(0), sys.mem[0x300])
	assert.Equal(t, uint8(0x60), sys.mem[StartAddress])
	assert.False(t, sys.keys[3])
	assert.Equal(t, int64(0), sys.Cycles())
}

func TestKeypadInput(t *testing.T) {
	sys := New()
	sys.OnKeyDown(0xF)
	assert.True(t, sys.keys[0xF])
	sys.OnKeyUp(0xF)
	assert.False(t, sys.keys[0xF])

	// out of range keys are dropped
	sys.OnKeyDown(0x10)
	sys.OnKeyDown(-1)
	sys.SetKey(0xFF, true)
	for _, down := range sys.keys {
		assert.False(t, down)
	}
}

func TestTraceLogging(t *testing.T) {
	sys := newTestSystem(t, 0x6005)
	sys.trace = true
	runCycles(t, sys, 1)
	assert.Equal(t, uint8(5), sys.cpu.V[0])
}

// benchmarkProgram draws every font glyph across the screen forever.
var benchmarkProgram = []byte{
	0x60, 0x00, // 200: LD V0, 0       digit
	0x61, 0x00, // 202: LD V1, 0       x
	0x62, 0x00, // 204: LD V2, 0       y
	0xF0, 0x29, // 206: LD F, V0
	0xD1, 0x25, // 208: DRW V1, V2, 5
	0x70, 0x01, // 20A: ADD V0, 1
	0x80, 0x33, // 20C: XOR V0, V3     V3 is 0, keeps the flag logic busy
	0x40, 0x10, // 20E: SNE V0, $10
	0x60, 0x00, // 210: LD V0, 0
	0x71, 0x05, // 212: ADD V1, 5
	0x41, 0x3C, // 214: SNE V1, $3C
	0x72, 0x06, // 216: ADD V2, 6
	0x31, 0x3C, // 218: SE V1, $3C
	0x12, 0x06, // 21A: JP $206
	0x61, 0x00, // 21C: LD V1, 0
	0x12, 0x06, // 21E: JP $206
}

func BenchmarkFontLoop(b *testing.B) {
	benchmarkRom(b, benchmarkProgram, 10000)
}

func benchmarkRom(b *testing.B, rom []byte, cycles int) {
	sys := New(WithSeed(1))
	if err := sys.LoadROM(rom); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sys.Reset()
		for i := 0; i < cycles; i++ {
			if err := sys.Cycle(); err != nil {
				b.Fatal(err)
			}
		}
	}
}
