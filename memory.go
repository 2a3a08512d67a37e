package chip8

import "fmt"

const (
	MemorySize   = 4096
	FontAddress  = 0x050
	FontGlyphLen = 5
	MaxROMSize   = MemorySize - StartAddress
)

// Memory is the flat 4K address space. The interpreter area below
// StartAddress only holds the font.
type Memory [MemorySize]uint8

var fontSet = [16 * FontGlyphLen]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// clear zeroes memory and reloads the font.
func (mem *Memory) clear() {
	for i := 0; i < len(mem); i++ {
		mem[i] = 0
	}
	copy(mem[FontAddress:], fontSet[:])
}

// loadROM replaces the whole program area, so no bytes of a previously
// loaded program remain after a shorter one.
func (mem *Memory) loadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	n := copy(mem[StartAddress:], rom)
	for i := StartAddress + n; i < len(mem); i++ {
		mem[i] = 0
	}
	return nil
}

// checkRange reports whether n bytes starting at addr are addressable.
func (mem *Memory) checkRange(addr uint16, n int) error {
	if int(addr)+n > len(mem) {
		return fmt.Errorf("%w: 0x%04x+%d", ErrAddressOutOfRange, addr, n)
	}
	return nil
}

func (mem *Memory) fetchOpcode(pc uint16) (uint16, error) {
	if err := mem.checkRange(pc, 2); err != nil {
		return 0, err
	}
	return uint16(mem[pc])<<8 | uint16(mem[pc+1]), nil
}
