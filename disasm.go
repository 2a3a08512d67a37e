package chip8

import (
	"fmt"
	"io"
)

// Disassemble writes a listing of rom, assumed to be loaded at StartAddress,
// one word per line. A trailing odd byte is listed as data.
func Disassemble(w io.Writer, rom []byte) error {
	addr := uint16(StartAddress)
	for i := 0; i+1 < len(rom); i += 2 {
		opc := uint16(rom[i])<<8 | uint16(rom[i+1])
		if _, err := fmt.Fprintf(w, "%03X  %04X  %s\n", addr, opc, Decode(opc)); err != nil {
			return err
		}
		addr += 2
	}
	if len(rom)%2 != 0 {
		if _, err := fmt.Fprintf(w, "%03X  %02X    DB $%02X\n", addr, rom[len(rom)-1], rom[len(rom)-1]); err != nil {
			return err
		}
	}
	return nil
}
