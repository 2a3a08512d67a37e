package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrROMTooLarge       = errors.New("rom does not fit in memory")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrInvalidKey        = errors.New("invalid key")

	// decoded op without a case in CPU.execute
	errUnhandledOp = errors.New("unhandled op")
)

// Fault is returned by Cycle when an instruction cannot be executed. The
// machine state is left as it was before the faulting instruction was fetched.
type Fault struct {
	PC     uint16 // address of the faulting instruction
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at 0x%03x (opcode %04x): %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
