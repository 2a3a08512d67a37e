package chip8

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
)

const (
	StartAddress = 0x200
	RegCarry     = 0xF
	StackDepth   = 16
)

type CPU struct {
	V     [16]uint8 // general-purpose registers
	I     uint16    // Index register
	PC    uint16    // program counter
	SP    uint16    // stack pointer
	Stack [StackDepth]uint16

	cycles int64
}

func (cpu *CPU) Print(w io.Writer) {
	fmt.Fprintf(w, "Cycles #%d\n", cpu.cycles)
	fmt.Fprintf(w, "PC = 0x%04x, SP = %d, I = 0x%04x\n", cpu.PC, cpu.SP, cpu.I)
	for i := 0; i < len(cpu.V); i += 4 {
		fmt.Fprintf(w, "V%X = 0x%02x, V%X = 0x%02x, V%X = 0x%02x, V%X = 0x%02x\n",
			i, cpu.V[i], i+1, cpu.V[i+1], i+2, cpu.V[i+2], i+3, cpu.V[i+3])
	}
	for i := uint16(0); i < cpu.SP; i++ {
		fmt.Fprintf(w, "Stack[%d] = 0x%04x\n", i, cpu.Stack[i])
	}
}

func (cpu *CPU) reset() {
	cpu.PC = StartAddress
	cpu.I = 0
	cpu.SP = 0
	cpu.cycles = 0

	// clear stack
	for i := 0; i < len(cpu.Stack); i++ {
		cpu.Stack[i] = 0
	}

	// clear register V0-VF
	for i := 0; i < len(cpu.V); i++ {
		cpu.V[i] = 0
	}
}

func (cpu *CPU) Cycle(sys *System) error {
	if err := cpu.step(sys); err != nil {
		return err
	}
	cpu.cycles++
	return nil
}

// fetch, advance PC, decode and execute one instruction. A failing
// instruction rewinds PC to its own address.
func (cpu *CPU) step(sys *System) error {
	pc := cpu.PC
	opc, err := sys.mem.fetchOpcode(pc)
	if err != nil {
		return &Fault{PC: pc, Err: err}
	}
	cpu.PC += 2

	in := Decode(opc)
	if sys.trace {
		sys.log().Debug("exec",
			log.Hex("pc", pc),
			log.Hex("opcode", opc),
			log.String("instr", in.String()))
	}

	if err := cpu.execute(sys, in); err != nil {
		cpu.PC = pc
		return &Fault{PC: pc, Opcode: opc, Err: err}
	}
	return nil
}

func (cpu *CPU) execute(sys *System, in Instruction) error {
	x, y := in.X, in.Y

	switch in.Op {
	case OpSys: // 0NNN: Calls machine code routine at address NNN
		cpu.callRCA1802(in.NNN)
	case OpCls: // 00E0: Clears the screen
		cpu.cls(&sys.gfx)
	case OpRet: // 00EE: Returns from subroutine
		return cpu.ret()
	case OpJp: // 1NNN: Jumps to address NNN
		cpu.jpAddr(in.NNN)
	case OpCall: // 2NNN: Calls subroutine at NNN
		return cpu.callAddr(in.NNN)
	case OpSeByte: // 3XNN: Skips the next instruction if VX equals NN
		cpu.seVxByte(x, in.KK)
	case OpSneByte: // 4XNN: Skips the next instruction if VX doesn't equal NN
		cpu.sneVxByte(x, in.KK)
	case OpSeReg: // 5XY0: Skips the next instruction if VX equals VY
		cpu.seVxVy(x, y)
	case OpLdByte: // 6XNN: Sets VX to NN
		cpu.ldVxByte(x, in.KK)
	case OpAddByte: // 7XNN: Adds NN to VX, carry flag is not changed
		cpu.addVxByte(x, in.KK)
	case OpLdReg: // 8XY0: Sets VX to the value of VY
		cpu.ldVxVy(x, y)
	case OpOr: // 8XY1: Sets VX to VX OR VY
		cpu.orVxVy(x, y)
	case OpAnd: // 8XY2: Sets VX to VX AND VY
		cpu.andVxVy(x, y)
	case OpXor: // 8XY3: Sets VX to VX XOR VY
		cpu.xorVxVy(x, y)
	case OpAddReg: // 8XY4: Adds VY to VX. VF is set to 1 when there's a carry, and to 0 when there isn't
		cpu.addVxVy(x, y)
	case OpSub: // 8XY5: VY is subtracted from VX. VF is set to 0 when there's a borrow, and 1 when there isn't
		cpu.subVxVy(x, y)
	case OpShr: // 8XY6: Shifts VX right by one. VF is set to the least significant bit of VX before the shift
		cpu.shrVx(x)
	case OpSubn: // 8XY7: Sets VX to VY minus VX. VF is set to 0 when there's a borrow, and 1 when there isn't
		cpu.subnVxVy(x, y)
	case OpShl: // 8XYE: Shifts VX left by one. VF is set to the most significant bit of VX before the shift
		cpu.shlVx(x)
	case OpSneReg: // 9XY0: Skips the next instruction if VX doesn't equal VY
		cpu.sneVxVy(x, y)
	case OpLdI: // ANNN: Sets I to the address NNN
		cpu.ldIAddr(in.NNN)
	case OpJpV0: // BNNN: Jumps to the address NNN plus V0
		cpu.jpV0Addr(in.NNN)
	case OpRnd: // CXNN: Sets VX to a random number and NN
		cpu.rndVxByte(sys.random(), x, in.KK)
	case OpDrw: // DXYN: Draws an 8xN sprite from memory at I to (VX, VY)
		return cpu.drwVxVyNibble(&sys.mem, &sys.gfx, x, y, in.N)
	case OpSkp: // EX9E: Skips the next instruction if the key stored in VX is pressed
		return cpu.skpVx(sys, x)
	case OpSknp: // EXA1: Skips the next instruction if the key stored in VX isn't pressed
		return cpu.sknpVx(sys, x)
	case OpLdVxDT: // FX07: Sets VX to the value of the delay timer
		cpu.ldVxDT(sys, x)
	case OpLdVxK: // FX0A: A key press is awaited, and then stored in VX
		cpu.ldVxK(sys, x)
	case OpLdDTVx: // FX15: Sets the delay timer to VX
		cpu.ldDTVx(sys, x)
	case OpLdSTVx: // FX18: Sets the sound timer to VX
		cpu.ldSTVx(sys, x)
	case OpAddI: // FX1E: Adds VX to I
		cpu.addIVx(x)
	case OpLdF: // FX29: Sets I to the location of the font sprite for the digit in VX
		cpu.ldFVx(x)
	case OpLdB: // FX33: Stores the BCD representation of VX at I, I+1 and I+2
		return cpu.ldBVx(&sys.mem, x)
	case OpLdIVx: // FX55: Stores V0 to VX in memory starting at address I
		return cpu.ldIVx(&sys.mem, x)
	case OpLdVxI: // FX65: Fills V0 to VX with values from memory starting at address I
		return cpu.ldVxI(&sys.mem, x)
	case OpInvalid:
		sys.unknownOp(in)
	default:
		return fmt.Errorf("%w: %d", errUnhandledOp, in.Op)
	}
	return nil
}

func (cpu *CPU) skip() {
	cpu.PC += 2
}

func (cpu *CPU) jpAddr(addr uint16) {
	cpu.PC = addr
}

func (cpu *CPU) callAddr(addr uint16) error {
	if cpu.SP >= StackDepth {
		return ErrStackOverflow
	}
	cpu.Stack[cpu.SP] = cpu.PC
	cpu.SP++
	cpu.PC = addr
	return nil
}

func (cpu *CPU) ret() error {
	if cpu.SP == 0 {
		return ErrStackUnderflow
	}
	cpu.SP--
	cpu.PC = cpu.Stack[cpu.SP]
	return nil
}

func (cpu *CPU) callRCA1802(addr uint16) {
	// native RCA 1802 routines are not emulated
}

func (cpu *CPU) cls(gfx *Graphics) {
	gfx.clear()
}

func (cpu *CPU) seVxByte(x, val uint8) {
	if cpu.V[x] == val {
		cpu.skip()
	}
}

func (cpu *CPU) sneVxByte(x, val uint8) {
	if cpu.V[x] != val {
		cpu.skip()
	}
}

func (cpu *CPU) seVxVy(x, y uint8) {
	if cpu.V[x] == cpu.V[y] {
		cpu.skip()
	}
}

func (cpu *CPU) ldVxByte(x, val uint8) {
	cpu.V[x] = val
}

func (cpu *CPU) addVxByte(x, val uint8) {
	cpu.V[x] += val
}

func (cpu *CPU) ldVxVy(x, y uint8) {
	cpu.V[x] = cpu.V[y]
}

func (cpu *CPU) orVxVy(x, y uint8) {
	cpu.V[x] |= cpu.V[y]
}

func (cpu *CPU) andVxVy(x, y uint8) {
	cpu.V[x] &= cpu.V[y]
}

func (cpu *CPU) xorVxVy(x, y uint8) {
	cpu.V[x] ^= cpu.V[y]
}

// the flag is written last so that it survives when VF is the destination

func (cpu *CPU) addVxVy(x, y uint8) {
	var carry uint8
	if cpu.V[x] > 0xFF-cpu.V[y] {
		carry = 1
	}
	cpu.V[x] += cpu.V[y]
	cpu.setCarry(carry)
}

func (cpu *CPU) subVxVy(x, y uint8) {
	var carry uint8
	if cpu.V[x] > cpu.V[y] {
		carry = 1
	}
	cpu.V[x] -= cpu.V[y]
	cpu.setCarry(carry)
}

func (cpu *CPU) setCarry(carry uint8) {
	cpu.V[RegCarry] = carry
}

func (cpu *CPU) shrVx(x uint8) {
	carry := cpu.V[x] & 0x01
	cpu.V[x] >>= 1
	cpu.setCarry(carry)
}

func (cpu *CPU) subnVxVy(x, y uint8) {
	var carry uint8
	if cpu.V[y] > cpu.V[x] {
		carry = 1
	}
	cpu.V[x] = cpu.V[y] - cpu.V[x]
	cpu.setCarry(carry)
}

func (cpu *CPU) shlVx(x uint8) {
	carry := cpu.V[x] >> 7
	cpu.V[x] <<= 1
	cpu.setCarry(carry)
}

func (cpu *CPU) sneVxVy(x, y uint8) {
	if cpu.V[x] != cpu.V[y] {
		cpu.skip()
	}
}

func (cpu *CPU) ldIAddr(index uint16) {
	cpu.I = index
}

func (cpu *CPU) jpV0Addr(addr uint16) {
	cpu.PC = addr + uint16(cpu.V[0])
}

func (cpu *CPU) rndVxByte(rng Random, x, val uint8) {
	cpu.V[x] = rng.Byte() & val
}

func (cpu *CPU) drwVxVyNibble(mem *Memory, gfx *Graphics, x, y, h uint8) error {
	// Each row of 8 pixels is read as bit-coded starting from memory location I;
	// I value doesn't change after the execution of this instruction.
	// VF is set to 1 if any screen pixels are flipped from set to unset when the sprite is drawn,
	// and to 0 if that doesn't happen
	if err := mem.checkRange(cpu.I, int(h)); err != nil {
		return err
	}
	sprite := mem[cpu.I : cpu.I+uint16(h)]
	if hit := gfx.draw(sprite, cpu.V[x], cpu.V[y]); hit {
		cpu.setCarry(1)
	} else {
		cpu.setCarry(0)
	}
	return nil
}

func (cpu *CPU) key(sys *System, x uint8) (bool, error) {
	k := cpu.V[x]
	if int(k) >= len(sys.keys) {
		return false, fmt.Errorf("%w: V%X = 0x%02x", ErrInvalidKey, x, k)
	}
	return sys.keys[k], nil
}

func (cpu *CPU) skpVx(sys *System, x uint8) error {
	down, err := cpu.key(sys, x)
	if err != nil {
		return err
	}
	if down {
		cpu.skip()
	}
	return nil
}

func (cpu *CPU) sknpVx(sys *System, x uint8) error {
	down, err := cpu.key(sys, x)
	if err != nil {
		return err
	}
	if !down {
		cpu.skip()
	}
	return nil
}

func (cpu *CPU) ldVxDT(sys *System, x uint8) {
	cpu.V[x] = sys.delayTimer
}

func (cpu *CPU) ldVxK(sys *System, x uint8) {
	for i, down := range sys.keys {
		if down {
			cpu.V[x] = uint8(i)
			return
		}
	}
	cpu.PC -= 2 // try again in next cycle
}

func (cpu *CPU) ldDTVx(sys *System, x uint8) {
	sys.delayTimer = cpu.V[x]
}

func (cpu *CPU) ldSTVx(sys *System, x uint8) {
	sys.soundTimer = cpu.V[x]
}

func (cpu *CPU) addIVx(x uint8) {
	cpu.I += uint16(cpu.V[x])
}

func (cpu *CPU) ldFVx(x uint8) {
	cpu.I = FontAddress + uint16(cpu.V[x])*FontGlyphLen
}

func (cpu *CPU) ldBVx(mem *Memory, x uint8) error {
	if err := mem.checkRange(cpu.I, 3); err != nil {
		return err
	}
	mem[cpu.I] = cpu.V[x] / 100
	mem[cpu.I+1] = (cpu.V[x] / 10) % 10
	mem[cpu.I+2] = cpu.V[x] % 10
	return nil
}

func (cpu *CPU) ldIVx(mem *Memory, x uint8) error {
	if err := mem.checkRange(cpu.I, int(x)+1); err != nil {
		return err
	}
	for i := uint8(0); i <= x; i++ {
		mem[cpu.I+uint16(i)] = cpu.V[i]
	}
	return nil
}

func (cpu *CPU) ldVxI(mem *Memory, x uint8) error {
	if err := mem.checkRange(cpu.I, int(x)+1); err != nil {
		return err
	}
	for i := uint8(0); i <= x; i++ {
		cpu.V[i] = mem[cpu.I+uint16(i)]
	}
	return nil
}
