package chip8

import "fmt"

// Op identifies a decoded instruction.
type Op uint8

const (
	OpInvalid Op = iota
	OpSys        // 0NNN
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XNN
	OpSneByte    // 4XNN
	OpSeReg      // 5XY0
	OpLdByte     // 6XNN
	OpAddByte    // 7XNN
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXNN
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpLdIVx      // FX55
	OpLdVxI      // FX65

	numOps
)

// Instruction is an opcode split into its operand fields. Not every field is
// meaningful for every Op.
type Instruction struct {
	Op     Op
	Opcode uint16
	X      uint8  // bits 8-11
	Y      uint8  // bits 4-7
	N      uint8  // bits 0-3
	KK     uint8  // bits 0-7
	NNN    uint16 // bits 0-11
}

// Decode resolves a 16-bit word. Words without a meaning decode to OpInvalid.
func Decode(opc uint16) Instruction {
	in := Instruction{
		Opcode: opc,
		X:      uint8((opc & 0x0F00) >> 8),
		Y:      uint8((opc & 0x00F0) >> 4),
		N:      uint8(opc & 0x000F),
		KK:     uint8(opc & 0x00FF),
		NNN:    opc & 0x0FFF,
	}
	in.Op = decodeOp(opc)
	return in
}

func decodeOp(opc uint16) Op {
	switch opc & 0xF000 {
	case 0x0000:
		switch opc {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
		return OpSys
	case 0x1000:
		return OpJp
	case 0x2000:
		return OpCall
	case 0x3000:
		return OpSeByte
	case 0x4000:
		return OpSneByte
	case 0x5000:
		return OpSeReg
	case 0x6000:
		return OpLdByte
	case 0x7000:
		return OpAddByte
	case 0x8000:
		switch opc & 0x000F {
		case 0x0:
			return OpLdReg
		case 0x1:
			return OpOr
		case 0x2:
			return OpAnd
		case 0x3:
			return OpXor
		case 0x4:
			return OpAddReg
		case 0x5:
			return OpSub
		case 0x6:
			return OpShr
		case 0x7:
			return OpSubn
		case 0xE:
			return OpShl
		}
	case 0x9000:
		return OpSneReg
	case 0xA000:
		return OpLdI
	case 0xB000:
		return OpJpV0
	case 0xC000:
		return OpRnd
	case 0xD000:
		return OpDrw
	case 0xE000:
		switch opc & 0x00FF {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF000:
		switch opc & 0x00FF {
		case 0x07:
			return OpLdVxDT
		case 0x0A:
			return OpLdVxK
		case 0x15:
			return OpLdDTVx
		case 0x18:
			return OpLdSTVx
		case 0x1E:
			return OpAddI
		case 0x29:
			return OpLdF
		case 0x33:
			return OpLdB
		case 0x55:
			return OpLdIVx
		case 0x65:
			return OpLdVxI
		}
	}
	return OpInvalid
}

// String returns the instruction in assembler syntax, e.g. "LD V0, $05".
func (in Instruction) String() string {
	switch in.Op {
	case OpSys:
		return fmt.Sprintf("SYS $%03X", in.NNN)
	case OpCls:
		return "CLS"
	case OpRet:
		return "RET"
	case OpJp:
		return fmt.Sprintf("JP $%03X", in.NNN)
	case OpCall:
		return fmt.Sprintf("CALL $%03X", in.NNN)
	case OpSeByte:
		return fmt.Sprintf("SE V%X, $%02X", in.X, in.KK)
	case OpSneByte:
		return fmt.Sprintf("SNE V%X, $%02X", in.X, in.KK)
	case OpSeReg:
		return fmt.Sprintf("SE V%X, V%X", in.X, in.Y)
	case OpLdByte:
		return fmt.Sprintf("LD V%X, $%02X", in.X, in.KK)
	case OpAddByte:
		return fmt.Sprintf("ADD V%X, $%02X", in.X, in.KK)
	case OpLdReg:
		return fmt.Sprintf("LD V%X, V%X", in.X, in.Y)
	case OpOr:
		return fmt.Sprintf("OR V%X, V%X", in.X, in.Y)
	case OpAnd:
		return fmt.Sprintf("AND V%X, V%X", in.X, in.Y)
	case OpXor:
		return fmt.Sprintf("XOR V%X, V%X", in.X, in.Y)
	case OpAddReg:
		return fmt.Sprintf("ADD V%X, V%X", in.X, in.Y)
	case OpSub:
		return fmt.Sprintf("SUB V%X, V%X", in.X, in.Y)
	case OpShr:
		return fmt.Sprintf("SHR V%X", in.X)
	case OpSubn:
		return fmt.Sprintf("SUBN V%X, V%X", in.X, in.Y)
	case OpShl:
		return fmt.Sprintf("SHL V%X", in.X)
	case OpSneReg:
		return fmt.Sprintf("SNE V%X, V%X", in.X, in.Y)
	case OpLdI:
		return fmt.Sprintf("LD I, $%03X", in.NNN)
	case OpJpV0:
		return fmt.Sprintf("JP V0, $%03X", in.NNN)
	case OpRnd:
		return fmt.Sprintf("RND V%X, $%02X", in.X, in.KK)
	case OpDrw:
		return fmt.Sprintf("DRW V%X, V%X, $%X", in.X, in.Y, in.N)
	case OpSkp:
		return fmt.Sprintf("SKP V%X", in.X)
	case OpSknp:
		return fmt.Sprintf("SKNP V%X", in.X)
	case OpLdVxDT:
		return fmt.Sprintf("LD V%X, DT", in.X)
	case OpLdVxK:
		return fmt.Sprintf("LD V%X, K", in.X)
	case OpLdDTVx:
		return fmt.Sprintf("LD DT, V%X", in.X)
	case OpLdSTVx:
		return fmt.Sprintf("LD ST, V%X", in.X)
	case OpAddI:
		return fmt.Sprintf("ADD I, V%X", in.X)
	case OpLdF:
		return fmt.Sprintf("LD F, V%X", in.X)
	case OpLdB:
		return fmt.Sprintf("LD B, V%X", in.X)
	case OpLdIVx:
		return fmt.Sprintf("LD [I], V%X", in.X)
	case OpLdVxI:
		return fmt.Sprintf("LD V%X, [I]", in.X)
	}
	return fmt.Sprintf("DW $%04X", in.Opcode)
}
