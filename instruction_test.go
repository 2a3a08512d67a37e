package chip8

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeFields(t *testing.T) {
	in := Decode(0xD7A5)
	assert.Equal(t, OpDrw, in.Op)
	assert.Equal(t, uint8(0x7), in.X)
	assert.Equal(t, uint8(0xA), in.Y)
	assert.Equal(t, uint8(0x5), in.N)
	assert.Equal(t, uint8(0xA5), in.KK)
	assert.Equal(t, uint16(0x7A5), in.NNN)
}

func TestDecodeUnknown(t *testing.T) {
	for _, opc := range []uint16{0x8008, 0x800D, 0xE000, 0xE19F, 0xF000, 0xF166, 0xFFFF} {
		assert.Equal(t, OpInvalid, Decode(opc).Op)
	}
}

func TestInstructionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opcode uint16
		text   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0ABC, "SYS $ABC"},
		{0x1228, "JP $228"},
		{0x2ABC, "CALL $ABC"},
		{0x3A05, "SE VA, $05"},
		{0x5120, "SE V1, V2"},
		{0x6F10, "LD VF, $10"},
		{0x8124, "ADD V1, V2"},
		{0x8126, "SHR V1"},
		{0xA123, "LD I, $123"},
		{0xB400, "JP V0, $400"},
		{0xC3FF, "RND V3, $FF"},
		{0xD01F, "DRW V0, V1, $F"},
		{0xE29E, "SKP V2"},
		{0xF20A, "LD V2, K"},
		{0xF433, "LD B, V4"},
		{0xF555, "LD [I], V5"},
		{0xF665, "LD V6, [I]"},
		{0xFFFF, "DW $FFFF"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.text, Decode(tt.opcode).String())
	}
}

func TestDisassemble(t *testing.T) {
	var buf bytes.Buffer
	err := Disassemble(&buf, []byte{0x60, 0x05, 0x61, 0x0A, 0x80, 0x14, 0xAB})
	assert.NoError(t, err)

	expected := "200  6005  LD V0, $05\n" +
		"202  610A  LD V1, $0A\n" +
		"204  8014  ADD V0, V1\n" +
		"206  AB    DB $AB\n"
	assert.Equal(t, expected, buf.String())
}
