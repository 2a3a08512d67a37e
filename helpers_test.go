package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// sequenceRandom returns its bytes in order, starting over at the end.
type sequenceRandom struct {
	seq []uint8
	pos int
}

func (s *sequenceRandom) Byte() uint8 {
	b := s.seq[s.pos%len(s.seq)]
	s.pos++
	return b
}

// newTestSystem returns a system with the given opcodes loaded at
// StartAddress.
func newTestSystem(t *testing.T, program ...uint16) *System {
	t.Helper()

	sys := New(
		WithLogger(log.NewTestLogger(t)),
		WithRandom(&sequenceRandom{seq: []uint8{0xFF}}),
	)
	rom := make([]byte, 0, len(program)*2)
	for _, opc := range program {
		rom = append(rom, uint8(opc>>8), uint8(opc))
	}
	assert.NoError(t, sys.LoadROM(rom))
	return sys
}

func runCycles(t *testing.T, sys *System, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, sys.Cycle())
	}
}
