package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-jeebie/jeebie/memory"
)

// undefinedOpcodes are the 11 primary-table slots the LR35902 never
// assigned an instruction to (section 7).
var undefinedOpcodes = map[uint8]bool{
	0xD3: true, 0xDB: true, 0xDD: true,
	0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
	0xF4: true, 0xFC: true, 0xFD: true,
}

// TestPrimaryOpcodeCoverage executes every one of the 256 primary opcodes
// from a freshly-reset CPU and checks that only the 11 undefined slots
// raise UnsupportedOpcodeError, per section 8.
func TestPrimaryOpcodeCoverage(t *testing.T) {
	for op := 0; op < 256; op++ {
		op := uint8(op)
		t.Run("", func(t *testing.T) {
			mmu := memory.New()
			c := New(mmu)
			c.pc = 0xC000
			mmu.Write(0xC000, op)
			mmu.Write(0xC001, 0x00)
			mmu.Write(0xC002, 0x00)

			assert.NotPanics(t, func() { c.Exec() })

			if undefinedOpcodes[op] {
				assert.Errorf(t, c.Err(), "opcode 0x%02X should be unsupported", op)
			} else {
				assert.NoErrorf(t, c.Err(), "opcode 0x%02X should decode", op)
			}
		})
	}
}

// TestCBOpcodeCoverage executes all 256 CB-prefixed opcodes; none of them
// are undefined.
func TestCBOpcodeCoverage(t *testing.T) {
	for op := 0; op < 256; op++ {
		op := uint8(op)
		t.Run("", func(t *testing.T) {
			mmu := memory.New()
			c := New(mmu)
			c.pc = 0xC000
			mmu.Write(0xC000, 0xCB)
			mmu.Write(0xC001, op)

			assert.NotPanics(t, func() { c.Exec() })
			assert.NoErrorf(t, c.Err(), "CB opcode 0x%02X should decode", op)
		})
	}
}
