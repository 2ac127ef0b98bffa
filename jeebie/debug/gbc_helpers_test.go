package debug

import (
	"testing"

	"github.com/valerio/go-jeebie/jeebie/addr"
	"github.com/valerio/go-jeebie/jeebie/memory"
)

// newGBCMMU builds an MMU loaded with a minimal NoMBC cartridge flagged as
// CGB-only, for exercising the GBC-aware paths of the debug package against
// the real MMU rather than a hand-rolled mock.
func newGBCMMU(t *testing.T) *memory.MMU {
	t.Helper()

	rom := make([]byte, 0x8000)
	rom[0x143] = 0x80 // CGB flag: GBC only
	rom[0x147] = 0x00 // cartridge type: NoMBC
	rom[0x148] = 0x00 // ROM size: 32KB (2 banks)
	rom[0x149] = 0x00 // RAM size: none

	cart := memory.NewCartridgeWithData(rom)
	return memory.NewWithCartridge(cart)
}

// writeGBCBGColor programs a single BG palette RAM entry through the
// BCPS/BCPD auto-increment port, the same way a GBC game's palette upload
// routine would.
func writeGBCBGColor(mmu *memory.MMU, palette, colorIndex int, rgb555 uint16) {
	offset := uint8((palette*4 + colorIndex) * 2)
	mmu.Write(addr.BCPS, 0x80|offset)
	mmu.Write(addr.BCPD, uint8(rgb555))
	mmu.Write(addr.BCPD, uint8(rgb555>>8))
}

// writeGBCOBJColor is writeGBCBGColor's OBJ-palette counterpart.
func writeGBCOBJColor(mmu *memory.MMU, palette, colorIndex int, rgb555 uint16) {
	offset := uint8((palette*4 + colorIndex) * 2)
	mmu.Write(addr.OCPS, 0x80|offset)
	mmu.Write(addr.OCPD, uint8(rgb555))
	mmu.Write(addr.OCPD, uint8(rgb555>>8))
}
