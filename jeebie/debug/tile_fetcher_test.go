package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-jeebie/jeebie/addr"
)

func TestFetchTileForIndexUnsigned(t *testing.T) {
	mmu := newGBCMMU(t)
	mmu.Write(VRAMBaseAddr, 0xFF)
	mmu.Write(VRAMBaseAddr+1, 0x00)

	tile := FetchTileForIndex(mmu, 0, VRAMBaseAddr, false)

	assert.Equal(t, 0, tile.Index)
	assert.Equal(t, byte(0xFF), tile.Rows[0].Low)
}

// TestFetchTileForIndexInBank confirms a bank-1 fetch reads independently
// of bank 0, the way the GPU resolves GBC background tiles whose attribute
// byte names bank 1.
func TestFetchTileForIndexInBank(t *testing.T) {
	mmu := newGBCMMU(t)

	mmu.Write(addr.VBK, 0)
	mmu.Write(VRAMBaseAddr, 0x00)
	mmu.Write(addr.VBK, 1)
	mmu.Write(VRAMBaseAddr, 0xAA)
	mmu.Write(addr.VBK, 0)

	bank0Tile := FetchTileForIndexInBank(mmu, 0, VRAMBaseAddr, false, 0)
	bank1Tile := FetchTileForIndexInBank(mmu, 0, VRAMBaseAddr, false, 1)

	assert.Equal(t, byte(0x00), bank0Tile.Rows[0].Low)
	assert.Equal(t, byte(0xAA), bank1Tile.Rows[0].Low)
}
