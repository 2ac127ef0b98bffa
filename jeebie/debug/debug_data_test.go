package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-jeebie/jeebie/addr"
	"github.com/valerio/go-jeebie/jeebie/memory"
)

func TestExtractCompleteDebugDataDMG(t *testing.T) {
	mmu := memory.New()

	data := ExtractCompleteDebugData(mmu, 0, 8)

	assert.False(t, data.IsGBC)
	assert.Nil(t, data.Palettes)
	assert.False(t, data.HDMA.Active)
	assert.NotNil(t, data.OAM)
	assert.NotNil(t, data.VRAM)
	assert.False(t, data.VRAM.IsGBC)
	assert.Empty(t, data.VRAM.Bank1TilePatterns)
}

func TestExtractCompleteDebugDataGBC(t *testing.T) {
	mmu := newGBCMMU(t)
	writeGBCBGColor(mmu, 2, 1, 0x03E0) // pure green

	source := make([]byte, 0x10)
	for i := range source {
		source[i] = byte(i)
	}
	for i, b := range source {
		mmu.Write(0x4000+uint16(i), b)
	}
	mmu.Write(addr.HDMA1, 0x40)
	mmu.Write(addr.HDMA2, 0x00)
	mmu.Write(addr.HDMA3, 0x00)
	mmu.Write(addr.HDMA4, 0x00)
	mmu.Write(addr.HDMA5, 0x80) // 0x10 bytes, starts active

	data := ExtractCompleteDebugData(mmu, 0, 8)

	assert.True(t, data.IsGBC)
	assert.True(t, data.VRAM.IsGBC)
	assert.Len(t, data.VRAM.Bank1TilePatterns, TilePatternCount)
	if assert.NotNil(t, data.Palettes) {
		assert.Equal(t, mmu.BGPaletteColor(2, 1), uint16(0x03E0))
		assert.NotZero(t, data.Palettes.BG[2][1])
	}
	assert.True(t, data.HDMA.Active)
	assert.Equal(t, uint16(0x10), data.HDMA.Remaining)
	assert.Equal(t, uint16(0x4000), data.HDMA.Source)
	assert.Equal(t, uint16(0x8000), data.HDMA.Destination)
}
