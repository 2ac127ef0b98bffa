package debug

import (
	"fmt"

	"github.com/valerio/go-jeebie/jeebie/video"
)

const (
	VRAMBaseAddr     = 0x8000
	VRAMEndAddr      = 0x97FF
	TileDataSize     = 16
	TilePixelWidth   = 8
	TilePixelHeight  = 8
	TilePatternCount = 384
	TilesPerRow      = 16
	TileRows         = 24

	BackgroundTilemapAddr = 0x9800
	WindowTilemapAddr     = 0x9C00
	TilemapSize           = 0x400
)

// TilePattern is a decoded 8x8 tile pulled out of VRAM for display. pixels is
// unexported so TilePattern can offer the same Pixels() accessor as
// video.Tile, letting debug tooling treat both the same way.
type TilePattern struct {
	Index  int
	pixels [TilePixelHeight][TilePixelWidth]video.GBColor
}

func newTilePattern(tile video.Tile) TilePattern {
	return TilePattern{Index: tile.Index, pixels: tile.Pixels()}
}

// Pixels returns the tile's decoded 8x8 color grid.
func (p TilePattern) Pixels() [TilePixelHeight][TilePixelWidth]video.GBColor {
	return p.pixels
}

type TilemapInfo struct {
	BackgroundActive bool
	WindowActive     bool
	LCDCValue        uint8
}

// VRAMData holds the decoded tile patterns and tilemap state extracted from
// VRAM. On GBC hardware, VRAM is banked: bank 0 holds the DMG-compatible
// tile/tilemap data, bank 1 holds the CGB tilemap attribute bytes and an
// additional 384 tile patterns. Bank1TilePatterns is only populated when
// IsGBC is true.
type VRAMData struct {
	TilePatterns      []TilePattern
	Bank1TilePatterns []TilePattern
	TilemapInfo       TilemapInfo
	IsGBC             bool
}

func ExtractVRAMData(reader MemoryReader) *VRAMData {
	return ExtractVRAMDataFromReader(reader)
}

func (data *VRAMData) GetTileGrid() [][]TilePattern {
	grid := make([][]TilePattern, TileRows)

	for row := 0; row < TileRows; row++ {
		grid[row] = make([]TilePattern, TilesPerRow)
		for col := 0; col < TilesPerRow; col++ {
			tileIndex := row*TilesPerRow + col
			if tileIndex < TilePatternCount {
				grid[row][col] = data.TilePatterns[tileIndex]
			}
		}
	}

	return grid
}

func (info *TilemapInfo) FormatSummary() string {
	bgStatus := "INACTIVE"
	if info.BackgroundActive {
		bgStatus = "ACTIVE"
	}

	winStatus := "INACTIVE"
	if info.WindowActive {
		winStatus = "ACTIVE"
	}

	return fmt.Sprintf("Background Map: 0x%04X [%s] | Window Map: 0x%04X [%s] | LCDC: 0x%02X",
		BackgroundTilemapAddr, bgStatus, WindowTilemapAddr, winStatus, info.LCDCValue)
}

// FormatSummary reports how many tile patterns were decoded from each VRAM
// bank, omitting bank 1 on DMG hardware where it doesn't exist.
func (data *VRAMData) FormatSummary() string {
	if !data.IsGBC {
		return fmt.Sprintf("Bank 0: %d tiles", len(data.TilePatterns))
	}
	return fmt.Sprintf("Bank 0: %d tiles | Bank 1: %d tiles", len(data.TilePatterns), len(data.Bank1TilePatterns))
}
