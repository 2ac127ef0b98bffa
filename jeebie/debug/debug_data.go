package debug

import "github.com/valerio/go-jeebie/jeebie/video"

// CPUState contains all CPU register information for debugging
type CPUState struct {
	A uint8
	F uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8

	SP     uint16
	PC     uint16
	IME    bool
	Cycles uint64
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

// HDMADebugState reports the state of an H-Blank DMA transfer, always
// inactive with zeroed fields on a DMG cartridge.
type HDMADebugState struct {
	Active      bool
	Remaining   uint16
	Source      uint16
	Destination uint16
}

// GBCPaletteData holds the decoded BG/OBJ color palette RAM, populated only
// when the loaded cartridge runs in CGB mode.
type GBCPaletteData struct {
	BG  [8][4]video.GBColor
	OBJ [8][4]video.GBColor
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	OAM             *OAMData
	VRAM            *VRAMData
	CPU             *CPUState
	Memory          *MemorySnapshot
	DebuggerState   DebuggerState
	InterruptEnable uint8 // IE register at 0xFFFF
	InterruptFlags  uint8 // IF register at 0xFF0F

	IsGBC    bool
	Palettes *GBCPaletteData
	HDMA     HDMADebugState
}

// ExtractCompleteDebugData gathers every GBC-aware debug view (OAM, VRAM,
// palettes, HDMA state) into a single snapshot from a generic MemoryReader.
func ExtractCompleteDebugData(reader MemoryReader, currentLine, spriteHeight int) *CompleteDebugData {
	data := &CompleteDebugData{
		OAM:   ExtractOAMDataFromReader(reader, currentLine, spriteHeight),
		VRAM:  ExtractVRAMDataFromReader(reader),
		IsGBC: reader.IsGBC(),
	}

	active, remaining, source, destination := reader.HDMAStatus()
	data.HDMA = HDMADebugState{
		Active:      active,
		Remaining:   remaining,
		Source:      source,
		Destination: destination,
	}

	if data.IsGBC {
		palettes := &GBCPaletteData{}
		for palette := 0; palette < 8; palette++ {
			for color := 0; color < 4; color++ {
				palettes.BG[palette][color] = video.GBColor(video.RGB555ToRGBA(reader.BGPaletteColor(palette, color)))
				palettes.OBJ[palette][color] = video.GBColor(video.RGB555ToRGBA(reader.OBJPaletteColor(palette, color)))
			}
		}
		data.Palettes = palettes
	}

	return data
}
