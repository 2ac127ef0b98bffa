package memory

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-jeebie/jeebie/addr"
	"github.com/valerio/go-jeebie/jeebie/bit"
)

type memRegion uint8

const (
	regionROM memRegion = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionUnused
	regionIO
	regionHRAM
)

// JoypadKey represents a key on the Gameboy joypad
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

// MMU allows access to all memory mapped I/O and data/registers
type MMU struct {
	cart      *Cartridge
	mbc       MBC
	memory    []byte
	regionMap [256]memRegion

	joypadButtons uint8 // Actual state of buttons A/B/Start/Select, mapped to low bits of P1
	joypadDpad    uint8 // Actual state of d-pad directions, mapped to low bits of P1

	timer Timer

	// GBC state. On DMG these stay at their zero value and isGBC gates them
	// out of the read/write paths entirely.
	isGBC  bool
	vram   [2][0x2000]byte // banked 0x8000-0x9FFF, selected by VBK
	wram   [8][0x1000]byte // banked 0xD000-0xDFFF (bank 0 reserved, unused), selected by SVBK
	vbk    uint8
	svbk   uint8
	hdma   hdmaState
	bgPal  gbcPaletteRAM
	objPal gbcPaletteRAM

	keySwitchArmed    bool // KEY1 bit 0, armed by software, consumed by STOP
	doubleSpeedActive bool // KEY1 bit 7 (read-only mirror of CPU.doubleSpeed)
}

// New creates a new memory unity with default data, i.e. nothing cartridge loaded.
// Equivalent to turning on a Gameboy without a cartridge in.
func New() *MMU {
	mmu := &MMU{
		memory:        make([]byte, 0x10000),
		cart:          NewCartridge(),
		joypadButtons: 0x0F,
		joypadDpad:    0x0F,
	}
	mmu.timer.TimerInterruptHandler = func() { mmu.RequestInterrupt(addr.TimerInterrupt) }
	initRegionMap(mmu)
	return mmu
}

// IsGBC reports whether the loaded cartridge declared GBC support, which
// gates VRAM/WRAM banking, H-Blank DMA, the GBC colour palettes and CPU
// double-speed from ever engaging on a plain DMG cartridge.
func (m *MMU) IsGBC() bool { return m.isGBC }

// vramBank returns the VRAM bank (0 or 1) selected by VBK; always 0 on DMG.
func (m *MMU) vramBank() int {
	if m.isGBC {
		return int(m.vbk & 0x01)
	}
	return 0
}

// wramBank returns the WRAM bank backing the 0xD000-0xDFFF window; always 1
// on DMG. Bank 0 is not selectable from that window (it reads as bank 1, a
// documented GBC quirk).
func (m *MMU) wramBank() int {
	if m.isGBC {
		b := int(m.svbk & 0x07)
		if b == 0 {
			b = 1
		}
		return b
	}
	return 1
}

// ReadVRAMBank reads a byte from a specific VRAM bank regardless of the
// current VBK selection. Used by the PPU to fetch GBC tile attributes
// (stored in bank 1) alongside tile pixel data (fetched from whichever bank
// the attribute byte names). On a DMG cartridge bank 0 is always read.
func (m *MMU) ReadVRAMBank(bank int, address uint16) byte {
	if !m.isGBC {
		bank = 0
	}
	return m.vram[bank&1][(address-0x8000)&0x1FFF]
}

// BGPaletteColor returns the RGB555 colour (as stored, bit 15 unused) for
// the given GBC background palette/colour-index pair.
func (m *MMU) BGPaletteColor(palette, colorIndex int) uint16 {
	return m.bgPal.color(palette, colorIndex)
}

// OBJPaletteColor returns the RGB555 colour for the given GBC object
// palette/colour-index pair.
func (m *MMU) OBJPaletteColor(palette, colorIndex int) uint16 {
	return m.objPal.color(palette, colorIndex)
}

// ppuMode reports the PPU mode currently published in STAT (bits 1-0),
// without the MMU needing a back-reference to the GPU: the GPU always
// writes STAT synchronously via Write before any mode-gated access occurs.
func (m *MMU) ppuMode() byte {
	return m.memory[addr.STAT] & 0x03
}

// KEY1Armed reports whether a speed switch has been armed via KEY1 bit 0,
// consumed by the next STOP instruction.
func (m *MMU) KEY1Armed() bool { return m.keySwitchArmed }

// ClearKEY1Arm disarms the pending speed switch; called by STOP once it has
// acted on it.
func (m *MMU) ClearKEY1Arm() { m.keySwitchArmed = false }

// SetDoubleSpeedFlag updates the read-only KEY1 bit 7 mirror to match the
// CPU's actual speed mode.
func (m *MMU) SetDoubleSpeedFlag(active bool) { m.doubleSpeedActive = active }

// Tick advances any i/o that needs it, if any.
func (m *MMU) Tick(cycles int) {
	m.timer.Tick(cycles)
}

// SetTimerSeed initializes the internal timer divider seed and DIV register.
func (m *MMU) SetTimerSeed(seed uint16) {
	m.timer.SetSeed(seed)
}

// TimerSystemCounter exposes the timer's internal 16-bit counter for debug
// tooling (section 4.11).
func (m *MMU) TimerSystemCounter() uint16 {
	return m.timer.SystemCounter()
}

// SaveRAM returns a copy of the cartridge's battery-backed RAM, or nil if the
// loaded MBC doesn't carry any.
func (m *MMU) SaveRAM() []uint8 {
	if bb, ok := m.mbc.(BatteryBacked); ok {
		return bb.SaveRAM()
	}
	return nil
}

// LoadRAM restores battery-backed cartridge RAM from a previously saved
// image. Returns BadBatteryFile if the MBC has no battery RAM or the image
// size doesn't match.
func (m *MMU) LoadRAM(data []uint8) error {
	bb, ok := m.mbc.(BatteryBacked)
	if !ok {
		return &BadBatteryFile{Want: 0, Got: len(data)}
	}
	return bb.LoadRAM(data)
}

// NewWithCartridge creates a new memory unit with the provided cartridge data loaded.
// Equivalent to turning on a Gameboy with a cartridge in.
func NewWithCartridge(cart *Cartridge) *MMU {
	mmu := New()
	mmu.cart = cart
	mmu.isGBC = cart.IsGBC()

	switch cart.mbcType {
	case NoMBCType:
		mmu.mbc = NewNoMBC(cart.data)
	case MBC1Type:
		mmu.mbc = NewMBC1(cart.data, cart.hasBattery, cart.ramBankCount)
	case MBC1MultiType:
		mmu.mbc = NewMBC1(cart.data, cart.hasBattery, cart.ramBankCount) // FIXME: add support for multicart
	case MBC2Type:
		mmu.mbc = NewMBC2(cart.data, cart.hasBattery)
	case MBC3Type:
		mmu.mbc = NewMBC3(cart.data, cart.ramBankCount, cart.hasRTC, cart.hasBattery)
	case MBC5Type:
		mmu.mbc = NewMBC5(cart.data, cart.hasBattery, cart.hasRumble, cart.ramBankCount)
	case MBCUnknownType:
		panic("unsupported MBC type: unknown")
	default:
		panic(fmt.Sprintf("unsupported MBC type: %d", cart.mbcType))
	}

	return mmu
}

func initRegionMap(m *MMU) {
	// ROM: 0x0000-0x7FFF
	for i := 0x00; i <= 0x7F; i++ {
		m.regionMap[i] = regionROM
	}
	// VRAM: 0x8000-0x9FFF
	for i := 0x80; i <= 0x9F; i++ {
		m.regionMap[i] = regionVRAM
	}
	// External RAM: 0xA000-0xBFFF
	for i := 0xA0; i <= 0xBF; i++ {
		m.regionMap[i] = regionExtRAM
	}
	// Work RAM: 0xC000-0xDFFF
	for i := 0xC0; i <= 0xDF; i++ {
		m.regionMap[i] = regionWRAM
	}
	// Echo RAM: 0xE000-0xFDFF
	for i := 0xE0; i <= 0xFD; i++ {
		m.regionMap[i] = regionEcho
	}
	// OAM: 0xFE00-0xFE9F, Unused: 0xFEA0-0xFEFF
	m.regionMap[0xFE] = regionOAM
	// IO + HRAM: 0xFF00-0xFFFF
	m.regionMap[0xFF] = regionIO
}

// RequestInterrupt sets the interrupt flag (IF register) of the chosen interrupt to 1.
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	interruptFlags := m.Read(addr.IF)

	var bitPos uint8
	switch interrupt {
	case addr.VBlankInterrupt:
		bitPos = 0
	case addr.LCDSTATInterrupt:
		bitPos = 1
	case addr.TimerInterrupt:
		bitPos = 2
	case addr.SerialInterrupt:
		bitPos = 3
	case addr.JoypadInterrupt:
		bitPos = 4
	default:
		panic(fmt.Sprintf("Unknown interrupt: 0x%02X", uint8(interrupt)))
	}

	newFlags := bit.Set(bitPos, interruptFlags)

	m.Write(addr.IF, newFlags)
}

func (m *MMU) ReadBit(index uint8, address uint16) bool {
	return bit.IsSet(index, m.Read(address))
}

func (m *MMU) SetBit(index uint8, address uint16, set bool) {
	value := m.Read(address)
	if set {
		value = bit.Set(index, value)
	} else {
		value = bit.Reset(index, value)
	}
	m.Write(address, value)
}

func (m *MMU) Read(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if m.mbc == nil {
			slog.Warn("Reading from ROM/external RAM with no cartridge", "addr", fmt.Sprintf("0x%04X", address))
			return 0xFF
		}
		return m.mbc.Read(address)
	case regionVRAM:
		if m.ppuMode() == 0x03 {
			return 0xFF
		}
		return m.vram[m.vramBank()][address-0x8000]
	case regionWRAM:
		return m.readWRAM(address)
	case regionEcho:
		return m.readWRAM(address - 0x2000)
	case regionOAM:
		if address <= 0xFE9F {
			mode := m.ppuMode()
			if mode == 0x02 || mode == 0x03 {
				return 0xFF
			}
			return m.memory[address]
		}
		// Unused area 0xFEA0-0xFEFF
		return m.memory[address]
	case regionIO:
		if address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC {
			return m.timer.Read(address)
		}
		// Just in case, we always read the upper 3 bits of IF as 1.
		// They're not used, but have caused me some headaches when checking for
		// when the halt bug triggers (IF != 0).
		if address == addr.IF {
			return m.memory[address] | 0xE0
		}
		switch address {
		case addr.VBK:
			if m.isGBC {
				return m.vbk | 0xFE
			}
			return 0xFF
		case addr.SVBK:
			if m.isGBC {
				return m.svbk | 0xF8
			}
			return 0xFF
		case addr.KEY1:
			val := uint8(0x7E)
			if m.keySwitchArmed {
				val |= 0x01
			}
			if m.doubleSpeedActive {
				val |= 0x80
			}
			return val
		case addr.HDMA1, addr.HDMA2, addr.HDMA3, addr.HDMA4:
			return 0xFF // write-only on real hardware
		case addr.HDMA5:
			return m.hdma.readHDMA5()
		case addr.BCPS:
			return m.bgPal.readSpec()
		case addr.BCPD:
			return m.bgPal.readData()
		case addr.OCPS:
			return m.objPal.readSpec()
		case addr.OCPD:
			return m.objPal.readData()
		}
		if address >= 0xFF80 {
			// HRAM
			return m.memory[address]
		}
		// Other IO registers
		return m.memory[address]
	default:
		panic(fmt.Sprintf("Attempted read at unmapped address: 0x%X", address))
	}
}

// readWRAM resolves an address in 0xC000-0xDFFF to the fixed bank 0
// (0xC000-0xCFFF) or the switchable bank selected by SVBK (0xD000-0xDFFF).
func (m *MMU) readWRAM(address uint16) byte {
	if address < 0xD000 {
		return m.wram[0][address-0xC000]
	}
	return m.wram[m.wramBank()][address-0xD000]
}

func (m *MMU) writeWRAM(address uint16, value byte) {
	if address < 0xD000 {
		m.wram[0][address-0xC000] = value
		return
	}
	m.wram[m.wramBank()][address-0xD000] = value
}

func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM:
		if m.mbc == nil {
			slog.Warn("Writing to ROM with no cartridge", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
			return
		}
		m.mbc.Write(address, value)
	case regionVRAM:
		if m.ppuMode() == 0x03 {
			return
		}
		m.vram[m.vramBank()][address-0x8000] = value
	case regionExtRAM:
		if m.mbc == nil {
			slog.Warn("Writing to external RAM with no cartridge", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
			return
		}
		m.mbc.Write(address, value)
	case regionWRAM:
		m.writeWRAM(address, value)
	case regionEcho:
		m.writeWRAM(address-0x2000, value)
	case regionOAM:
		if address <= 0xFE9F {
			mode := m.ppuMode()
			if mode == 0x02 || mode == 0x03 {
				return
			}
			m.memory[address] = value
		} else {
			// Unused area 0xFEA0-0xFEFF
			m.memory[address] = value
		}
	case regionIO:
		if address == addr.P1 {
			m.writeJoypad(value)
			return
		}
		if address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC {
			m.timer.Write(address, value)
			return
		}
		if address == addr.IF {
			// This goddamn register has its upper 3 bits always set as 1...
			// Beware if you're trying to match halt bug behavior.
			m.memory[address] = value | 0xE0
			return
		}
		if address == addr.DMA {
			sourceAddr := uint16(value) << 8
			// DMA transfer copies 160 bytes from source to OAM
			for i := range uint16(160) {
				m.memory[0xFE00+i] = m.Read(sourceAddr + i)
			}
			m.memory[address] = value
			return
		}
		switch address {
		case addr.VBK:
			if m.isGBC {
				m.vbk = value & 0x01
			}
			return
		case addr.SVBK:
			if m.isGBC {
				m.svbk = value & 0x07
			}
			return
		case addr.KEY1:
			m.keySwitchArmed = value&0x01 != 0
			return
		case addr.HDMA1:
			m.hdma.sourceHi = value
			return
		case addr.HDMA2:
			m.hdma.sourceLo = value
			return
		case addr.HDMA3:
			m.hdma.destHi = value
			return
		case addr.HDMA4:
			m.hdma.destLo = value
			return
		case addr.HDMA5:
			if m.isGBC {
				m.hdma.writeHDMA5(value)
			}
			return
		case addr.BCPS:
			m.bgPal.writeSpec(value)
			return
		case addr.BCPD:
			m.bgPal.writeData(value)
			return
		case addr.OCPS:
			m.objPal.writeSpec(value)
			return
		case addr.OCPD:
			m.objPal.writeData(value)
			return
		}
		if address >= 0xFF80 {
			// HRAM
			m.memory[address] = value
			return
		}
		// Other IO registers
		m.memory[address] = value
	default:
		panic(fmt.Sprintf("Attempted write at unmapped address: 0x%X", address))
	}
}

// PumpHDMA advances an active H-Blank DMA transfer by one 0x10-byte block.
// Called by the PPU on every transition into H-Blank (mode 0); a no-op when
// no transfer is in flight or the cartridge isn't GBC.
func (m *MMU) PumpHDMA() {
	if !m.isGBC {
		return
	}
	m.pumpHDMA()
}

// HDMAStatus reports whether an H-Blank DMA transfer is in flight, how many
// bytes remain, and the current source/destination addresses, for debug
// tooling (section 4.11). Always inactive on a DMG cartridge.
func (m *MMU) HDMAStatus() (active bool, remaining uint16, source uint16, destination uint16) {
	return m.hdma.active, m.hdma.length, m.hdma.source() + m.hdma.position, 0x8000 + m.hdma.destination() + m.hdma.position
}

// joypadKeyBits maps a JoypadKey to the button-group register it lives in
// (joypadDpad or joypadButtons) and its bit index within that register. The
// P1 selection/readback logic below is identical on DMG and GBC hardware -
// the joypad matrix isn't one of the things CGB mode changes.
var joypadKeyBits = map[JoypadKey]struct {
	dpad  bool
	index uint8
}{
	JoypadRight:  {true, 0},
	JoypadLeft:   {true, 1},
	JoypadUp:     {true, 2},
	JoypadDown:   {true, 3},
	JoypadA:      {false, 0},
	JoypadB:      {false, 1},
	JoypadSelect: {false, 2},
	JoypadStart:  {false, 3},
}

// updateJoypadRegister sets the joypad register (P1) according to selection bits
// and hardware (buttons) status.
//
// In real hw, this register is actually just a selector (bits 4-5) that control
// to which set of buttons the low bits (0-3) are mapped to.
//
// The mapping:
//   - if bit 4 is clear, bits 0-3 are mapped to the 4 d-pad directions
//   - if bit 5 is clear, bits 0-3 are mapped to A, B, Start, Select
//   - if both are clear, hw does an AND of both button sets
//   - if both are set, return 0x0F (high impedence state)
//
// This function is called whenever:
//   - there is a write to the P1 register (only set bits 4-5)
//   - a button is pressed or released (tracked separately)
//
// Note that 1 -> button released, 0 -> button pressed.
// Bits 6-7 are unused, they always read as 1 on real hardware.
func (m *MMU) updateJoypadRegister() {
	p1 := m.memory[addr.P1]
	result := uint8(0b11000000) // Bits 6-7 are always read as 1
	result |= p1 & 0b00110000   // Keep selection bits 4-5

	// A button group is selected if the corresponding bit is 0
	selectDpad := !bit.IsSet(4, p1)
	selectButtons := !bit.IsSet(5, p1)

	switch {
	case selectButtons && !selectDpad:
		result |= m.joypadButtons & 0x0F
	case selectDpad && !selectButtons:
		result |= m.joypadDpad & 0x0F
	case selectButtons && selectDpad:
		result |= m.joypadButtons & m.joypadDpad & 0x0F
	default:
		// no selection
		result |= 0x0F
	}

	m.memory[addr.P1] = result
}

func (m *MMU) writeJoypad(value uint8) {
	// Only bits 4-5 are writable (selection bits)
	m.memory[addr.P1] = value & 0b00110000
	m.updateJoypadRegister()
}

// HandleKeyPress clears the bit for key in its button group (0 = pressed)
// and requests a joypad interrupt on any 1->0 transition.
func (m *MMU) HandleKeyPress(key JoypadKey) {
	bits, ok := joypadKeyBits[key]
	if !ok {
		return
	}

	oldButtons := m.joypadButtons
	oldDpad := m.joypadDpad

	if bits.dpad {
		m.joypadDpad = bit.Reset(bits.index, m.joypadDpad)
	} else {
		m.joypadButtons = bit.Reset(bits.index, m.joypadButtons)
	}

	buttonTransitions := oldButtons & ^m.joypadButtons
	dpadTransitions := oldDpad & ^m.joypadDpad
	if buttonTransitions|dpadTransitions != 0 {
		m.RequestInterrupt(addr.JoypadInterrupt)
	}

	m.updateJoypadRegister()
}

// HandleKeyRelease sets the bit for key in its button group (1 = released).
func (m *MMU) HandleKeyRelease(key JoypadKey) {
	bits, ok := joypadKeyBits[key]
	if !ok {
		return
	}

	if bits.dpad {
		m.joypadDpad = bit.Set(bits.index, m.joypadDpad)
	} else {
		m.joypadButtons = bit.Set(bits.index, m.joypadButtons)
	}

	m.updateJoypadRegister()
}
