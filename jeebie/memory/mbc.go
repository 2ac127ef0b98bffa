package memory

import "fmt"

// MBC represents a Memory Bank Controller interface that all MBC types must implement
type MBC interface {
	// Read reads a byte from the specified address
	Read(addr uint16) uint8
	// Write writes a byte to the specified address, returns the written value
	Write(addr uint16, value uint8) uint8
}

// BatteryBacked is implemented by MBC chips that expose persistent RAM so it
// can be saved and restored across sessions. BadBatteryFile is returned by
// LoadRAM when the supplied buffer's length doesn't match the cartridge's RAM.
type BatteryBacked interface {
	SaveRAM() []uint8
	LoadRAM(data []uint8) error
}

// BadBatteryFile is returned when a battery save file's size doesn't match
// the size of the cartridge's external RAM, or when the cartridge has no
// battery to save at all.
type BadBatteryFile struct {
	Want int
	Got  int
}

func (e *BadBatteryFile) Error() string {
	return fmt.Sprintf("battery file size mismatch: want %d bytes, got %d", e.Want, e.Got)
}

// bankedOffset computes the flat byte offset of the start of the selected
// bank within a banked region (ROM or external RAM), wrapping to the data
// actually present the way real MBC hardware does when the bank-select bits
// can address more banks than a particular cartridge carries.
func bankedOffset(dataLen int, bank uint32, bankSize uint32) uint32 {
	offset := bank * bankSize
	if dataLen == 0 {
		return 0
	}
	if offset >= uint32(dataLen) {
		offset %= uint32(dataLen)
	}
	return offset
}

// NoMBC represents cartridges with no memory banking capabilities.
// These are typically smaller games (32KB or less) that fit entirely in the
// base memory region. The cartridge ROM is directly mapped to 0x0000-0x7FFF
// and cannot be banked/switched. These cartridges cannot have external RAM,
// so unlike the other MBC types it does not implement BatteryBacked at all.
type NoMBC struct {
	rom []uint8 // ROM data
}

// NewNoMBC creates a new NoMBC controller
func NewNoMBC(romData []uint8) *NoMBC {
	return &NoMBC{
		rom: romData,
	}
}

func (m *NoMBC) Read(addr uint16) uint8 {
	return m.rom[addr]
}

func (m *NoMBC) Write(addr uint16, value uint8) uint8 {
	// NoMBC doesn't support writing to ROM
	return 0
}

// MBC1 is the first and most common MBC chip. Features include:
// - Supports up to 2MB ROM (125 16KB banks)
// - Up to 32KB RAM (4 8KB banks)
// - Bank 0 always mapped to 0x0000-0x3FFF
// - Switchable ROM bank at 0x4000-0x7FFF
// - Optional RAM banking at 0xA000-0xBFFF
// - Two banking modes:
//   - Mode 0 (ROM): Allows access to full ROM but only 8KB RAM
//   - Mode 1 (RAM): Restricts ROM banking but allows full RAM access
// - Optional battery backup for RAM persistence
type MBC1 struct {
	rom          []uint8
	ram          []uint8
	romBank      uint8
	ramBank      uint8
	ramEnabled   bool
	bankingMode  uint8
	hasBattery   bool
	ramBankCount uint8
}

// NewMBC1 creates a new MBC1 controller
func NewMBC1(romData []uint8, hasBattery bool, ramBankCount uint8) *MBC1 {
	ramSize := uint32(ramBankCount) * 0x2000 // 8KB per RAM bank
	return &MBC1{
		rom:          romData,
		ram:          make([]uint8, ramSize),
		romBank:      1,
		ramBank:      0,
		ramEnabled:   false,
		bankingMode:  0,
		hasBattery:   hasBattery,
		ramBankCount: ramBankCount,
	}
}

func (m *MBC1) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr >= 0x4000 && addr <= 0x7FFF:
		offset := bankedOffset(len(m.rom), uint32(m.romBank), 0x4000)
		return m.rom[offset+uint32(addr-0x4000)]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := bankedOffset(len(m.ram), uint32(m.ramBank), 0x2000)
		return m.ram[offset+uint32(addr-0xA000)]
	default:
		return 0xFF
	}
}

func (m *MBC1) Write(addr uint16, value uint8) uint8 {
	switch {
	case addr <= 0x1FFF:
		// RAM Enable
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr >= 0x2000 && addr <= 0x3FFF:
		// ROM Bank Number (lower 5 bits)
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBank = (m.romBank & 0x60) | bank
	case addr >= 0x4000 && addr <= 0x5FFF:
		// RAM Bank Number or Upper ROM Bank Number
		if m.bankingMode == 0 {
			m.romBank = (m.romBank & 0x1F) | ((value & 0x03) << 5)
		} else {
			m.ramBank = value & 0x03
		}
	case addr >= 0x6000 && addr <= 0x7FFF:
		// Banking Mode Select
		m.bankingMode = value & 0x01
		if m.bankingMode == 1 {
			m.romBank &= 0x1F
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := bankedOffset(len(m.ram), uint32(m.ramBank), 0x2000)
		m.ram[offset+uint32(addr-0xA000)] = value
	}
	return value
}

// SaveRAM returns a copy of the external RAM for battery persistence, or nil
// if the cartridge has no battery to keep it alive across power cycles.
func (m *MBC1) SaveRAM() []uint8 {
	if !m.hasBattery {
		return nil
	}
	out := make([]uint8, len(m.ram))
	copy(out, m.ram)
	return out
}

// LoadRAM restores external RAM from a previously saved battery file.
func (m *MBC1) LoadRAM(data []uint8) error {
	if !m.hasBattery || len(data) != len(m.ram) {
		return &BadBatteryFile{Want: len(m.ram), Got: len(data)}
	}
	copy(m.ram, data)
	return nil
}

// MBC2 is a simpler MBC chip with built-in RAM. Features include:
// - Supports up to 256KB ROM (16 16KB banks)
// - Built-in 512x4 bits RAM (not external)
// - RAM must be enabled (write 0x0A with address bit 8 clear) before use
// - ROM banking similar to MBC1 but simpler
// - The least significant bit of the upper address byte selects between
//   ROM banking and RAM access
// - RAM is limited to 4-bit values (upper 4 bits are ignored)
// - Optional battery backup for the built-in RAM
type MBC2 struct {
	rom        []uint8
	ram        []uint8 // 512x4 bits RAM
	romBank    uint8
	ramEnabled bool
	hasBattery bool
}

// NewMBC2 creates a new MBC2 controller
func NewMBC2(romData []uint8, hasBattery bool) *MBC2 {
	return &MBC2{
		rom:        romData,
		ram:        make([]uint8, 512),
		romBank:    1,
		ramEnabled: false,
		hasBattery: hasBattery,
	}
}

func (m *MBC2) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr >= 0x4000 && addr <= 0x7FFF:
		offset := bankedOffset(len(m.rom), uint32(m.romBank), 0x4000)
		return m.rom[offset+uint32(addr-0x4000)]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		// only the low nibble is wired; the upper 4 bits always read as 1
		return m.ram[(addr-0xA000)%512] | 0xF0
	default:
		return 0xFF
	}
}

func (m *MBC2) Write(addr uint16, value uint8) uint8 {
	switch {
	case addr <= 0x3FFF:
		// bit 8 of the address selects RAM-enable vs ROM-bank-number behaviour
		if addr&0x100 == 0 {
			m.ramEnabled = (value & 0x0F) == 0x0A
		} else {
			bank := value & 0x0F
			if bank == 0 {
				bank = 1
			}
			m.romBank = bank
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		m.ram[(addr-0xA000)%512] = value & 0x0F
	}
	return value
}

// SaveRAM returns a copy of the built-in 4-bit RAM for battery persistence,
// or nil if the cartridge has no battery.
func (m *MBC2) SaveRAM() []uint8 {
	if !m.hasBattery {
		return nil
	}
	out := make([]uint8, len(m.ram))
	copy(out, m.ram)
	return out
}

// LoadRAM restores the built-in RAM from a previously saved battery file.
func (m *MBC2) LoadRAM(data []uint8) error {
	if !m.hasBattery || len(data) != len(m.ram) {
		return &BadBatteryFile{Want: len(m.ram), Got: len(data)}
	}
	copy(m.ram, data)
	return nil
}

// MBC3 is an advanced MBC chip with RTC support. Features include:
// - Supports up to 2MB ROM (128 16KB banks)
// - Up to 32KB RAM (4 8KB banks)
// - Real-Time Clock (RTC) functionality
// - RTC has 5 registers: Seconds, Minutes, Hours, Days (lower), Days (upper)/Flags
// - Similar banking to MBC1 but with different register layout
// - RAM and RTC can be battery backed
// - Used in games that needed to track real time (e.g. Pokémon Gold/Silver)
type MBC3 struct {
	rom        []uint8
	ram        []uint8
	rtc        [5]uint8 // seconds, minutes, hours, day-low, day-high/flags
	rtcLatched [5]uint8
	latchState uint8 // tracks the 0x00 -> 0x01 write sequence that latches the RTC
	romBank    uint8
	ramBank    uint8
	ramEnabled bool
	hasRTC     bool
	hasBattery bool
}

// NewMBC3 creates a new MBC3 controller
func NewMBC3(romData []uint8, ramBankCount uint8, hasRTC bool, hasBattery bool) *MBC3 {
	ramSize := uint32(ramBankCount) * 0x2000
	return &MBC3{
		rom:        romData,
		ram:        make([]uint8, ramSize),
		romBank:    1,
		ramEnabled: false,
		hasRTC:     hasRTC,
		hasBattery: hasBattery,
	}
}

func (m *MBC3) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr >= 0x4000 && addr <= 0x7FFF:
		offset := bankedOffset(len(m.rom), uint32(m.romBank), 0x4000)
		return m.rom[offset+uint32(addr-0x4000)]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			return m.rtcLatched[m.ramBank-0x08]
		}
		if len(m.ram) == 0 {
			return 0xFF
		}
		offset := bankedOffset(len(m.ram), uint32(m.ramBank), 0x2000)
		return m.ram[offset+uint32(addr-0xA000)]
	default:
		return 0xFF
	}
}

func (m *MBC3) Write(addr uint16, value uint8) uint8 {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr >= 0x2000 && addr <= 0x3FFF:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr >= 0x4000 && addr <= 0x5FFF:
		m.ramBank = value
	case addr >= 0x6000 && addr <= 0x7FFF:
		if m.latchState == 0x00 && value == 0x01 {
			m.rtcLatched = m.rtc
		}
		m.latchState = value
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			m.rtc[m.ramBank-0x08] = value
			return value
		}
		if len(m.ram) == 0 {
			return 0xFF
		}
		offset := bankedOffset(len(m.ram), uint32(m.ramBank), 0x2000)
		m.ram[offset+uint32(addr-0xA000)] = value
	}
	return value
}

// SaveRAM returns a copy of the external RAM for battery persistence, or nil
// if the cartridge has no battery.
func (m *MBC3) SaveRAM() []uint8 {
	if !m.hasBattery {
		return nil
	}
	out := make([]uint8, len(m.ram))
	copy(out, m.ram)
	return out
}

// LoadRAM restores external RAM from a previously saved battery file.
func (m *MBC3) LoadRAM(data []uint8) error {
	if !m.hasBattery || len(data) != len(m.ram) {
		return &BadBatteryFile{Want: len(m.ram), Got: len(data)}
	}
	copy(m.ram, data)
	return nil
}

// MBC5 is the most advanced MBC chip. Features include:
// - Supports up to 8MB ROM (512 16KB banks)
// - Up to 128KB RAM (16 8KB banks)
// - Simple ROM/RAM banking with no quirks (unlike MBC1)
// - 9-bit ROM bank number (allows all 512 banks to be directly accessed)
// - Optional rumble motor support
// - Used in Game Boy Color games that needed more ROM/RAM
// - Backwards compatible with Game Boy
type MBC5 struct {
	rom        []uint8
	ram        []uint8
	romBank    uint16 // MBC5 supports up to 512 ROM banks
	ramBank    uint8
	ramEnabled bool
	hasRumble  bool
	hasBattery bool
}

// NewMBC5 creates a new MBC5 controller
func NewMBC5(romData []uint8, hasBattery bool, hasRumble bool, ramBankCount uint8) *MBC5 {
	ramSize := uint32(ramBankCount) * 0x2000
	return &MBC5{
		rom:        romData,
		ram:        make([]uint8, ramSize),
		romBank:    1,
		ramEnabled: false,
		hasRumble:  hasRumble,
		hasBattery: hasBattery,
	}
}

func (m *MBC5) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr >= 0x4000 && addr <= 0x7FFF:
		offset := bankedOffset(len(m.rom), uint32(m.romBank), 0x4000)
		return m.rom[offset+uint32(addr-0x4000)]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := bankedOffset(len(m.ram), uint32(m.ramBank), 0x2000)
		return m.ram[offset+uint32(addr-0xA000)]
	default:
		return 0xFF
	}
}

func (m *MBC5) Write(addr uint16, value uint8) uint8 {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr >= 0x2000 && addr <= 0x2FFF:
		// Low 8 bits of the 9-bit ROM bank number
		m.romBank = (m.romBank & 0x100) | uint16(value)
	case addr >= 0x3000 && addr <= 0x3FFF:
		// Bit 8 of the ROM bank number
		m.romBank = (m.romBank & 0xFF) | (uint16(value&0x01) << 8)
	case addr >= 0x4000 && addr <= 0x5FFF:
		// Rumble carts repurpose bit 3 of the RAM bank select to drive the motor;
		// rumble motor output itself is out of scope here, only bank masking matters.
		m.ramBank = value & 0x0F
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := bankedOffset(len(m.ram), uint32(m.ramBank), 0x2000)
		m.ram[offset+uint32(addr-0xA000)] = value
	}
	return value
}

// SaveRAM returns a copy of the external RAM for battery persistence, or nil
// if the cartridge has no battery.
func (m *MBC5) SaveRAM() []uint8 {
	if !m.hasBattery {
		return nil
	}
	out := make([]uint8, len(m.ram))
	copy(out, m.ram)
	return out
}

// LoadRAM restores external RAM from a previously saved battery file.
func (m *MBC5) LoadRAM(data []uint8) error {
	if !m.hasBattery || len(data) != len(m.ram) {
		return &BadBatteryFile{Want: len(m.ram), Got: len(data)}
	}
	copy(m.ram, data)
	return nil
}
