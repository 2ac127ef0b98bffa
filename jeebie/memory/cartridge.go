package memory

const titleLength = 16

const (
	entryPointAddress      = 0x100
	logoAddress            = 0x104
	titleAddress           = 0x134
	manufacturerCodeAddress = 0x13F
	cgbFlagAddress         = 0x143
	newLicenseCodeAddress  = 0x144
	sgbFlagAddress         = 0x146
	cartridgeTypeAddress   = 0x147
	romSizeAddress         = 0x148
	ramSizeAddress         = 0x149
	destinationCodeAddress = 0x14A
	oldLicenseCodeAddress  = 0x14B
	versionNumberAddress   = 0x14C
	headerChecksumAddress  = 0x14D
	globalChecksumAddress  = 0x14E
)

// MBCType identifies the memory bank controller chip described by the
// cartridge header byte at 0x147.
type MBCType uint8

const (
	NoMBCType MBCType = iota
	MBC1Type
	MBC1MultiType
	MBC2Type
	MBC3Type
	MBC5Type
	MBCUnknownType
)

// ramBankCountTable maps the cartridge header's RAM size byte (0x149) to a
// count of 8KB RAM banks.
var ramBankCountTable = map[uint8]uint8{
	0x00: 0,
	0x01: 1, // unofficial 2KB, treated as a single partial bank
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

// Cartridge holds the raw ROM image for a loaded game along with the header
// fields that drive MMU/MBC construction: which controller chip to build,
// whether it has a battery/RTC/rumble, and how many ROM/RAM banks it has.
type Cartridge struct {
	data []byte

	title          string
	mbcType        MBCType
	hasBattery     bool
	hasRTC         bool
	hasRumble      bool
	romBankCount   uint16
	ramBankCount   uint8
	headerChecksum uint8
	globalChecksum uint16
	isGBC          bool
}

// NewCartridge creates an empty cartridge, useful only for debugging purposes.
func NewCartridge() *Cartridge {
	return &Cartridge{
		data:    make([]byte, 0x10000),
		mbcType: NoMBCType,
	}
}

// NewCartridgeWithData initializes a new Cartridge by parsing the header out
// of a ROM image.
func NewCartridgeWithData(bytes []byte) *Cartridge {
	cart := &Cartridge{
		data: make([]byte, len(bytes)),
	}
	copy(cart.data, bytes)

	if len(bytes) <= globalChecksumAddress+1 {
		cart.mbcType = NoMBCType
		return cart
	}

	cart.isGBC = bytes[cgbFlagAddress] == 0x80 || bytes[cgbFlagAddress] == 0xC0
	titleLen := gbcTitleLength(cart.isGBC, titleLength)
	cart.title = cleanGameboyTitle(bytes[titleAddress : titleAddress+titleLen])
	cart.headerChecksum = bytes[headerChecksumAddress]
	cart.globalChecksum = uint16(bytes[globalChecksumAddress])<<8 | uint16(bytes[globalChecksumAddress+1])
	cart.romBankCount = 2 << bytes[romSizeAddress]
	cart.ramBankCount = ramBankCountTable[bytes[ramSizeAddress]]

	cartType := bytes[cartridgeTypeAddress]
	cart.mbcType, cart.hasBattery, cart.hasRTC, cart.hasRumble = decodeCartridgeType(cartType)

	return cart
}

// decodeCartridgeType maps the header byte at 0x147 to an MBC chip plus the
// auxiliary hardware (battery backup, RTC, rumble) that chip variant carries.
func decodeCartridgeType(cartType uint8) (mbc MBCType, battery, rtc, rumble bool) {
	switch cartType {
	case 0x00:
		return NoMBCType, false, false, false
	case 0x01:
		return MBC1Type, false, false, false
	case 0x02:
		return MBC1Type, false, false, false
	case 0x03:
		return MBC1Type, true, false, false
	case 0x05:
		return MBC2Type, false, false, false
	case 0x06:
		return MBC2Type, true, false, false
	case 0x0F:
		return MBC3Type, true, true, false
	case 0x10:
		return MBC3Type, true, true, false
	case 0x11:
		return MBC3Type, false, false, false
	case 0x12:
		return MBC3Type, false, false, false
	case 0x13:
		return MBC3Type, true, false, false
	case 0x19:
		return MBC5Type, false, false, false
	case 0x1A:
		return MBC5Type, false, false, false
	case 0x1B:
		return MBC5Type, true, false, false
	case 0x1C:
		return MBC5Type, false, false, true
	case 0x1D:
		return MBC5Type, false, false, true
	case 0x1E:
		return MBC5Type, true, false, true
	default:
		return MBCUnknownType, false, false, false
	}
}

// VerifyHeaderChecksum recomputes the header checksum over 0x134-0x14C and
// reports whether it matches the stored value at 0x14D.
func (c *Cartridge) VerifyHeaderChecksum() bool {
	if len(c.data) <= headerChecksumAddress {
		return false
	}

	var sum uint8
	for i := titleAddress; i < headerChecksumAddress; i++ {
		sum = sum - c.data[i] - 1
	}

	return sum == c.headerChecksum
}

func (c *Cartridge) Title() string       { return c.title }
func (c *Cartridge) IsGBC() bool         { return c.isGBC }
func (c *Cartridge) MBCType() MBCType    { return c.mbcType }
func (c *Cartridge) HasBattery() bool    { return c.hasBattery }
func (c *Cartridge) RAMBankCount() uint8 { return c.ramBankCount }

// Validate reports whether the ROM image is large enough to carry a header
// and, if so, whether that header's checksum and cartridge type are ones the
// MMU knows how to build an MBC for. It does not validate the global
// checksum: real hardware ignores it too.
func (c *Cartridge) Validate() error {
	if len(c.data) <= globalChecksumAddress+1 {
		return &InvalidROMError{Reason: "ROM image is shorter than the cartridge header"}
	}
	if !c.VerifyHeaderChecksum() {
		return &InvalidROMError{Reason: "header checksum mismatch"}
	}
	if c.mbcType == MBCUnknownType {
		return &UnsupportedMBCError{CartridgeType: c.data[cartridgeTypeAddress]}
	}
	return nil
}

// ReadByte reads a byte at the specified address. Does not check bounds, so the caller must make sure the
// address is valid for the cartridge.
func (c Cartridge) ReadByte(addr uint16) uint8 {
	return c.data[addr]
}
