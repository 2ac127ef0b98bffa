package cpu

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-jeebie/jeebie/addr"
	"github.com/valerio/go-jeebie/jeebie/memory"
)

// UnsupportedOpcodeError is returned by Exec when the fetched opcode falls
// on one of the undefined slots in the instruction set (0xD3, 0xDB, 0xDD,
// 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD).
type UnsupportedOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("unsupported opcode 0x%02X at pc=0x%04X", e.Opcode, e.PC)
}

// Flag is one of the 4 possible flags used in the flag register (low nibble is always 0)
type Flag uint8

const (
	zeroFlag      Flag = 0x80
	subFlag       Flag = 0x40
	halfCarryFlag Flag = 0x20
	carryFlag     Flag = 0x10
)

// interruptVectors maps an IF/IE bit index to its dispatch address, in priority order.
var interruptVectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

// CPU holds the state of the Sharp LR35902 core: its 8-bit registers,
// stack/program counters and the flags governing interrupt and
// low-power behaviour.
type CPU struct {
	bus *memory.MMU

	a, f   uint8
	b, c   uint8
	d, e   uint8
	h, l   uint8
	sp, pc uint16

	currentOpcode uint16
	cycles        uint64

	interruptsEnabled bool
	eiPending         bool
	halted            bool
	haltBug           bool
	stopped           bool
	doubleSpeed       bool

	err error
}

// Err returns the error that stopped execution, if any (e.g. an undefined
// opcode was fetched). Once set it is sticky: Exec becomes a no-op.
func (c *CPU) Err() error { return c.err }

func (c *CPU) raiseUnsupportedOpcode() {
	c.err = &UnsupportedOpcodeError{Opcode: c.currentOpcode, PC: c.pc}
}

// New returns a CPU wired to the given bus, with registers set to the
// documented post-boot-ROM state of a DMG, or a GBC if the loaded
// cartridge declares CGB support (A=0x11 instead of 0x01).
func New(bus *memory.MMU) *CPU {
	a := uint8(0x01)
	if bus.IsGBC() {
		a = 0x11
	}

	return &CPU{
		bus: bus,
		a:   a, f: 0xB0,
		b: 0x00, c: 0x13,
		d: 0x00, e: 0xD8,
		h: 0x01, l: 0x4D,
		sp: 0xFFFE,
		pc: 0x0100,
	}
}

func (c *CPU) GetPC() uint16      { return c.pc }
func (c *CPU) GetSP() uint16      { return c.sp }
func (c *CPU) GetCycles() uint64  { return c.cycles }
func (c *CPU) IME() bool          { return c.interruptsEnabled }
func (c *CPU) Halted() bool       { return c.halted }
func (c *CPU) Stopped() bool      { return c.stopped }
func (c *CPU) DoubleSpeed() bool  { return c.doubleSpeed }
func (c *CPU) GetA() uint8        { return c.a }
func (c *CPU) GetF() uint8        { return c.f }
func (c *CPU) GetB() uint8        { return c.b }
func (c *CPU) GetC() uint8        { return c.c }
func (c *CPU) GetD() uint8        { return c.d }
func (c *CPU) GetE() uint8        { return c.e }
func (c *CPU) GetH() uint8        { return c.h }
func (c *CPU) GetL() uint8        { return c.l }
func (c *CPU) GetAF() uint16      { return c.getAF() }
func (c *CPU) GetBC() uint16      { return c.getBC() }
func (c *CPU) GetDE() uint16      { return c.getDE() }
func (c *CPU) GetHL() uint16      { return c.getHL() }

// tickBus advances the bus (and, via the shared clock, the timer/DMA) by
// delta T-cycles, halved in double-speed mode so the timer and PPU keep
// their native real-time pace while the CPU itself executes twice as many
// M-cycles per real-time tick. It returns the real-time cycle count applied,
// which callers use to keep the PPU in lockstep (see jeebie.Bus.TickInstruction).
func (c *CPU) tickBus(delta int) int {
	real := delta
	if c.doubleSpeed {
		real = delta / 2
	}
	c.bus.Tick(real)
	return real
}

func (c *CPU) getAF() uint16 { return uint16(c.a)<<8 | uint16(c.f) }
func (c *CPU) getBC() uint16 { return uint16(c.b)<<8 | uint16(c.c) }
func (c *CPU) getDE() uint16 { return uint16(c.d)<<8 | uint16(c.e) }
func (c *CPU) getHL() uint16 { return uint16(c.h)<<8 | uint16(c.l) }

func (c *CPU) setAF(v uint16) { c.a = uint8(v >> 8); c.f = uint8(v) & 0xF0 }
func (c *CPU) setBC(v uint16) { c.b = uint8(v >> 8); c.c = uint8(v) }
func (c *CPU) setDE(v uint16) { c.d = uint8(v >> 8); c.e = uint8(v) }
func (c *CPU) setHL(v uint16) { c.h = uint8(v >> 8); c.l = uint8(v) }

func (c *CPU) setFlag(flag Flag)   { c.f |= uint8(flag) }
func (c *CPU) resetFlag(flag Flag) { c.f &^= uint8(flag) }
func (c *CPU) isSetFlag(flag Flag) bool {
	return c.f&uint8(flag) != 0
}
func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if condition {
		c.setFlag(flag)
	} else {
		c.resetFlag(flag)
	}
}
func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}

// readImmediate reads the byte at PC and advances PC past it.
func (c *CPU) readImmediate() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

func (c *CPU) readSignedImmediate() int8 {
	return int8(c.readImmediate())
}

// readImmediateWord reads a little-endian word starting at PC.
func (c *CPU) readImmediateWord() uint16 {
	low := c.readImmediate()
	high := c.readImmediate()
	return uint16(high)<<8 | uint16(low)
}

// Exec runs a single step of the CPU: servicing a pending interrupt if one
// is due, otherwise fetching, decoding and executing the next instruction.
// It returns the real-time cycle count the rest of the machine (timer, PPU)
// should be advanced by, which equals the T-cycles consumed except in
// double-speed mode where it is halved.
func (c *CPU) Exec() int {
	if c.err != nil {
		return 0
	}

	if c.eiPending {
		c.eiPending = false
		c.interruptsEnabled = true
	}

	imeBefore := c.interruptsEnabled
	pending, dispatchReal := c.handleInterrupts()
	if pending {
		if c.halted {
			c.halted = false
			if !imeBefore {
				c.haltBug = true
			}
		}
		if imeBefore {
			// handleInterrupts already ticked the bus for the dispatch.
			return dispatchReal
		}
	}

	if c.halted {
		return c.tickBus(4)
	}

	if c.stopped {
		ifReg := c.bus.Read(addr.IF)
		if ifReg&(1<<4) != 0 {
			c.stopped = false
		} else {
			return c.tickBus(4)
		}
	}

	op := Decode(c)
	c.pc++
	if c.currentOpcode&0xFF00 == 0xCB00 {
		c.pc++
	}

	if c.haltBug {
		c.haltBug = false
		c.pc--
	}

	cycles := op(c)
	c.cycles += uint64(cycles)

	return c.tickBus(cycles)
}

// handleInterrupts checks IE & IF. When an interrupt is both requested and
// enabled it pushes PC, jumps to the matching vector, clears the IF bit and
// costs 20 cycles, returning true plus the real-time cycle count spent. With
// IME off it still reports whether an interrupt is pending (without
// servicing it) so HALT can be woken up and the HALT bug detected by the
// caller.
func (c *CPU) handleInterrupts() (bool, int) {
	ifReg := c.bus.Read(addr.IF)
	ieReg := c.bus.Read(addr.IE)
	pending := ifReg & ieReg & 0x1F

	if pending == 0 {
		return false, 0
	}

	if !c.interruptsEnabled {
		return true, 0
	}

	for bit := 0; bit < len(interruptVectors); bit++ {
		if pending&(1<<uint(bit)) == 0 {
			continue
		}

		c.interruptsEnabled = false
		c.bus.Write(addr.IF, ifReg&^(1<<uint(bit)))
		c.pushStack(c.pc)
		c.pc = interruptVectors[bit]
		c.cycles += 20
		real := c.tickBus(20)
		slog.Debug("interrupt dispatched", "bit", bit, "vector", c.pc)
		return true, real
	}

	return true, 0
}
