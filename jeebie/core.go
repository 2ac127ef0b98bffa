package jeebie

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/valerio/go-jeebie/jeebie/addr"
	"github.com/valerio/go-jeebie/jeebie/cpu"
	"github.com/valerio/go-jeebie/jeebie/debug"
	"github.com/valerio/go-jeebie/jeebie/memory"
	"github.com/valerio/go-jeebie/jeebie/video"
)

const cyclesPerFrame = 70224

// Emulator is the root struct and host-facing entry point for the
// emulation core: cartridge loading, the step/run loop, joypad input and
// framebuffer/debug readback. It owns the Bus, which holds the CPU, MMU
// and PPU side by side.
type Emulator struct {
	bus *Bus

	mu            sync.Mutex
	state         State
	err           error // sticky fatal error, set once Run/Step fails
	pauseWanted   bool
	frameCount    uint64
	frameCycleAcc int // cycles accumulated toward the next frameCount tick

	debugInstructions   bool
	drawBackgroundLayer bool
	drawSpriteLayer     bool
}

// New creates an Emulator with no ROM loaded, in the Waiting state.
func New() *Emulator {
	return &Emulator{
		state:               StateWaiting,
		drawBackgroundLayer: true,
		drawSpriteLayer:     true,
	}
}

// SetDebugInstructions toggles per-instruction logging. Process-wide,
// applies to any ROM loaded afterwards and to the one currently loaded.
func (e *Emulator) SetDebugInstructions(on bool) { e.debugInstructions = on }

// SetDrawBackgroundLayer toggles background/window compositing, applied
// immediately if a ROM is already loaded.
func (e *Emulator) SetDrawBackgroundLayer(on bool) {
	e.drawBackgroundLayer = on
	if e.bus != nil {
		e.bus.GPU.DrawBackground = on
	}
}

// SetDrawSpriteLayer toggles sprite compositing, applied immediately if a
// ROM is already loaded.
func (e *Emulator) SetDrawSpriteLayer(on bool) {
	e.drawSpriteLayer = on
	if e.bus != nil {
		e.bus.GPU.DrawSprites = on
	}
}

// LoadROM parses a cartridge image and readies the machine, transitioning
// Waiting -> Ready. Only legal while Waiting; a rejected ROM (bad header,
// unsupported MBC) leaves the machine in Waiting with the error returned.
func (e *Emulator) LoadROM(data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateWaiting {
		return &InvalidStateError{Operation: "load_rom", State: e.state}
	}

	cart := memory.NewCartridgeWithData(data)
	if err := cart.Validate(); err != nil {
		return err
	}

	mmu := memory.NewWithCartridge(cart)
	cpuInst := cpu.New(mmu)
	gpu := video.NewGpu(mmu)
	gpu.DrawBackground = e.drawBackgroundLayer
	gpu.DrawSprites = e.drawSpriteLayer

	e.bus = &Bus{CPU: cpuInst, MMU: mmu, GPU: gpu}
	e.state = StateReady
	e.err = nil
	e.frameCount = 0
	e.frameCycleAcc = 0

	slog.Info("ROM loaded", "title", cart.Title(), "gbc", cart.IsGBC(), "mbc", cart.MBCType())

	return nil
}

// Reset discards all CPU/MMU/PPU state and the cartridge image, returning
// to Waiting. A new ROM must be loaded before Step/Run can run again.
func (e *Emulator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.bus = nil
	e.state = StateWaiting
	e.err = nil
	e.pauseWanted = false
	e.frameCount = 0
	e.frameCycleAcc = 0
}

// FrameCount returns the number of complete 70,224-T-cycle frames executed
// since the last LoadROM/Reset.
func (e *Emulator) FrameCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

// Step executes exactly one instruction. Legal only in Ready.
func (e *Emulator) Step() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateReady {
		return &InvalidStateError{Operation: "step", State: e.state}
	}

	_, err := e.execOne()
	return err
}

// execOne runs one CPU instruction and folds any sticky CPU error into a
// fatal emulator state. Returns the real-time cycle count spent (as seen by
// the timer/PPU). Caller must hold e.mu.
func (e *Emulator) execOne() (int, error) {
	pc := e.bus.CPU.GetPC()
	cycles := e.bus.TickInstruction()

	if e.debugInstructions {
		slog.Debug("step", "pc", fmt.Sprintf("0x%04X", pc), "new_pc", fmt.Sprintf("0x%04X", e.bus.CPU.GetPC()))
	}

	e.frameCycleAcc += cycles
	if e.frameCycleAcc >= cyclesPerFrame {
		e.frameCycleAcc -= cyclesPerFrame
		e.frameCount++
	}

	if err := e.bus.CPU.Err(); err != nil {
		e.state = StateFatal
		e.err = err
		return cycles, err
	}

	return cycles, nil
}

// Run executes instructions until targetCycles T-cycles have elapsed or an
// error occurs. Requires Ready, transitions through Running, and returns to
// Ready on normal completion or early Pause. A step error moves the machine
// to Fatal and is returned to the caller.
func (e *Emulator) Run(targetCycles int) error {
	e.mu.Lock()
	if e.state != StateReady {
		e.mu.Unlock()
		return &InvalidStateError{Operation: "run", State: e.state}
	}
	e.state = StateRunning
	e.pauseWanted = false
	e.mu.Unlock()

	total := 0
	for total < targetCycles {
		e.mu.Lock()
		if e.pauseWanted {
			e.pauseWanted = false
			e.state = StateReady
			e.mu.Unlock()
			return nil
		}

		cycles, err := e.execOne()
		if err != nil {
			e.mu.Unlock()
			return err
		}
		total += cycles
		e.mu.Unlock()
	}

	e.mu.Lock()
	if e.state == StateRunning {
		e.state = StateReady
	}
	e.mu.Unlock()

	return nil
}

// Pause requests that an in-flight Run stop at the next instruction
// boundary, transitioning Running -> Ready. Legal only while Running.
func (e *Emulator) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return &InvalidStateError{Operation: "pause", State: e.state}
	}

	e.pauseWanted = true
	return nil
}

// State reports the emulator's current lifecycle stage.
func (e *Emulator) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the fatal error that stopped the machine, if any.
func (e *Emulator) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// ButtonDown presses the joypad button at index i, per the ordering
// {RIGHT=0, LEFT=1, UP=2, DOWN=3, A=4, B=5, SELECT=6, START=7}.
func (e *Emulator) ButtonDown(i int) {
	if e.bus == nil || i < 0 || i > 7 {
		return
	}
	e.bus.MMU.HandleKeyPress(memory.JoypadKey(i))
}

// ButtonUp releases the joypad button at index i.
func (e *Emulator) ButtonUp(i int) {
	if e.bus == nil || i < 0 || i > 7 {
		return
	}
	e.bus.MMU.HandleKeyRelease(memory.JoypadKey(i))
}

// Framebuffer returns the latest completed frame. Returns nil if no ROM is
// loaded.
func (e *Emulator) Framebuffer() *video.FrameBuffer {
	if e.bus == nil {
		return nil
	}
	return e.bus.GPU.GetFrameBuffer()
}

// MemoryReader exposes the loaded cartridge's address space for debug
// tooling (OAM/VRAM/tile inspection). Returns nil if no ROM is loaded.
func (e *Emulator) MemoryReader() debug.MemoryReader {
	if e.bus == nil {
		return nil
	}
	return e.bus.MMU
}

// LY returns the PPU's current scanline, for debug tooling that needs to
// know which OAM entries are visible.
func (e *Emulator) LY() uint8 {
	if e.bus == nil {
		return 0
	}
	return e.bus.MMU.Read(addr.LY)
}

// SpriteHeight returns 16 if LCDC selects 8x16 sprites, else 8.
func (e *Emulator) SpriteHeight() int {
	if e.bus == nil {
		return 8
	}
	if e.bus.MMU.ReadBit(2, addr.LCDC) {
		return 16
	}
	return 8
}

// DebugSnapshot renders the CPU's register file and clock as a string.
func (e *Emulator) DebugSnapshot() string {
	if e.bus == nil {
		return "no rom loaded"
	}

	c := e.bus.CPU
	return fmt.Sprintf(
		"PC=0x%04X SP=0x%04X AF=0x%04X BC=0x%04X DE=0x%04X HL=0x%04X IME=%t halted=%t cycles=%d",
		c.GetPC(), c.GetSP(), c.GetAF(), c.GetBC(), c.GetDE(), c.GetHL(), c.IME(), c.Halted(), c.GetCycles(),
	)
}

// SaveRAM returns a copy of the cartridge's battery-backed RAM, or nil if
// there is none.
func (e *Emulator) SaveRAM() []byte {
	if e.bus == nil {
		return nil
	}
	return e.bus.MMU.SaveRAM()
}

// LoadRAM restores battery-backed cartridge RAM saved by SaveRAM. Returns
// BadBatteryFile if the image size doesn't match the cartridge's RAM.
func (e *Emulator) LoadRAM(data []byte) error {
	if e.bus == nil {
		return &InvalidStateError{Operation: "load_ram", State: e.state}
	}
	return e.bus.MMU.LoadRAM(data)
}
