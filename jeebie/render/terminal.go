package render

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-jeebie/jeebie"
)

const (
	width  = 160
	height = 144

	// Terminal characters are taller than wide, so the width is scaled more
	// to keep the on-screen aspect ratio close to the real one.
	scaleX = 2
	scaleY = 1

	frameTime = time.Second / 60

	// Game Boy joypad indices, per Emulator.ButtonDown/ButtonUp.
	buttonRight  = 0
	buttonLeft   = 1
	buttonUp     = 2
	buttonDown   = 3
	buttonA      = 4
	buttonB      = 5
	buttonSelect = 6
	buttonStart  = 7
)

var shadeChars = []rune{'█', '▓', '▒', '░'}

// TerminalRenderer drives an Emulator at ~60Hz and renders its framebuffer
// as block characters in a tcell screen. Terminal input only reports
// key-down events, so a pressed button is released on the following tick;
// this is a known limitation of terminal-based input, not a joypad bug.
type TerminalRenderer struct {
	screen   tcell.Screen
	emulator *jeebie.Emulator
	running  bool
}

func NewTerminalRenderer(emu *jeebie.Emulator) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	return &TerminalRenderer{
		screen:   screen,
		emulator: emu,
		running:  true,
	}, nil
}

func (t *TerminalRenderer) Run() error {
	defer func() {
		slog.Info("terminal renderer stopping")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go t.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	const cyclesPerFrame = 70224

	for t.running {
		select {
		case <-ticker.C:
			if err := t.emulator.Run(cyclesPerFrame); err != nil {
				slog.Error("emulator halted", "error", err)
				t.running = false
				return err
			}
			t.render()
			t.screen.Show()
		case <-signals:
			t.running = false
			slog.Info("received signal to stop")
			return nil
		}
	}

	return nil
}

func (t *TerminalRenderer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				t.running = false
				return
			case tcell.KeyEnter:
				t.press(buttonStart)
			case tcell.KeyRight:
				t.press(buttonRight)
			case tcell.KeyLeft:
				t.press(buttonLeft)
			case tcell.KeyUp:
				t.press(buttonUp)
			case tcell.KeyDown:
				t.press(buttonDown)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'a':
					t.press(buttonA)
				case 's':
					t.press(buttonB)
				case 'q':
					t.press(buttonSelect)
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// press reports a button down immediately followed by a release on the next
// tick, since the terminal only reports key-down events for single presses.
func (t *TerminalRenderer) press(button int) {
	t.emulator.ButtonDown(button)
	go func() {
		time.Sleep(frameTime)
		t.emulator.ButtonUp(button)
	}()
}

func (t *TerminalRenderer) render() {
	fb := t.emulator.Framebuffer()
	if fb == nil {
		return
	}
	frame := fb.ToSlice()

	t.screen.Clear()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := frame[y*width+x]
			shade := shadeIndex(pixel)

			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
			char := shadeChars[shade]

			screenX := x * scaleX
			screenY := y * scaleY
			for sx := 0; sx < scaleX; sx++ {
				t.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}

// shadeIndex maps an RGBA8888 pixel to one of the four block characters by
// luminance, so it degrades gracefully for both DMG greyscale and GBC
// colour pixels.
func shadeIndex(pixel uint32) int {
	r := (pixel >> 24) & 0xFF
	g := (pixel >> 16) & 0xFF
	b := (pixel >> 8) & 0xFF
	luma := (r*3 + g*6 + b) / 10

	switch {
	case luma >= 192:
		return 3
	case luma >= 128:
		return 2
	case luma >= 64:
		return 1
	default:
		return 0
	}
}
