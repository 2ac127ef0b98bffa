package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-jeebie/jeebie"
	"github.com/valerio/go-jeebie/jeebie/debug"
	"github.com/valerio/go-jeebie/jeebie/render"
)

func main() {
	app := cli.NewApp()
	app.Name = "Jeebie"
	app.Description = "A Game Boy / Game Boy Color emulator core"
	app.Usage = "jeebie [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a terminal display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "debug-instructions",
			Usage: "Log every executed instruction",
		},
		cli.BoolFlag{
			Name:  "no-background",
			Usage: "Disable background/window compositing",
		},
		cli.BoolFlag{
			Name:  "no-sprites",
			Usage: "Disable sprite compositing",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Save a PNG of the final frame to this directory after headless execution",
		},
		cli.BoolFlag{
			Name:  "dump-oam",
			Usage: "Log an OAM summary after headless execution",
		},
		cli.BoolFlag{
			Name:  "dump-vram",
			Usage: "Log a VRAM/tilemap summary after headless execution",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	data, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	emu := jeebie.New()
	emu.SetDebugInstructions(c.Bool("debug-instructions"))
	emu.SetDrawBackgroundLayer(!c.Bool("no-background"))
	emu.SetDrawSpriteLayer(!c.Bool("no-sprites"))

	if err := emu.LoadROM(data); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}
		if err := runHeadless(emu, frames); err != nil {
			return err
		}
		return dumpDebugArtifacts(emu, c)
	}

	renderer, err := render.NewTerminalRenderer(emu)
	if err != nil {
		return err
	}
	return renderer.Run()
}

func runHeadless(emu *jeebie.Emulator, frames int) error {
	const cyclesPerFrame = 70224

	for i := 0; i < frames; i++ {
		if err := emu.Run(cyclesPerFrame); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		if (i+1)%10 == 0 {
			slog.Info("frame progress", "completed", i+1, "total", frames)
		}
	}

	slog.Info("headless execution completed", "frames", frames)
	return nil
}

// dumpDebugArtifacts exercises the debug package's introspection tools
// against the emulator's final state, as requested by CLI flags.
func dumpDebugArtifacts(emu *jeebie.Emulator, c *cli.Context) error {
	if dir := c.String("snapshot-dir"); dir != "" {
		if err := debug.SaveFramePNGToDir(emu.Framebuffer(), "jeebie_snapshot", dir); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}

	reader := emu.MemoryReader()
	if reader == nil {
		return nil
	}

	if c.Bool("dump-oam") {
		oam := debug.ExtractOAMData(reader, int(emu.LY()), emu.SpriteHeight())
		slog.Info("oam summary", "summary", oam.FormatSummary())
	}

	if c.Bool("dump-vram") {
		vram := debug.ExtractVRAMData(reader)
		slog.Info("vram summary", "summary", vram.TilemapInfo.FormatSummary())
	}

	return nil
}
