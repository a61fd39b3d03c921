// Pose dump tool - renders one frame of the figure to a PNG file.
//
// Usage: go run ./cmd/posedump -snapshot output/snapshots/snapshot_600.json -out pose.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/puppet"
	"github.com/pthm-cable/tacodoll/renderer"
	"github.com/pthm-cable/tacodoll/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	snapshotPath := flag.String("snapshot", "", "Pose to render (empty = run -ticks from the start pose)")
	ticks := flag.Int("ticks", 0, "Ticks to simulate before rendering")
	assets := flag.String("assets", "", "Base directory for textures")
	outPath := flag.String("out", "pose.png", "Output PNG path")
	outlines := flag.Bool("outlines", false, "Draw collision outlines")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctrl, err := puppet.New(cfg, puppet.Options{Seed: 1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build figure: %v\n", err)
		os.Exit(1)
	}
	if *snapshotPath != "" {
		snap, err := telemetry.LoadSnapshot(*snapshotPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load snapshot: %v\n", err)
			os.Exit(1)
		}
		ctrl.Restore(snap)
	}
	for range *ticks {
		ctrl.Tick(cfg.Derived.Step)
	}

	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Pose Dump")
	defer rl.CloseWindow()

	background := renderer.NewBackgroundRenderer(width, height, rl.Color{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF})
	defer background.Unload()
	textures := renderer.NewTextureCache(*assets)
	defer textures.Unload()
	figure := renderer.NewFigureRenderer(textures)
	figure.Outlines = *outlines

	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	background.Draw(float32(ctrl.World().Time()))
	figure.Draw(ctrl)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Pose at tick %d rendered to: %s (%dx%d)\n", ctrl.Ticks(), *outPath, width, height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
