// Rig preview tool - live figure with sliders for the construction
// parameters.
//
// Usage: go run ./cmd/rigpreview [-config path] [-assets dir]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/puppet"
	"github.com/pthm-cable/tacodoll/renderer"
)

const (
	windowWidth  = 1200
	windowHeight = 760
	previewSize  = 740
	panelWidth   = windowWidth - previewSize - 30
)

// RigParams holds the tunable values shown on the panel.
type RigParams struct {
	Scale      float32 `yaml:"scale"`
	Stiffness  float32 `yaml:"stiffness"`
	LimbRadius float32 `yaml:"limb_radius"`
	GravityY   float32 `yaml:"gravity_y"`
	Hanger     bool    `yaml:"hanger"`
}

func paramsFrom(cfg *config.Config) RigParams {
	return RigParams{
		Scale:      float32(cfg.Ragdoll.Scale),
		Stiffness:  float32(cfg.Ragdoll.Stiffness),
		LimbRadius: float32(cfg.Ragdoll.LimbRadius),
		GravityY:   float32(cfg.Physics.Gravity.Y),
		Hanger:     cfg.Ragdoll.Hanger.Enabled,
	}
}

// apply returns a copy of base with params written over it, sized to the
// preview area.
func apply(base *config.Config, p RigParams) *config.Config {
	cfg := *base
	cfg.Ragdoll.Scale = float64(p.Scale)
	cfg.Ragdoll.Stiffness = float64(p.Stiffness)
	cfg.Ragdoll.LimbRadius = float64(p.LimbRadius)
	cfg.Ragdoll.Hanger.Enabled = p.Hanger
	cfg.Physics.Gravity.Y = float64(p.GravityY)
	cfg.Derived.ScreenW = previewSize
	cfg.Derived.ScreenH = previewSize
	return &cfg
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	assets := flag.String("assets", "", "Base directory for textures")
	flag.Parse()

	base, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Rig Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	textures := renderer.NewTextureCache(*assets)
	defer textures.Unload()
	figure := renderer.NewFigureRenderer(textures)
	figure.Outlines = true

	params := paramsFrom(base)
	var ctrl *puppet.Controller
	needsRebuild := true
	paused := false

	for !rl.WindowShouldClose() {
		if needsRebuild {
			next, err := puppet.New(apply(base, params), puppet.Options{Seed: 1})
			if err != nil {
				slog.Warn("rebuild failed", "error", err)
			} else {
				ctrl = next
			}
			needsRebuild = false
		}

		if ctrl != nil {
			handleDrag(ctrl)
			if !paused {
				ctrl.Tick(base.Derived.Step)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF})
		if ctrl != nil {
			rl.BeginMode2D(rl.Camera2D{Offset: rl.Vector2{X: 10, Y: 10}, Zoom: 1})
			figure.Draw(ctrl)
			rl.EndMode2D()
		}
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Rig Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, lo, hi string, value, minV, maxV float32, format string) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				lo, hi, value, minV, maxV,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			if v != value {
				needsRebuild = true
			}
			return v
		}

		params.Scale = slider("Scale (size multiplier)", "0.5", "4.0", params.Scale, 0.5, 4.0, "%.2f")
		params.Stiffness = slider("Stiffness (error removed per step)", "0.05", "1.0", params.Stiffness, 0.05, 1.0, "%.2f")
		params.LimbRadius = slider("Limb radius (px before scale)", "0", "15", params.LimbRadius, 0, 15, "%.1f")
		params.GravityY = slider("Gravity Y (engine units)", "-2", "2", params.GravityY, -2, 2, "%.2f")

		hanger := gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Hang from string", params.Hanger)
		if hanger != params.Hanger {
			params.Hanger = hanger
			needsRebuild = true
		}
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Rebuild") {
			needsRebuild = true
		}
		panelY += 40
		if ctrl != nil {
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(ctrl.Dancing(), "Stop", "Dance")) {
				ctrl.ToggleDance()
			}
			if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Taco") {
				ctrl.SingTaco(true)
			}
		}
		if gui.Button(rl.Rectangle{X: panelX + 260, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = paramsFrom(base)
			needsRebuild = true
		}
		panelY += 55

		if ctrl != nil {
			rl.DrawText(fmt.Sprintf("Max joint gap: %.2f px", ctrl.Ragdoll().MaxStretch()), int32(panelX), int32(panelY), 16, rl.DarkGray)
			panelY += 20
			rl.DrawText(fmt.Sprintf("Kinetic energy: %.0f", ctrl.Ragdoll().KineticEnergy()), int32(panelX), int32(panelY), 16, rl.DarkGray)
			panelY += 30
		}

		// Output YAML
		snippet := rigYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(strings.TrimRight(snippet, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// handleDrag lets the figure be grabbed inside the preview area.
func handleDrag(ctrl *puppet.Controller) {
	pos := rl.GetMousePosition()
	x, y := float64(pos.X-10), float64(pos.Y-10)
	_, dragging := ctrl.Drag()
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !dragging:
		if x >= 0 && y >= 0 && x < previewSize && y < previewSize {
			ctrl.Press(x, y)
		}
	case dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft):
		ctrl.Move(x, y)
	case dragging:
		ctrl.Release(x, y)
	}
}

// rigYAML renders params as the config sections they belong to.
func rigYAML(p RigParams) string {
	doc := map[string]any{
		"ragdoll": map[string]any{
			"scale":       round(p.Scale, 100),
			"stiffness":   round(p.Stiffness, 100),
			"limb_radius": round(p.LimbRadius, 10),
			"hanger":      map[string]any{"enabled": p.Hanger},
		},
		"physics": map[string]any{
			"gravity": map[string]any{"x": 0, "y": round(p.GravityY, 100)},
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err.Error()
	}
	return string(out)
}

func round(v, unit float32) float64 {
	return math.Round(float64(v*unit)) / float64(unit)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
