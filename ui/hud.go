package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tacodoll/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Tick       int64
	SimTime    float64
	FPS        int32
	Paused     bool
	Dancing    bool
	Singing    bool
	Dragging   string // label of the held part, empty when idle
	MaxStretch float64
}

// Actions reports which HUD buttons were clicked this frame.
type Actions struct {
	Taco    bool
	Burrito bool
	Dance   bool // toggles the dance loop
	Reset   bool
}

// Any reports whether a button was clicked.
func (a Actions) Any() bool { return a.Taco || a.Burrito || a.Dance || a.Reset }

const (
	buttonW   = 120
	buttonH   = 30
	buttonGap = 8
	margin    = 10
)

// buttonLayout returns the four button rectangles, stacked in the top
// right corner: taco, burrito, dance, reset.
func buttonLayout(screenW int32) [4]rl.Rectangle {
	var rects [4]rl.Rectangle
	x := float32(screenW) - buttonW - margin
	for i := range rects {
		rects[i] = rl.Rectangle{
			X:      x,
			Y:      float32(margin + i*(buttonH+buttonGap)),
			Width:  buttonW,
			Height: buttonH,
		}
	}
	return rects
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD text.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | FPS: %d", data.Tick, data.SimTime, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Max joint gap: %.1f px", data.MaxStretch),
		10, 55, 16, rl.LightGray,
	)

	// Status
	status := "Running"
	switch {
	case data.Paused:
		status = "PAUSED"
	case data.Dragging != "":
		status = "Holding " + data.Dragging
	case data.Singing:
		status = "Singing"
	case data.Dancing:
		status = "Dancing"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// Buttons draws the action buttons and reports which were clicked.
func (h *HUD) Buttons(screenW int32, dancing bool) Actions {
	rects := buttonLayout(screenW)
	danceText := "Dance"
	if dancing {
		danceText = "Stop"
	}
	return Actions{
		Taco:    gui.Button(rects[0], "Taco"),
		Burrito: gui.Button(rects[1], "Burrito"),
		Dance:   gui.Button(rects[2], danceText),
		Reset:   gui.Button(rects[3], "Reset"),
	}
}

// OverButtons reports whether a screen point lies on any button, so a
// click there does not also grab the figure.
func (h *HUD) OverButtons(screenW int32, x, y float32) bool {
	p := rl.Vector2{X: x, Y: y}
	for _, r := range buttonLayout(screenW) {
		if rl.CheckCollisionPointRec(p, r) {
			return true
		}
	}
	return false
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	slowest := stats.Slowest()
	for ph := telemetry.PhaseSchedule; ph < telemetry.NumPhases; ph++ {
		avg := stats.PhaseAvg[ph]
		pct := stats.PhasePct[ph]

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}
		marker := " "
		if ph == slowest && stats.Ticks > 0 {
			marker = "*"
		}

		rl.DrawText(
			fmt.Sprintf("%s%-10s %8s %5.1f%%", marker, ph, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
