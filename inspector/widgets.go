package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	colorBarOK   = rl.Color{R: 100, G: 180, B: 100, A: 255}
	colorBarHigh = rl.Color{R: 180, G: 80, B: 80, A: 255}
	colorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	colorDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	colorDialBg  = rl.Color{R: 50, G: 50, B: 60, A: 255}
	colorNeedle  = rl.Color{R: 255, G: 200, B: 100, A: 255}
	colorFlagOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	colorFlagOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const (
	valueX     = 80 // value column, relative to the row
	textHeight = 20
	flagHeight = 18
	dialSize   = 40
	gapHeight  = 16 // one bar per joint
	gapBarW    = 120

	// gapFullBar is the joint separation, in px, that fills a gap bar.
	gapFullBar = 20.0
)

// rowHeight is the height drawRow uses for r.
func rowHeight(r Row) int32 {
	switch r.Kind {
	case rowAngle:
		return dialSize + 4
	case rowFlag:
		return flagHeight
	case rowGaps:
		if len(r.Gaps) == 0 {
			return textHeight
		}
		return 18 + int32(len(r.Gaps))*gapHeight + 2
	default:
		return textHeight
	}
}

// rowsHeight is the total height of rows.
func rowsHeight(rows []Row) int32 {
	var h int32
	for _, r := range rows {
		h += rowHeight(r)
	}
	return h
}

// drawRow draws r at (x, y) and returns its height.
func drawRow(x, y int32, r Row) int32 {
	switch r.Kind {
	case rowAngle:
		drawDial(x, y, r.Name, r.Angle)
	case rowFlag:
		drawFlag(x, y, r.Name, r.On)
	case rowGaps:
		drawGaps(x, y, r.Name, r.Gaps)
	default:
		rl.DrawText(r.Name, x, y, 14, colorDim)
		rl.DrawText(r.Text, x+valueX, y, 16, colorText)
	}
	return rowHeight(r)
}

// drawDial shows an angle as a needle, 0 pointing right and positive
// angles turning clockwise on screen.
func drawDial(x, y int32, name string, radians float64) {
	cx := x + valueX + dialSize/2
	cy := y + dialSize/2
	r := float32(dialSize / 2)

	rl.DrawText(name, x, cy-7, 14, colorDim)
	rl.DrawCircle(cx, cy, r, colorDialBg)
	rl.DrawCircleLines(cx, cy, r, colorDim)

	needle := float64(r - 4)
	end := rl.Vector2{
		X: float32(float64(cx) + needle*math.Cos(radians)),
		Y: float32(float64(cy) + needle*math.Sin(radians)),
	}
	rl.DrawLineEx(rl.Vector2{X: float32(cx), Y: float32(cy)}, end, 2, colorNeedle)

	deg := math.Mod(radians*180/math.Pi, 360)
	rl.DrawText(fmt.Sprintf("%.0f deg", deg), x+valueX+dialSize+6, cy-7, 14, colorDim)
}

func drawFlag(x, y int32, name string, on bool) {
	rl.DrawText(name, x, y, 14, colorDim)
	color, text := colorFlagOff, "no"
	if on {
		color, text = colorFlagOn, "yes"
	}
	rl.DrawRectangle(x+valueX, y, 14, 14, color)
	rl.DrawText(text, x+valueX+19, y, 14, color)
}

// drawGaps draws one bar per joint, named by the body on its far side.
// The bar turns from green to red as the gap approaches gapFullBar.
func drawGaps(x, y int32, name string, gaps []JointGap) {
	rl.DrawText(name, x, y, 14, colorDim)
	if len(gaps) == 0 {
		rl.DrawText("none", x+valueX, y, 14, colorDim)
		return
	}
	y += 18
	for _, g := range gaps {
		ratio := gapRatio(g.Gap)
		rl.DrawText(g.Other.String(), x+8, y, 10, colorDim)
		rl.DrawRectangle(x+valueX, y, gapBarW, 12, colorBarBg)
		rl.DrawRectangle(x+valueX, y, int32(gapBarW*ratio), 12, lerpColor(colorBarOK, colorBarHigh, float32(ratio)))
		rl.DrawText(fmt.Sprintf("%.1f px", g.Gap), x+valueX+gapBarW+6, y, 10, colorDim)
		y += gapHeight
	}
}

// gapRatio maps a gap onto 0..1 of a full bar.
func gapRatio(gap float64) float64 {
	return math.Max(0, math.Min(1, gap/gapFullBar))
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
