package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/background.fs
var backgroundFS string

// BackgroundRenderer fills the screen with a slowly shifting tint of one
// base colour.
type BackgroundRenderer struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	baseColorLoc  int32

	screenW, screenH float32
	base             rl.Color
	baseColor        [3]float32
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, base rl.Color) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
		base:    base,
		baseColor: [3]float32{
			float32(base.R) / 255.0,
			float32(base.G) / 255.0,
			float32(base.B) / 255.0,
		},
	}
}

// Init compiles the shader (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", backgroundFS)
	b.timeLoc = rl.GetShaderLocation(b.shader, "time")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")

	b.Resize(int32(b.screenW), int32(b.screenH))
	rl.SetShaderValue(b.shader, b.baseColorLoc, b.baseColor[:], rl.ShaderUniformVec3)

	b.initialized = true
}

// Resize updates the resolution uniform.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW, b.screenH = float32(screenW), float32(screenH)
	if b.shader.ID == 0 {
		return
	}
	resolution := []float32{b.screenW, b.screenH}
	rl.SetShaderValue(b.shader, b.resolutionLoc, resolution, rl.ShaderUniformVec2)
}

// Draw clears to the base colour and, if the shader compiled, draws the
// animated tint over it.
func (b *BackgroundRenderer) Draw(time float32) {
	if !b.initialized {
		b.Init()
	}

	rl.ClearBackground(b.base)
	if b.shader.ID == 0 {
		return
	}

	rl.SetShaderValue(b.shader, b.timeLoc, []float32{time}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
