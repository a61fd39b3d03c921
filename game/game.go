// Package game runs the ragdoll toy: the raylib window, input routing,
// telemetry, and a headless mode for scripted runs.
package game

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tacodoll/camera"
	"github.com/pthm-cable/tacodoll/config"
	"github.com/pthm-cable/tacodoll/inspector"
	"github.com/pthm-cable/tacodoll/puppet"
	"github.com/pthm-cable/tacodoll/renderer"
	"github.com/pthm-cable/tacodoll/telemetry"
	"github.com/pthm-cable/tacodoll/ui"
)

// Background colour behind the figure.
var backgroundColor = rl.Color{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	puppet *puppet.Controller
	camera *camera.Camera

	// Rendering, nil when headless
	background   *renderer.BackgroundRenderer
	textures     *renderer.TextureCache
	figure       *renderer.FigureRenderer
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel
	stretchPanel *ui.StretchPanel
	controls     *ui.ControlsPanel
	uiOverlays   *ui.OverlaySet
	inspector    *inspector.Inspector
	voice        *Voice

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string

	// State
	paused   bool
	headless bool
	realTime float64

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. In graphics mode the raylib window
// must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	g := &Game{
		cfg:              cfg,
		camera:           camera.New(cfg.Derived.ScreenW, cfg.Derived.ScreenH, cfg.Derived.ScreenW, cfg.Derived.ScreenH),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		headless:         opts.Headless,
		screenWidth:      float32(cfg.Derived.ScreenW),
		screenHeight:     float32(cfg.Derived.ScreenH),
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Physics.DT)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if g.snapshotDir == "" && om != nil {
		g.snapshotDir = filepath.Join(om.Dir(), "snapshots")
	}

	popts := puppet.Options{
		Seed:   opts.Seed,
		View:   g.camera,
		Events: g.collector,
		Phases: g.perfCollector,
	}
	if !opts.Headless {
		g.voice = NewVoice(cfg.Sounds, opts.AssetRoot)
		g.voice.Muted = opts.Muted
		popts.Voice = g.voice
	}

	g.puppet, err = puppet.New(cfg, popts)
	if err != nil {
		g.Unload()
		return nil, err
	}

	if opts.RestorePath != "" {
		snap, err := telemetry.LoadSnapshot(opts.RestorePath)
		if err != nil {
			g.Unload()
			return nil, err
		}
		n := g.puppet.Restore(snap)
		slog.Info("pose restored", "path", opts.RestorePath, "parts", n)
	}

	if !opts.Headless {
		g.initRendering(opts.AssetRoot)
	}
	return g, nil
}

func (g *Game) initRendering(assetRoot string) {
	g.background = renderer.NewBackgroundRenderer(int32(g.screenWidth), int32(g.screenHeight), backgroundColor)
	g.textures = renderer.NewTextureCache(assetRoot)
	g.figure = renderer.NewFigureRenderer(g.textures)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 110)
	g.stretchPanel = ui.NewStretchPanel(10, 110, 300)
	g.controls = ui.NewControlsPanel(320, 110, 220)
	g.uiOverlays = ui.NewOverlaySet()
	g.inspector = inspector.NewInspector(int32(g.screenWidth))

	paths := []string{g.cfg.Head.Opened, g.cfg.Head.Closed}
	for _, s := range g.cfg.Sprites {
		paths = append(paths, s.Texture)
	}
	g.textures.Preload(paths...)
	slog.Info("textures loaded", "count", g.textures.Len())
}

// Update handles input and advances the simulation by one tick unless
// paused.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	frame := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	g.realTime += float64(rl.GetFrameTime())
	if g.paused {
		return
	}
	g.step(frame)
}

// UpdateHeadless advances one tick on a virtual clock.
func (g *Game) UpdateHeadless() {
	g.step(g.cfg.Derived.Step)
}

// step runs one tick and its telemetry.
func (g *Game) step(elapsed time.Duration) {
	g.perfCollector.StartTick()
	g.puppet.Tick(elapsed)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(g.puppet.Sample())
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// Unload frees resources.
func (g *Game) Unload() {
	if g.background != nil {
		g.background.Unload()
	}
	if g.textures != nil {
		g.textures.Unload()
	}
	if g.voice != nil {
		g.voice.Unload()
		g.voice = nil
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.puppet.Ticks()
}

// Puppet returns the controller driven by the game.
func (g *Game) Puppet() *puppet.Controller {
	return g.puppet
}
