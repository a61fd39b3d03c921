// Package config provides configuration loading and access for the ragdoll toy.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig            `yaml:"screen"`
	Physics   PhysicsConfig           `yaml:"physics"`
	Ragdoll   RagdollConfig           `yaml:"ragdoll"`
	Drag      DragConfig              `yaml:"drag"`
	Sing      SingConfig              `yaml:"sing"`
	Dance     DanceConfig             `yaml:"dance"`
	Sprites   map[string]SpriteConfig `yaml:"sprites"`
	Head      HeadConfig              `yaml:"head"`
	Sounds    map[string]string       `yaml:"sounds"`
	Telemetry TelemetryConfig         `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// Vec is a 2D vector as written in YAML.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PhysicsConfig holds simulation parameters.
type PhysicsConfig struct {
	DT           float64      `yaml:"dt"`            // fixed step in seconds
	Gravity      Vec          `yaml:"gravity"`       // engine units
	GravityScale float64      `yaml:"gravity_scale"` // px/s² per engine unit
	Damping      float64      `yaml:"damping"`       // fraction of velocity kept per second
	Iterations   int          `yaml:"iterations"`
	Density      float64      `yaml:"density"` // mass per px²
	Friction     float64      `yaml:"friction"`
	Bounds       BoundsConfig `yaml:"bounds"`
}

// BoundsConfig controls the static walls around the viewport.
type BoundsConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Thickness float64 `yaml:"thickness"`
}

// RagdollConfig holds figure construction parameters.
type RagdollConfig struct {
	Scale      float64      `yaml:"scale"`
	Stiffness  float64      `yaml:"stiffness"`
	LimbRadius float64      `yaml:"limb_radius"` // corner radius for limbs, multiplied by scale
	Hanger     HangerConfig `yaml:"hanger"`
}

// HangerConfig describes the static anchor the head hangs from.
type HangerConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Y         float64 `yaml:"y"` // x is always the viewport centre
	AnchorA   Vec     `yaml:"anchor_a"`
	AnchorB   Vec     `yaml:"anchor_b"`
	Stiffness float64 `yaml:"stiffness"`
}

// DragConfig holds pointer drag parameters.
type DragConfig struct {
	MassMultiplier float64 `yaml:"mass_multiplier"`
	Margin         float64 `yaml:"margin"`
}

// SingConfig holds mouth sequences. Each entry is the delay in ms
// before the next mouth toggle; the sequence starts closed.
type SingConfig struct {
	Taco    []int `yaml:"taco"`
	Burrito []int `yaml:"burrito"`
}

// DanceConfig holds the dance loop parameters.
type DanceConfig struct {
	PeriodMin int      `yaml:"period_min"` // ms
	PeriodMax int      `yaml:"period_max"` // ms
	ChestKick float64  `yaml:"chest_kick"` // velocity change in px/s
	LimbKick  float64  `yaml:"limb_kick"`
	LimbLift  float64  `yaml:"limb_lift"`
	Parts     []string `yaml:"parts"`
}

// SpriteConfig maps one body label to its art.
type SpriteConfig struct {
	Texture string `yaml:"texture"`
	ZIndex  int    `yaml:"z_index"`
	Mirror  int    `yaml:"mirror"` // +1 or -1
}

// HeadConfig holds the two mouth textures.
type HeadConfig struct {
	Opened string `yaml:"opened"`
	Closed string `yaml:"closed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Step      time.Duration // Physics.DT as a duration
	GravityPx Vec           // Physics.Gravity * GravityScale
	ScreenW   float64
	ScreenH   float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Ragdoll.Scale <= 0 {
		return fmt.Errorf("ragdoll.scale must be positive, got %v", c.Ragdoll.Scale)
	}
	if c.Ragdoll.Stiffness <= 0 || c.Ragdoll.Stiffness > 1 {
		return fmt.Errorf("ragdoll.stiffness must be in (0, 1], got %v", c.Ragdoll.Stiffness)
	}
	if c.Drag.MassMultiplier <= 0 {
		return fmt.Errorf("drag.mass_multiplier must be positive, got %v", c.Drag.MassMultiplier)
	}
	if c.Dance.PeriodMin <= 0 || c.Dance.PeriodMax < c.Dance.PeriodMin {
		return fmt.Errorf("dance period range [%d, %d] is invalid", c.Dance.PeriodMin, c.Dance.PeriodMax)
	}
	for label, s := range c.Sprites {
		if s.Mirror != 1 && s.Mirror != -1 {
			return fmt.Errorf("sprites.%s.mirror must be 1 or -1, got %d", label, s.Mirror)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Step = time.Duration(c.Physics.DT * float64(time.Second))
	c.Derived.GravityPx = Vec{
		X: c.Physics.Gravity.X * c.Physics.GravityScale,
		Y: c.Physics.Gravity.Y * c.Physics.GravityScale,
	}
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
