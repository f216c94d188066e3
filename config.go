package starfield

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level starfield configuration, usually loaded from YAML.
type Config struct {
	// Listen is the loopback address of the regeneration endpoint.
	Listen string `yaml:"listen"`
	// TPS is the simulation rate in ticks per second.
	TPS int `yaml:"tps"`
	// CheckInterval is the containment sampling period in ticks.
	CheckInterval int `yaml:"check_interval"`
	// FadeDuration is how long a star fades before it is rebuilt.
	FadeDuration time.Duration `yaml:"fade_duration"`
	// Extent is the world-space size each boundary mask covers.
	Extent Vec2 `yaml:"extent"`
	// SpinDegrees is the Z rotation speed of every star in degrees per second.
	SpinDegrees float64 `yaml:"spin_degrees"`

	Stars   []StarConfig  `yaml:"stars"`
	Emitter EmitterConfig `yaml:"emitter"`
	Blob    BlobGenerator `yaml:"blob"`
	Render  RenderConfig  `yaml:"render"`
	Window  WindowConfig  `yaml:"window"`

	LogLevel string `yaml:"log_level"` // debug | info | warn | error
	Debug    bool   `yaml:"debug"`
	// MaskDumpDir, when set, receives a PNG of every newly applied mask.
	MaskDumpDir string `yaml:"mask_dump_dir"`
}

// StarConfig sets one star's initial seed and screen position.
type StarConfig struct {
	Seed     int32 `yaml:"seed"`
	Position Vec2  `yaml:"position"`
}

// RenderConfig controls how particles are drawn.
type RenderConfig struct {
	// ParticleSize is the quad edge length in pixels at scale 1.
	ParticleSize float64 `yaml:"particle_size"`
	// Blend is "add" (default), "screen" or "normal".
	Blend      string `yaml:"blend"`
	Background Color  `yaml:"background"`
}

// WindowConfig controls the Ebitengine window. Headless runs the field on a
// ticker without opening a window.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	ShowFPS  bool   `yaml:"show_fps"`
	Headless bool   `yaml:"headless"`
}

// DefaultConfig returns three stars side by side on an 800×600 window,
// listening on 127.0.0.1:8080.
func DefaultConfig() Config {
	return Config{
		Listen:        "127.0.0.1:8080",
		TPS:           60,
		CheckInterval: DefaultCheckInterval,
		FadeDuration:  10 * time.Second,
		Extent:        Vec2{X: 220, Y: 220},
		SpinDegrees:   10,
		Stars: []StarConfig{
			{Seed: 1, Position: Vec2{X: 150, Y: 300}},
			{Seed: 2, Position: Vec2{X: 400, Y: 300}},
			{Seed: 3, Position: Vec2{X: 650, Y: 300}},
		},
		Emitter: DefaultEmitterConfig(),
		Blob:    DefaultBlobGenerator(),
		Render: RenderConfig{
			ParticleSize: 2,
			Blend:        "add",
			Background:   Color{R: 0.01, G: 0.01, B: 0.03, A: 1},
		},
		Window: WindowConfig{
			Title:  "Starfield",
			Width:  800,
			Height: 600,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates it.
// Keys absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting, joined into one error.
func (c Config) Validate() error {
	var errs []error
	if err := checkLoopback(c.Listen); err != nil {
		errs = append(errs, err)
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.CheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("check_interval must be positive, got %d", c.CheckInterval))
	}
	if c.FadeDuration < 0 {
		errs = append(errs, fmt.Errorf("fade_duration must not be negative, got %v", c.FadeDuration))
	}
	if c.Extent.X <= 0 || c.Extent.Y <= 0 {
		errs = append(errs, fmt.Errorf("extent must be positive, got %vx%v", c.Extent.X, c.Extent.Y))
	}
	if len(c.Stars) == 0 {
		errs = append(errs, errors.New("at least one star is required"))
	}
	if _, err := parseBlend(c.Render.Blend); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FadeTicks converts FadeDuration to ticks, rounding up.
func (c Config) FadeTicks() uint64 {
	return uint64(math.Ceil(c.FadeDuration.Seconds() * float64(c.TPS)))
}

// SlogLevel returns the configured log level. Unknown names map to info.
func (c Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func (r RenderConfig) blendMode() BlendMode {
	b, _ := parseBlend(r.Blend)
	return b
}

func parseBlend(s string) (BlendMode, error) {
	switch strings.ToLower(s) {
	case "", "add":
		return BlendAdd, nil
	case "screen":
		return BlendScreen, nil
	case "normal":
		return BlendNormal, nil
	default:
		return BlendAdd, fmt.Errorf("unknown blend mode %q", s)
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// checkLoopback requires addr to be host:port with a loopback host.
func checkLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("listen %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("listen %q: host must be a loopback address", addr)
	}
	return nil
}
