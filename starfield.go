package starfield

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorWhite is the default tint (no color modification).
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is opaque black, the color every star ramp fades to.
	ColorBlack = Color{0, 0, 0, 1}
)

// toRGBA converts to a premultiplied color.RGBA for image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, extents and velocities.
type Vec2 struct {
	X, Y float64
}

// Range is a general-purpose min/max range.
// Used by EmitterConfig for per-particle randomized values.
type Range struct {
	Min, Max float64
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// StarState is the regeneration lifecycle state of a Star.
type StarState uint8

const (
	StateIdle       StarState = iota // emitting, no regeneration in flight
	StateFading                      // emission stopped, waiting for live particles to age out
	StateRebuilding                  // recomputing mask and color ramp for the new seed
)

func (s StarState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFading:
		return "fading"
	case StateRebuilding:
		return "rebuilding"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of star lifecycle event.
type EventType uint8

const (
	EventRegenerationStarted    EventType = iota // Idle -> Fading
	EventRegenerationSuperseded                  // a newer seed replaced the pending one
	EventRegenerationApplied                     // mask and ramp rebuilt, emission resumed
	EventRegenerationFailed                      // generator failed; previous mask kept
)

func (t EventType) String() string {
	switch t {
	case EventRegenerationStarted:
		return "started"
	case EventRegenerationSuperseded:
		return "superseded"
	case EventRegenerationApplied:
		return "applied"
	case EventRegenerationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StarEvent carries lifecycle data for the optional event bridge.
type StarEvent struct {
	Type  EventType
	Star  int
	Seed  int32
	Hue   float32
	Tick  uint64
	State StarState
	Err   error // set for EventRegenerationFailed
}

// EventSink is the interface for optional lifecycle integration (ECS, metrics).
// EmitEvent is always called on the loop goroutine.
type EventSink interface {
	EmitEvent(event StarEvent)
}
