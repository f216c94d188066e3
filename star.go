package starfield

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// StarOptions configures a Star at construction.
type StarOptions struct {
	// Seed is the initial seed; its mask and ramp are built before NewStar returns.
	Seed int32
	// Position is the star's center in screen space.
	Position Vec2
	// Emitter receives Start/Stop/SetRamp calls. Required.
	Emitter Emitter
	// Generator produces boundary images. Required.
	Generator BoundaryGenerator
	// CheckInterval is the containment sampling period in ticks.
	CheckInterval int
	// Extent is the world-space size the mask covers around the star center.
	Extent Vec2
	// FadeTicks is how long the star waits, in ticks, between stopping
	// emission and rebuilding.
	FadeTicks uint64
	// SpinSpeed is the Z rotation speed in radians per second.
	SpinSpeed float64
}

// Star is one independently seeded particle emitter with its own boundary
// mask and color ramp. All methods except Mask must be called from the loop
// goroutine that drives the owning Field.
type Star struct {
	index    int
	position Vec2

	emitter     Emitter
	generator   BoundaryGenerator
	containment Containment
	spin        *Spin
	fadeTicks   uint64

	// mask is replaced wholesale; a containment pass that loaded the previous
	// pointer finishes against that complete grid.
	mask atomic.Pointer[BoundaryMask]

	seed  int32
	hue   float32
	ramp  ColorRamp
	state StarState

	targetSeed int32  // seed the in-flight sequence will build
	deadline   uint64 // tick at which Fading ends
	parked     bool   // a request arrived while Rebuilding
	parkedSeed int32

	emit func(StarEvent)
}

// NewStar builds a star's initial mask and ramp from opts.Seed and starts
// emission. It fails if the initial boundary cannot be generated, so a Star
// never exists without a mask.
func NewStar(index int, opts StarOptions) (*Star, error) {
	if opts.Emitter == nil {
		return nil, errors.New("starfield: star needs an emitter")
	}
	if opts.Generator == nil {
		return nil, errors.New("starfield: star needs a boundary generator")
	}
	s := &Star{
		index:     index,
		position:  opts.Position,
		emitter:   opts.Emitter,
		generator: opts.Generator,
		containment: Containment{
			Interval: opts.CheckInterval,
			Extent:   opts.Extent,
		},
		spin:      NewSpin(opts.SpinSpeed),
		fadeTicks: opts.FadeTicks,
	}
	mask, err := s.buildMask(opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("star %d: initial boundary: %w", index, err)
	}
	s.apply(opts.Seed, mask)
	s.emitter.Start()
	return s, nil
}

// Index returns the star's identity.
func (s *Star) Index() int { return s.index }

// Position returns the star's center in screen space.
func (s *Star) Position() Vec2 { return s.position }

// Seed returns the seed the current mask and ramp were built from.
func (s *Star) Seed() int32 { return s.seed }

// Hue returns the current hue in [0, 1).
func (s *Star) Hue() float32 { return s.hue }

// Ramp returns the current color ramp.
func (s *Star) Ramp() ColorRamp { return s.ramp }

// State returns the regeneration state.
func (s *Star) State() StarState { return s.state }

// Emitter returns the star's particle emitter.
func (s *Star) Emitter() Emitter { return s.emitter }

// Rotation returns the star's current Z rotation in radians.
func (s *Star) Rotation() float64 { return s.spin.Angle() }

// Mask returns the currently published boundary mask. Safe from any goroutine.
func (s *Star) Mask() *BoundaryMask { return s.mask.Load() }

// PendingSeed returns the seed an in-flight or parked sequence will build,
// and whether there is one.
func (s *Star) PendingSeed() (int32, bool) {
	switch {
	case s.state == StateRebuilding && s.parked:
		return s.parkedSeed, true
	case s.state != StateIdle:
		return s.targetSeed, true
	default:
		return 0, false
	}
}

// Regenerate requests a rebuild with seed at tick now. From Idle the star
// stops emitting and starts fading; it reports true. While Fading the new
// seed replaces the pending one without extending the fade. While
// Rebuilding the seed is parked and starts a fresh sequence once the star is
// Idle again. Only the latest request wins in both cases.
func (s *Star) Regenerate(seed int32, now uint64) bool {
	switch s.state {
	case StateFading:
		Logger().Info("regeneration superseded",
			"star", s.index, "old_seed", s.targetSeed, "new_seed", seed)
		s.targetSeed = seed
		s.notify(EventRegenerationSuperseded, seed, now, nil)
		return false
	case StateRebuilding:
		Logger().Info("regeneration parked", "star", s.index, "seed", seed)
		s.parked = true
		s.parkedSeed = seed
		s.notify(EventRegenerationSuperseded, seed, now, nil)
		return false
	}

	s.emitter.Stop()
	s.state = StateFading
	s.targetSeed = seed
	s.parked = false
	s.deadline = now + s.fadeTicks
	Logger().Info("regeneration started",
		"star", s.index, "seed", seed, "deadline_tick", s.deadline)
	s.notify(EventRegenerationStarted, seed, now, nil)
	return true
}

// advance runs the time-driven transitions for tick now.
func (s *Star) advance(now uint64) {
	switch s.state {
	case StateFading:
		if now >= s.deadline {
			s.rebuild(now)
		}
	case StateIdle:
		if s.parked {
			s.parked = false
			s.Regenerate(s.parkedSeed, now)
		}
	}
}

// rebuild performs Rebuilding -> Idle. On failure the previous mask, hue and
// ramp stay in place.
func (s *Star) rebuild(now uint64) {
	s.state = StateRebuilding
	seed := s.targetSeed

	mask, err := s.buildMask(seed)
	if err != nil {
		Logger().Warn("regeneration failed",
			"star", s.index, "seed", seed, "keep_seed", s.seed, "error", err)
		s.state = StateIdle
		s.emitter.Start()
		s.notify(EventRegenerationFailed, seed, now, err)
		return
	}

	s.apply(seed, mask)
	s.state = StateIdle
	s.emitter.Start()
	Logger().Info("regeneration applied",
		"star", s.index, "seed", seed, "hue", s.hue,
		"mask_w", mask.Width(), "mask_h", mask.Height(), "blocked", mask.BlockedCount())
	s.notify(EventRegenerationApplied, seed, now, nil)
}

// buildMask asks the generator for seed's boundary and builds the lookup grid.
func (s *Star) buildMask(seed int32) (*BoundaryMask, error) {
	img, err := s.generator.Generate(seed)
	if err != nil {
		return nil, fmt.Errorf("generate seed %d: %w", seed, err)
	}
	mask, err := NewBoundaryMask(img)
	if err != nil {
		return nil, fmt.Errorf("build mask for seed %d: %w", seed, err)
	}
	return mask, nil
}

// apply publishes mask and the ramp derived from seed.
func (s *Star) apply(seed int32, mask *BoundaryMask) {
	s.hue = HueFor(seed)
	s.ramp = BuildRamp(s.hue)
	s.emitter.SetRamp(s.ramp)
	s.mask.Store(mask)
	s.seed = seed
}

// contain runs one sampled containment step against the published mask.
func (s *Star) contain() (ran bool, killed int) {
	return s.containment.Step(s.mask.Load(), s.emitter.Live())
}

func (s *Star) notify(typ EventType, seed int32, now uint64, err error) {
	if s.emit == nil {
		return
	}
	s.emit(StarEvent{
		Type:  typ,
		Star:  s.index,
		Seed:  seed,
		Hue:   s.hue,
		Tick:  now,
		State: s.state,
		Err:   err,
	})
}
