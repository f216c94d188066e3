package starfield

import (
	"math"
	"math/rand/v2"
)

// Particle holds per-particle simulation state. Positions are relative to the
// owning star's center, in world units.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64 // remaining lifetime in seconds; <= 0 retires the particle on the next update
	MaxLife float64 // initial lifetime (for computing t)
	Scale   float32
	Color   Color

	startScale float32
	endScale   float32
}

// Emitter is the particle surface a Star drives during regeneration.
// ParticleEmitter is the stock implementation.
type Emitter interface {
	Start()
	Stop()
	SetRamp(ramp ColorRamp)
	// Update advances the simulation by dt seconds and retires particles
	// whose Life has run out.
	Update(dt float64)
	// Live returns the alive particles. The slice aliases the pool, so writes
	// to Life are seen by the next update.
	Live() []Particle
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int `yaml:"max_particles"`
	// EmitRate is the number of particles spawned per second.
	EmitRate float64 `yaml:"emit_rate"`
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range `yaml:"lifetime"`
	// Speed is the range of initial particle speeds in world units per second.
	Speed Range `yaml:"speed"`
	// Angle is the range of emission angles in radians.
	Angle Range `yaml:"angle"`
	// StartScale is the range of scale factors at birth, interpolated to EndScale over lifetime.
	StartScale Range `yaml:"start_scale"`
	// EndScale is the range of scale factors at death.
	EndScale Range `yaml:"end_scale"`
	// Gravity is the constant acceleration applied to all particles each frame.
	Gravity Vec2 `yaml:"gravity"`
}

// DefaultEmitterConfig returns the radial burst used for stars: particles
// leave the center in every direction and live long enough to reach the
// silhouette edge.
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		MaxParticles: 4000,
		EmitRate:     600,
		Lifetime:     Range{Min: 4, Max: 6},
		Speed:        Range{Min: 20, Max: 60},
		Angle:        Range{Min: 0, Max: 2 * math.Pi},
		StartScale:   Range{Min: 1.5, Max: 2.5},
		EndScale:     Range{Min: 0.5, Max: 1},
	}
}

// ParticleEmitter manages a pool of particles with CPU-based simulation.
// Colors follow the emitter's ColorRamp over each particle's lifetime.
type ParticleEmitter struct {
	config    EmitterConfig
	ramp      ColorRamp
	particles []Particle
	alive     int
	emitAccum float64
	active    bool
}

// NewParticleEmitter creates a ParticleEmitter with a preallocated pool.
func NewParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	return &ParticleEmitter{
		config:    cfg,
		ramp:      BuildRamp(0),
		particles: make([]Particle, max),
	}
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() {
	e.active = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *ParticleEmitter) Stop() {
	e.active = false
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool {
	return e.active
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig {
	return &e.config
}

// SetRamp replaces the color-over-lifetime ramp. Alive particles pick it up
// on the next update.
func (e *ParticleEmitter) SetRamp(ramp ColorRamp) {
	e.ramp = ramp
}

// Live returns the alive particles as a view into the pool.
func (e *ParticleEmitter) Live() []Particle {
	return e.particles[:e.alive]
}

// Update advances particle simulation by dt seconds.
func (e *ParticleEmitter) Update(dt float64) {
	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.Life -= dt
		if p.Life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.VX += gx
		p.VY += gy

		p.X += p.VX * dt
		p.Y += p.VY * dt

		t := 1.0 - p.Life/p.MaxLife
		p.Scale = lerp32(p.startScale, p.endScale, float32(t))
		p.Color = e.ramp.At(t)

		i++
	}

	if e.active && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			if e.alive < len(e.particles) {
				e.spawnParticle()
			}
		}
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *ParticleEmitter) spawnParticle() {
	p := &e.particles[e.alive]

	angle := e.config.Angle.Random()
	speed := e.config.Speed.Random()
	p.VX = math.Cos(angle) * speed
	p.VY = math.Sin(angle) * speed
	p.X = 0
	p.Y = 0

	p.Life = e.config.Lifetime.Random()
	if p.Life <= 0 {
		p.Life = 1.0
	}
	p.MaxLife = p.Life

	p.startScale = float32(e.config.StartScale.Random())
	p.endScale = float32(e.config.EndScale.Random())
	p.Scale = p.startScale
	p.Color = e.ramp.At(0)

	e.alive++
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerp32 linearly interpolates between a and b by t (float32).
func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
