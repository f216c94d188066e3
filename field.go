package starfield

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Field is the top-level object that owns the stars, the request queue, and
// the tick loop. Everything except Dispatcher().Submit runs on a single loop
// goroutine: either Ebitengine's Update (see Run) or Field.Run for headless
// use.
type Field struct {
	stars      []*Star
	queue      *RequestQueue
	dispatcher *Dispatcher
	sink       EventSink
	script     *ScriptRunner
	debug      bool
	dumpDir    string

	tick uint64
	tps  int
	dt   float64

	// Render state
	ClearColor   Color
	particleSize float64
	blend        BlendMode
	verts        []ebiten.Vertex
	inds         []uint32
}

// NewField builds every configured star with gen and returns a field ready
// to tick. All stars have a mask and ramp before NewField returns, so
// requests can be accepted as soon as a listener is started.
func NewField(cfg Config, gen BoundaryGenerator) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gen == nil {
		gen = cfg.Blob
	}

	queue := &RequestQueue{}
	f := &Field{
		queue:        queue,
		dispatcher:   NewDispatcher(queue, len(cfg.Stars)),
		tps:          cfg.TPS,
		dt:           1.0 / float64(cfg.TPS),
		ClearColor:   cfg.Render.Background,
		particleSize: cfg.Render.ParticleSize,
		blend:        cfg.Render.blendMode(),
		dumpDir:      cfg.MaskDumpDir,
	}

	spin := cfg.SpinDegrees * math.Pi / 180
	for i, sc := range cfg.Stars {
		em := NewParticleEmitter(cfg.Emitter)
		star, err := NewStar(i, StarOptions{
			Seed:          sc.Seed,
			Position:      sc.Position,
			Emitter:       em,
			Generator:     gen,
			CheckInterval: cfg.CheckInterval,
			Extent:        cfg.Extent,
			FadeTicks:     cfg.FadeTicks(),
			SpinSpeed:     spin,
		})
		if err != nil {
			return nil, fmt.Errorf("new field: %w", err)
		}
		star.emit = f.emitEvent
		f.stars = append(f.stars, star)
		Logger().Info("star loaded", "star", i, "seed", sc.Seed, "hue", star.Hue())
	}
	return f, nil
}

// Stars returns the field's stars. The returned slice MUST NOT be mutated.
func (f *Field) Stars() []*Star {
	return f.stars
}

// Star returns the star at index i, or nil if i is out of range.
func (f *Field) Star(i int) *Star {
	if i < 0 || i >= len(f.stars) {
		return nil
	}
	return f.stars[i]
}

// Dispatcher returns the goroutine-safe entry point for regeneration requests.
func (f *Field) Dispatcher() *Dispatcher {
	return f.dispatcher
}

// Tick returns the number of completed Update calls.
func (f *Field) Tick() uint64 {
	return f.tick
}

// TPS returns the tick rate the field simulates at.
func (f *Field) TPS() int {
	return f.tps
}

// SetEventSink sets the optional lifecycle bridge.
func (f *Field) SetEventSink(sink EventSink) {
	f.sink = sink
}

// SetDebugMode enables or disables per-tick stats logging at debug level.
func (f *Field) SetDebugMode(enabled bool) {
	f.debug = enabled
}

// SetScript attaches a ScriptRunner. Its steps run at the start of each tick.
func (f *Field) SetScript(runner *ScriptRunner) {
	f.script = runner
}

// Update advances the field by one tick: run the script, apply queued
// requests in receipt order, advance each star's regeneration state machine,
// simulate particles, and run sampled containment.
func (f *Field) Update() {
	var stats tickStats
	var t0 time.Time
	if f.debug {
		t0 = time.Now()
	}

	f.tick++
	stats.tick = f.tick

	if f.script != nil {
		f.script.step(f)
	}

	for _, req := range f.queue.Drain() {
		star := f.Star(req.Star)
		if star == nil {
			Logger().Warn("dropping queued request for unknown star", "star", req.Star)
			continue
		}
		star.Regenerate(req.Seed, f.tick)
		stats.applied++
	}

	for _, s := range f.stars {
		s.advance(f.tick)
		s.emitter.Update(f.dt)
		s.spin.Update(float32(f.dt))
		ran, killed := s.contain()
		if ran {
			stats.containmentPasses++
		}
		stats.killed += killed
		stats.alive += len(s.emitter.Live())
	}

	if f.debug {
		stats.duration = time.Since(t0)
		f.debugLog(stats)
	}
}

// Run drives Update at the field's TPS until ctx is done. It is the headless
// counterpart of the windowed Run function.
func (f *Field) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(f.tps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			f.Update()
		}
	}
}

func (f *Field) emitEvent(ev StarEvent) {
	if ev.Type == EventRegenerationApplied {
		if s := f.Star(ev.Star); s != nil {
			f.onApplied(s)
		}
	}
	if f.sink != nil {
		f.sink.EmitEvent(ev)
	}
}
