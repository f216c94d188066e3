package starfield

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Emitter.MaxParticles = 200
	cfg.Emitter.EmitRate = 120
	cfg.FadeDuration = 50 * time.Millisecond
	cfg.Blob.Size = 32
	return cfg
}

func newTestField(t *testing.T, cfg Config, gen BoundaryGenerator) *Field {
	t.Helper()
	f, err := NewField(cfg, gen)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

// openGenerator returns masks with no blocked cells.
var openGenerator = GeneratorFunc(func(seed int32) (image.Image, error) {
	return maskImage(8, 8, func(x, y int) bool { return false }), nil
})

type sinkRecorder struct {
	events []StarEvent
}

func (s *sinkRecorder) EmitEvent(ev StarEvent) { s.events = append(s.events, ev) }

func TestNewFieldBuildsStars(t *testing.T) {
	cfg := testConfig()
	f := newTestField(t, cfg, nil)

	if len(f.Stars()) != len(cfg.Stars) {
		t.Fatalf("stars = %d, want %d", len(f.Stars()), len(cfg.Stars))
	}
	for i, s := range f.Stars() {
		if s.Index() != i {
			t.Errorf("star %d: Index = %d", i, s.Index())
		}
		if s.Seed() != cfg.Stars[i].Seed {
			t.Errorf("star %d: seed = %d, want %d", i, s.Seed(), cfg.Stars[i].Seed)
		}
		if s.Hue() != HueFor(cfg.Stars[i].Seed) {
			t.Errorf("star %d: hue = %v, want %v", i, s.Hue(), HueFor(cfg.Stars[i].Seed))
		}
		if s.Position() != cfg.Stars[i].Position {
			t.Errorf("star %d: position = %v, want %v", i, s.Position(), cfg.Stars[i].Position)
		}
		if s.Mask() == nil || s.Mask().Width() != cfg.Blob.Size {
			t.Errorf("star %d: mask not built from cfg.Blob", i)
		}
		if s.State() != StateIdle {
			t.Errorf("star %d: state = %v, want idle", i, s.State())
		}
	}
	if f.Dispatcher().Stars() != len(cfg.Stars) {
		t.Errorf("dispatcher covers %d stars, want %d", f.Dispatcher().Stars(), len(cfg.Stars))
	}
	if f.Star(-1) != nil || f.Star(len(cfg.Stars)) != nil {
		t.Error("Star out of range should return nil")
	}
}

func TestNewFieldInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Stars = nil
	if _, err := NewField(cfg, nil); err == nil {
		t.Error("expected error for a config without stars")
	}
}

func TestNewFieldGeneratorFailure(t *testing.T) {
	boom := errors.New("boom")
	gen := GeneratorFunc(func(int32) (image.Image, error) { return nil, boom })
	if _, err := NewField(testConfig(), gen); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestFieldRegenerationEndToEnd(t *testing.T) {
	cfg := testConfig()
	f := newTestField(t, cfg, nil)
	fade := int(cfg.FadeTicks())
	before := []int32{f.Star(0).Seed(), f.Star(2).Seed()}
	oldMask := f.Star(1).Mask()

	if err := f.Dispatcher().Submit(1, 42); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// Nothing happens until the loop drains the queue.
	if f.Star(1).State() != StateIdle {
		t.Fatal("Submit must not touch star state")
	}

	f.Update()
	if fade > 0 && f.Star(1).State() != StateFading {
		t.Fatalf("state = %v after first tick, want fading", f.Star(1).State())
	}
	for i := 0; i < fade; i++ {
		f.Update()
	}

	s := f.Star(1)
	if s.State() != StateIdle {
		t.Fatalf("state = %v after fade, want idle", s.State())
	}
	if s.Seed() != 42 {
		t.Errorf("seed = %d, want 42", s.Seed())
	}
	if s.Hue() != Derive(42, 0) {
		t.Errorf("hue = %v, want Derive(42, 0) = %v", s.Hue(), Derive(42, 0))
	}
	if s.Mask() == oldMask {
		t.Error("mask should have been replaced")
	}
	if f.Star(0).Seed() != before[0] || f.Star(2).Seed() != before[1] {
		t.Error("other stars must not change")
	}
}

func TestFieldEmissionStopsWhileFading(t *testing.T) {
	cfg := testConfig()
	cfg.FadeDuration = time.Second
	f := newTestField(t, cfg, openGenerator)
	em := f.Star(0).Emitter().(*ParticleEmitter)

	f.Update()
	if !em.IsActive() {
		t.Fatal("emitter should be active while idle")
	}
	_ = f.Dispatcher().Submit(0, 9)
	f.Update()
	if em.IsActive() {
		t.Error("emitter should stop once fading starts")
	}
}

func TestFieldInvalidIndexIsDropped(t *testing.T) {
	f := newTestField(t, testConfig(), nil)
	seeds := make([]int32, len(f.Stars()))
	for i, s := range f.Stars() {
		seeds[i] = s.Seed()
	}

	if err := f.Dispatcher().Submit(99, 42); !errors.Is(err, ErrInvalidStar) {
		t.Fatalf("Submit(99) err = %v, want ErrInvalidStar", err)
	}
	for i := 0; i < 10; i++ {
		f.Update()
	}
	for i, s := range f.Stars() {
		if s.Seed() != seeds[i] || s.State() != StateIdle {
			t.Errorf("star %d changed after an invalid request", i)
		}
	}
}

func TestFieldIndependentStarsSameTick(t *testing.T) {
	cfg := testConfig()
	cfg.FadeDuration = 0
	f := newTestField(t, cfg, openGenerator)

	_ = f.Dispatcher().Submit(0, 100)
	_ = f.Dispatcher().Submit(2, 200)
	f.Update()

	if f.Star(0).Seed() != 100 || f.Star(2).Seed() != 200 {
		t.Errorf("seeds = %d, %d, want 100, 200", f.Star(0).Seed(), f.Star(2).Seed())
	}
	if f.Star(1).Seed() != cfg.Stars[1].Seed {
		t.Error("star 1 should be untouched")
	}
}

func TestFieldLastRequestWins(t *testing.T) {
	cfg := testConfig()
	f := newTestField(t, cfg, openGenerator)

	_ = f.Dispatcher().Submit(0, 1)
	_ = f.Dispatcher().Submit(0, 2)
	_ = f.Dispatcher().Submit(0, 3)
	for i := 0; i <= int(cfg.FadeTicks()); i++ {
		f.Update()
	}
	if f.Star(0).Seed() != 3 {
		t.Errorf("seed = %d, want 3 (last request)", f.Star(0).Seed())
	}
}

func TestFieldContainmentRetiresBlockedParticles(t *testing.T) {
	cfg := testConfig()
	cfg.CheckInterval = 5
	blocked := GeneratorFunc(func(int32) (image.Image, error) {
		return maskImage(4, 4, func(x, y int) bool { return true }), nil
	})
	f := newTestField(t, cfg, blocked)
	live := func() []Particle { return f.Star(0).Emitter().Live() }

	for i := 0; i < 4; i++ {
		f.Update()
	}
	if len(live()) == 0 {
		t.Fatal("expected particles before the first containment pass")
	}
	for _, p := range live() {
		if p.Life <= 0 {
			t.Fatal("no pass has run yet; no particle should be retired")
		}
	}

	f.Update() // tick 5: containment pass
	for _, p := range live() {
		if p.Life != 0 {
			t.Fatalf("particle survived a pass on a fully blocked mask: %+v", p)
		}
	}
}

func TestFieldEventSink(t *testing.T) {
	cfg := testConfig()
	cfg.FadeDuration = 0
	f := newTestField(t, cfg, openGenerator)
	sink := &sinkRecorder{}
	f.SetEventSink(sink)

	_ = f.Dispatcher().Submit(1, 5)
	f.Update()

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	if sink.events[0].Type != EventRegenerationStarted || sink.events[1].Type != EventRegenerationApplied {
		t.Errorf("event types = %v, %v", sink.events[0].Type, sink.events[1].Type)
	}
	if sink.events[1].Star != 1 || sink.events[1].Seed != 5 || sink.events[1].Tick != f.Tick() {
		t.Errorf("applied event = %+v", sink.events[1])
	}
}

func TestFieldFailureKeepsStar(t *testing.T) {
	cfg := testConfig()
	cfg.FadeDuration = 0
	gen := GeneratorFunc(func(seed int32) (image.Image, error) {
		if seed == 13 {
			return nil, errors.New("unlucky")
		}
		return maskImage(8, 8, func(x, y int) bool { return false }), nil
	})
	f := newTestField(t, cfg, gen)
	oldMask := f.Star(0).Mask()

	_ = f.Dispatcher().Submit(0, 13)
	f.Update()

	s := f.Star(0)
	if s.Seed() != cfg.Stars[0].Seed || s.Mask() != oldMask || s.State() != StateIdle {
		t.Errorf("star changed after a failed regeneration: seed %d state %v", s.Seed(), s.State())
	}
}

func TestFieldTickAndRotation(t *testing.T) {
	f := newTestField(t, testConfig(), openGenerator)
	for i := 0; i < 30; i++ {
		f.Update()
	}
	if f.Tick() != 30 {
		t.Errorf("Tick = %d, want 30", f.Tick())
	}
	if f.Star(0).Rotation() <= 0 {
		t.Error("stars should spin with the default spin speed")
	}
}

func TestFieldRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.TPS = 200
	f := newTestField(t, cfg, openGenerator)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := f.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f.Tick() == 0 {
		t.Error("Run should have ticked at least once")
	}
}

func TestFieldScriptDrivesRequests(t *testing.T) {
	cfg := testConfig()
	cfg.FadeDuration = 0
	f := newTestField(t, cfg, openGenerator)

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "ticks": 2},
		{"action": "regenerate", "star": 2, "seed": 77}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	f.SetScript(runner)

	f.Update()
	f.Update()
	if f.Star(2).Seed() == 77 {
		t.Fatal("request applied before the wait elapsed")
	}
	f.Update()
	if f.Star(2).Seed() != 77 {
		t.Errorf("seed = %d, want 77", f.Star(2).Seed())
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func BenchmarkFieldUpdate(b *testing.B) {
	cfg := DefaultConfig()
	f, err := NewField(cfg, nil)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 300; i++ {
		f.Update()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Update()
	}
}
