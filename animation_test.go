package starfield

import (
	"math"
	"testing"
)

func TestSpinAdvances(t *testing.T) {
	s := NewSpin(math.Pi) // half a turn per second

	// Exact halves avoid float32 accumulation drift.
	s.Update(0.5)
	if math.Abs(s.Angle()-math.Pi/2) > 1e-4 {
		t.Errorf("angle = %f, want ~π/2", s.Angle())
	}
	s.Update(0.5)
	if math.Abs(s.Angle()-math.Pi) > 1e-4 {
		t.Errorf("angle = %f, want ~π", s.Angle())
	}
}

func TestSpinWrapsAfterRevolution(t *testing.T) {
	s := NewSpin(math.Pi)
	for i := 0; i < 4; i++ {
		s.Update(0.5)
	}
	// Exactly one revolution: the tween restarts at 0.
	if s.Angle() != 0 {
		t.Errorf("angle after a full turn = %f, want 0", s.Angle())
	}
	s.Update(0.5)
	if math.Abs(s.Angle()-math.Pi/2) > 1e-4 {
		t.Errorf("angle = %f, want ~π/2 into the second turn", s.Angle())
	}
}

func TestSpinStaysInRange(t *testing.T) {
	s := NewSpin(10 * math.Pi / 180)
	for i := 0; i < 60*100; i++ {
		s.Update(1.0 / 60)
		if a := s.Angle(); a < 0 || a >= 2*math.Pi+1e-4 {
			t.Fatalf("tick %d: angle %f out of [0, 2π)", i, a)
		}
	}
}

func TestSpinNegativeSpeed(t *testing.T) {
	s := NewSpin(-math.Pi)
	s.Update(0.5)
	if math.Abs(s.Angle()+math.Pi/2) > 1e-4 {
		t.Errorf("angle = %f, want ~-π/2", s.Angle())
	}
	if s.Speed() != -math.Pi {
		t.Errorf("Speed = %f, want -π", s.Speed())
	}
}

func TestSpinZeroSpeed(t *testing.T) {
	s := NewSpin(0)
	s.Update(10)
	if s.Angle() != 0 {
		t.Errorf("angle = %f, want 0 for a stationary spin", s.Angle())
	}
}
