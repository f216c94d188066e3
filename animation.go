package starfield

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Spin turns a star around its Z axis at a constant angular speed. One
// revolution is a linear gween tween that restarts when it completes, so the
// angle stays in [0, 2π) instead of growing without bound.
//
// There is no global animation manager; the Field updates each star's Spin.
type Spin struct {
	tween *gween.Tween
	angle float64
	speed float64
}

// NewSpin creates a Spin turning speed radians per second. A zero speed
// yields a Spin that never moves.
func NewSpin(speed float64) *Spin {
	s := &Spin{speed: speed}
	if speed != 0 {
		period := float32(2 * math.Pi / math.Abs(speed))
		s.tween = gween.New(0, float32(math.Copysign(2*math.Pi, speed)), period, ease.Linear)
	}
	return s
}

// Update advances the rotation by dt seconds.
func (s *Spin) Update(dt float32) {
	if s.tween == nil {
		return
	}
	val, finished := s.tween.Update(dt)
	if finished {
		s.tween.Reset()
		val = 0
	}
	s.angle = float64(val)
}

// Angle returns the current rotation in radians.
func (s *Spin) Angle() float64 {
	return s.angle
}

// Speed returns the angular speed in radians per second.
func (s *Spin) Speed() float64 {
	return s.speed
}
