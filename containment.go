package starfield

import "math"

// DefaultCheckInterval is the number of ticks between containment passes.
const DefaultCheckInterval = 5

// Containment retires particles that drift onto blocked boundary cells.
//
// Passes are sampled: only every Interval-th call to Step touches particles.
// Particles move slowly relative to the interval, so exact per-frame clipping
// is unnecessary and the O(alive) cost is amortized.
type Containment struct {
	// Interval is the sampling period in ticks. Values below 1 mean 1.
	Interval int
	// Extent is the world-space size covered by the mask, centered on the star.
	Extent Vec2

	counter uint64
}

// Step advances the sampling counter and, on a sampled tick, sets Life to 0
// for every particle whose mask cell is blocked. It reports whether the pass
// ran and how many particles it retired. A nil mask retires nothing.
func (c *Containment) Step(mask *BoundaryMask, particles []Particle) (ran bool, killed int) {
	c.counter++
	interval := uint64(c.Interval)
	if interval == 0 {
		interval = 1
	}
	if c.counter%interval != 0 {
		return false, 0
	}
	if mask == nil {
		return true, 0
	}

	for i := range particles {
		p := &particles[i]
		if p.Life <= 0 {
			continue
		}
		gx, gy := MaskCoord(p.X, p.Y, c.Extent, mask.width, mask.height)
		if mask.Blocked(gx, gy) {
			p.Life = 0
			killed++
		}
	}
	return true, killed
}

// Ticks returns how many times Step has been called.
func (c *Containment) Ticks() uint64 {
	return c.counter
}

// MaskCoord maps a star-relative world position to mask cell coordinates:
// gx = clamp(round((x + W/2) / W * maskW), 0, maskW-1), likewise for y.
// Halves round to even.
func MaskCoord(x, y float64, extent Vec2, maskW, maskH int) (gx, gy int) {
	gx = cellIndex((x+extent.X/2)/extent.X*float64(maskW), maskW)
	gy = cellIndex((y+extent.Y/2)/extent.Y*float64(maskH), maskH)
	return gx, gy
}

// cellIndex rounds v and clamps it to [0, n-1] before the int conversion, so
// infinities and huge values land on the nearest edge. NaN maps to 0.
func cellIndex(v float64, n int) int {
	v = math.RoundToEven(v)
	if !(v > 0) {
		return 0
	}
	if hi := float64(n - 1); v > hi {
		return n - 1
	}
	return int(v)
}
