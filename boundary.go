package starfield

import (
	"errors"
	"image"
	"image/color"
)

// ErrDegenerateMask is returned when a boundary source has no pixels.
var ErrDegenerateMask = errors.New("starfield: degenerate boundary mask")

// blockedThreshold is the red-channel level above which a cell is blocked,
// in the 16-bit non-premultiplied range of color.NRGBA64.
const blockedThreshold = 0xffff / 2

// BoundaryMask is a precomputed lookup grid marking the cells particles may
// not occupy. It is immutable once built; a star replaces its mask wholesale
// instead of editing cells, so readers always see a fully built grid.
type BoundaryMask struct {
	width   int
	height  int
	blocked []bool
	count   int
}

// NewBoundaryMask builds a mask from src. A cell is blocked iff the red
// channel of the corresponding pixel exceeds 0.5. Red is read straight, not
// premultiplied, so alpha never affects the result. Row 0 of the mask is the
// top row of the image.
func NewBoundaryMask(src image.Image) (*BoundaryMask, error) {
	if src == nil {
		return nil, ErrDegenerateMask
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrDegenerateMask
	}

	m := &BoundaryMask{
		width:   w,
		height:  h,
		blocked: make([]bool, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA64Model.Convert(src.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA64)
			if c.R > blockedThreshold {
				m.blocked[y*w+x] = true
				m.count++
			}
		}
	}
	return m, nil
}

// Width returns the mask width in cells.
func (m *BoundaryMask) Width() int { return m.width }

// Height returns the mask height in cells.
func (m *BoundaryMask) Height() int { return m.height }

// BlockedCount returns the number of blocked cells.
func (m *BoundaryMask) BlockedCount() int { return m.count }

// Blocked reports whether the cell at (x, y) is blocked. Coordinates outside
// the grid are clamped to the nearest edge cell.
func (m *BoundaryMask) Blocked(x, y int) bool {
	x = clampInt(x, 0, m.width-1)
	y = clampInt(y, 0, m.height-1)
	return m.blocked[y*m.width+x]
}

// clampInt constrains v to the inclusive [lo, hi] range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
