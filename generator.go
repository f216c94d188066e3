package starfield

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/vector"
)

// BoundaryGenerator produces the boundary source image for a seed. Pixels
// whose red channel exceeds 0.5 are blocked; the rest form the silhouette.
type BoundaryGenerator interface {
	Generate(seed int32) (image.Image, error)
}

// GeneratorFunc adapts a function to BoundaryGenerator.
type GeneratorFunc func(seed int32) (image.Image, error)

// Generate calls f(seed).
func (f GeneratorFunc) Generate(seed int32) (image.Image, error) {
	return f(seed)
}

// BlobGenerator rasterizes a smooth, seed-shaped blob. The blob interior is
// black (open) and everything outside it white (blocked). Radii come from
// Derive, so the shape for a seed is stable across runs and agrees with the
// star's hue derivation.
type BlobGenerator struct {
	// Size is the width and height of the generated image in pixels.
	Size int `yaml:"size"`
	// Lobes is the number of radius samples around the blob.
	Lobes int `yaml:"lobes"`
	// MinRadius and MaxRadius bound each sample as a fraction of Size/2.
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

// DefaultBlobGenerator returns a 128×128 generator with eight lobes.
func DefaultBlobGenerator() BlobGenerator {
	return BlobGenerator{Size: 128, Lobes: 8, MinRadius: 0.45, MaxRadius: 0.95}
}

// Generate implements BoundaryGenerator.
func (g BlobGenerator) Generate(seed int32) (image.Image, error) {
	if g.Size <= 0 {
		return nil, fmt.Errorf("blob size %d: %w", g.Size, ErrDegenerateMask)
	}
	lobes := g.Lobes
	if lobes < 3 {
		lobes = 3
	}

	half := float64(g.Size) / 2
	pts := make([]Vec2, lobes)
	for i := range pts {
		r := lerp(g.MinRadius, g.MaxRadius, float64(Derive(seed, int32(i+1)))) * half
		a := 2 * math.Pi * float64(i) / float64(lobes)
		pts[i] = Vec2{X: half + math.Cos(a)*r, Y: half + math.Sin(a)*r}
	}

	// Quadratic segments through lobe midpoints keep the outline smooth.
	z := vector.NewRasterizer(g.Size, g.Size)
	start := midpoint(pts[lobes-1], pts[0])
	z.MoveTo(float32(start.X), float32(start.Y))
	for i := range pts {
		next := midpoint(pts[i], pts[(i+1)%lobes])
		z.QuadTo(float32(pts[i].X), float32(pts[i].Y), float32(next.X), float32(next.Y))
	}
	z.ClosePath()

	coverage := image.NewAlpha(image.Rect(0, 0, g.Size, g.Size))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	out := image.NewGray(coverage.Bounds())
	for i, a := range coverage.Pix {
		out.Pix[i] = 0xff - a
	}
	return out, nil
}

func midpoint(a, b Vec2) Vec2 {
	return Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
